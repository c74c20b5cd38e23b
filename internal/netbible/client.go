// Package netbible fetches the verse of the day from the NET Bible Labs
// API at https://labs.bible.org/api/.
package netbible

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/MWPuppire/votd/internal/verse"
)

const (
	// DefaultBaseURL is the NET Bible Labs API endpoint.
	DefaultBaseURL = "https://labs.bible.org/api/"

	// DefaultTimeout bounds a whole fetch, connection included.
	DefaultTimeout = 2 * time.Second

	// Translation is the Bible translation the service serves.
	Translation = "NET"

	// maxResponseBytes caps how much of a response body is read. The
	// verse payload is a few hundred bytes; anything near the cap is
	// garbage.
	maxResponseBytes = 1 << 20
)

// Client is an HTTP client for the NET Bible Labs API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a Client against baseURL with the given request
// timeout. Empty baseURL and non-positive timeout fall back to the
// defaults.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// VerseOfDay fetches today's verse from the service.
func (c *Client) VerseOfDay(ctx context.Context) (verse.VerseOfDay, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return verse.VerseOfDay{}, fmt.Errorf("invalid verse service URL %q: %w", c.baseURL, err)
	}
	q := u.Query()
	q.Set("type", "json")
	q.Set("passage", "votd")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return verse.VerseOfDay{}, fmt.Errorf("failed to build verse request: %w", err)
	}

	c.logger.Debug().Str("url", u.String()).Msg("requesting verse of the day")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return verse.VerseOfDay{}, classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return verse.VerseOfDay{}, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return verse.VerseOfDay{}, classifyTransportError(err)
	}

	return parsePayload(body)
}

// classifyTransportError sorts a transport failure into the package error
// classes.
func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %w", ErrConnect, err)
}

// parsePayload decodes the service's JSON array of verse objects. Each
// element carries bookname, chapter, verse, and text, with the numbers
// encoded as strings.
func parsePayload(body []byte) (verse.VerseOfDay, error) {
	if !gjson.ValidBytes(body) {
		return verse.VerseOfDay{}, fmt.Errorf("%w: invalid JSON", ErrBadPayload)
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return verse.VerseOfDay{}, fmt.Errorf("%w: expected a verse array", ErrBadPayload)
	}

	items := parsed.Array()
	if len(items) == 0 {
		return verse.VerseOfDay{}, fmt.Errorf("%w: empty verse array", ErrBadPayload)
	}

	book := items[0].Get("bookname").String()
	chapter := items[0].Get("chapter").Int()
	first := items[0].Get("verse").Int()
	last := items[len(items)-1].Get("verse").Int()
	if book == "" || chapter <= 0 || first <= 0 || last <= 0 {
		return verse.VerseOfDay{}, fmt.Errorf("%w: missing verse fields", ErrBadPayload)
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		if text := strings.TrimSpace(item.Get("text").String()); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return verse.VerseOfDay{}, fmt.Errorf("%w: empty verse text", ErrBadPayload)
	}

	return verse.VerseOfDay{
		Text:      strings.Join(parts, " "),
		Reference: formatReference(book, chapter, first, last),
	}, nil
}

// formatReference renders "Book C:V", collapsing multi-verse days into a
// "Book C:V1-V2" range.
func formatReference(book string, chapter, first, last int64) string {
	if first == last {
		return fmt.Sprintf("%s %d:%d", book, chapter, first)
	}
	return fmt.Sprintf("%s %d:%d-%d", book, chapter, first, last)
}
