package cache

import (
	"fmt"
	"strconv"
	"time"
)

// Staleness policy constants and defaults.
const (
	// DefaultMaxAge is how long a cached verse counts as fresh (6 hours).
	DefaultMaxAge = 6 * time.Hour

	// MinMaxAge is the minimum allowed max age (1 minute).
	MinMaxAge = time.Minute

	// MaxMaxAge is the maximum allowed max age (7 days).
	MaxMaxAge = 7 * 24 * time.Hour

	// minutesPerHour is used for duration formatting calculations.
	minutesPerHour = 60

	// hoursPerDay is used for duration formatting calculations.
	hoursPerDay = 24
)

// ErrInvalidMaxAge reports a max age outside the allowed range.
var ErrInvalidMaxAge = fmt.Errorf("max age must be between %s and %s", MinMaxAge, MaxMaxAge)

// Policy decides whether a cached record still counts as fresh.
type Policy struct {
	// MaxAge is the freshness window. A record whose age is at most
	// MaxAge is fresh; anything older is stale. Zero or negative values
	// fall back to DefaultMaxAge.
	MaxAge time.Duration
}

// DefaultPolicy returns the policy with the default freshness window.
func DefaultPolicy() Policy {
	return Policy{MaxAge: DefaultMaxAge}
}

// IsFresh reports whether a record of the given age is still fresh.
// The window is inclusive: age == MaxAge is fresh.
func (p Policy) IsFresh(age time.Duration) bool {
	return age <= p.maxAge()
}

func (p Policy) maxAge() time.Duration {
	if p.MaxAge <= 0 {
		return DefaultMaxAge
	}
	return p.MaxAge
}

// ParseMaxAge parses a max age string in various formats:
// - Integer seconds: "21600".
// - Duration string: "6h", "90m", "1h30m".
func ParseMaxAge(s string) (time.Duration, error) {
	// Try parsing as integer seconds first
	if seconds, err := strconv.Atoi(s); err == nil {
		d := time.Duration(seconds) * time.Second
		if d < MinMaxAge || d > MaxMaxAge {
			return 0, fmt.Errorf("%w: got %s", ErrInvalidMaxAge, d)
		}
		return d, nil
	}

	// Try parsing as duration
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid max age format: %w", err)
	}

	if d < MinMaxAge || d > MaxMaxAge {
		return 0, fmt.Errorf("%w: got %s", ErrInvalidMaxAge, d)
	}

	return d, nil
}

// FormatDuration formats a duration in a human-readable way.
// Examples: "6h", "30m", "5m30s".
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
	if d < hoursPerDay*time.Hour {
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % minutesPerHour
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	if hours == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd%dh", days, hours)
}
