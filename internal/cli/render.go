package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/MWPuppire/votd/internal/netbible"
	"github.com/MWPuppire/votd/internal/verse"
)

// Verse rendering constants.
const (
	// defaultTextWidth is the wrap width used off-terminal and the cap
	// applied on wide terminals.
	defaultTextWidth = 80

	// minTextWidth is the narrowest wrap width worth attempting.
	minTextWidth = 20
)

// renderOptions control how a verse is printed.
type renderOptions struct {
	// OnlyVerse prints the bare verse text without the reference header.
	OnlyVerse bool
	// ShowTranslation includes the translation in the header tag.
	ShowTranslation bool
	// Plain forces unstyled output even on a terminal.
	Plain bool
	// Width overrides the wrap width; zero means detect it from the
	// terminal.
	Width int
}

// renderVerse writes the verse to w, styled when w is a terminal.
func renderVerse(w io.Writer, v verse.VerseOfDay, opts renderOptions) error {
	width := opts.Width
	if width <= 0 {
		width = textWidth(w)
	}

	if !opts.Plain && isWriterTerminal(w) {
		return renderStyledVerse(w, v, opts, width)
	}
	return renderPlainVerse(w, v, opts, width)
}

// headerTag returns the parenthesized tag printed after the reference.
func headerTag(showTranslation bool) string {
	if showTranslation {
		return fmt.Sprintf("(Verse of the Day - %s)", netbible.Translation)
	}
	return "(Verse of the Day)"
}

// renderStyledVerse renders the verse with Lip Gloss styling for TTY output.
func renderStyledVerse(w io.Writer, v verse.VerseOfDay, opts renderOptions, width int) error {
	textStyle := lipgloss.NewStyle().Width(width)

	var content strings.Builder
	if !opts.OnlyVerse {
		refStyle := lipgloss.NewStyle().Bold(true).Foreground(headerColor())
		tagStyle := lipgloss.NewStyle().Faint(true)

		content.WriteString(refStyle.Render(v.Reference))
		content.WriteString(" ")
		content.WriteString(tagStyle.Render(headerTag(opts.ShowTranslation)))
		content.WriteString("\n")
	}
	content.WriteString(textStyle.Render(v.Text))
	content.WriteString("\n")

	_, err := fmt.Fprint(w, content.String())
	return err
}

// renderPlainVerse renders the verse without styling for pipes and files.
func renderPlainVerse(w io.Writer, v verse.VerseOfDay, opts renderOptions, width int) error {
	var content strings.Builder
	if !opts.OnlyVerse {
		content.WriteString(v.Reference)
		content.WriteString(" ")
		content.WriteString(headerTag(opts.ShowTranslation))
		content.WriteString("\n")
	}
	content.WriteString(wrapText(v.Text, width))
	content.WriteString("\n")

	_, err := fmt.Fprint(w, content.String())
	return err
}

// headerColor is the reference header color.
func headerColor() lipgloss.Color {
	return lipgloss.Color("33")
}

// wrapText greedily wraps text at width columns, keeping words intact.
// Words longer than the width get a line of their own.
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for _, word := range words {
		wordLen := utf8.RuneCountInString(word)
		switch {
		case lineLen == 0:
		case lineLen+1+wordLen > width:
			b.WriteString("\n")
			lineLen = 0
		default:
			b.WriteString(" ")
			lineLen++
		}
		b.WriteString(word)
		lineLen += wordLen
	}

	return b.String()
}

// isWriterTerminal reports whether the provided io.Writer refers to a
// terminal. It returns true when w is an *os.File whose file descriptor is
// a terminal, and false for any other writer.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

// textWidth returns the wrap width for w: the terminal width when
// detectable, clamped to [minTextWidth, defaultTextWidth], otherwise
// defaultTextWidth.
func textWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			switch {
			case width < minTextWidth:
				return minTextWidth
			case width < defaultTextWidth:
				return width
			}
			return defaultTextWidth
		}
	}
	return defaultTextWidth
}
