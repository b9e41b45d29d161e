package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrNotesConversion indicates the notes Markdown could not be converted.
var ErrNotesConversion = errors.New("notes conversion failed")

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// NotesRenderer turns the batch's Markdown notes (payment terms, remittance
// instructions) into HTML that is safe to embed in every invoice.
type NotesRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewNotesRenderer creates a NotesRenderer with GFM tables and strikethrough.
func NewNotesRenderer() *NotesRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	return &NotesRenderer{md: md, policy: bluemonday.UGCPolicy()}
}

// Render converts Markdown to sanitized HTML. Blank input yields "".
func (r *NotesRenderer) Render(markdown string) (template.HTML, error) {
	markdown = strings.TrimSpace(crlfOrCR.ReplaceAllString(markdown, "\n"))
	if markdown == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotesConversion, err)
	}

	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil // #nosec G203 -- sanitized above
}
