// Package dateutil resolves the invoice date printed on every document of a batch.
//
// A date value is either a literal string printed as-is ("March 1, 2026")
// or an "auto" expression that formats the batch clock:
//
//	auto           today, in DefaultDateFormat
//	auto:long      today, using a named preset
//	auto:DD.MM.YY  today, using a token layout
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat matches the "Month D, YYYY" heading used on invoices.
const DefaultDateFormat = "MMMM D, YYYY"

const autoKeyword = "auto"

// Greedy matching requires longer tokens first.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     DefaultDateFormat,
}

// ParseDateFormat converts a token layout (YYYY, YY, MMMM, MMM, MM, M, DD, D)
// into a Go time layout. Text in brackets is copied literally, so "[Due] D"
// keeps the word "Due". Other characters are preserved.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var b strings.Builder
	b.Grow(len(format) + 8)

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			b.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		n := writeToken(&b, format[i:])
		if n == 0 {
			b.WriteByte(format[i])
			n = 1
		}
		i += n
	}

	return b.String(), nil
}

// writeToken writes the Go layout for the token prefixing s and returns its
// length, or 0 when s does not start with a token.
func writeToken(b *strings.Builder, s string) int {
	for _, t := range dateTokens {
		if strings.HasPrefix(s, t.token) {
			b.WriteString(t.goFmt)
			return len(t.token)
		}
	}
	return 0
}

// layoutFor returns the Go layout for an "auto" value, resolving presets
// case-insensitively. ok is false for literal values.
func layoutFor(value string) (layout string, ok bool, err error) {
	lower := strings.ToLower(strings.TrimSpace(value))
	if !strings.HasPrefix(lower, autoKeyword) {
		return "", false, nil
	}

	format := DefaultDateFormat
	if lower != autoKeyword {
		rest, found := strings.CutPrefix(strings.TrimSpace(value)[len(autoKeyword):], ":")
		if !found {
			return "", true, fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
		}
		if rest == "" {
			return "", true, fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
		}
		format = rest
		if preset, isPreset := DatePresets[strings.ToLower(rest)]; isPreset {
			format = preset
		}
	}

	layout, err = ParseDateFormat(format)
	return layout, true, err
}

// Validate reports whether value is an acceptable date setting without
// needing a clock. Literal values are always valid.
func Validate(value string) error {
	_, _, err := layoutFor(value)
	return err
}

// ResolveDate returns the printed date for value at time t.
// "auto" forms are formatted; anything else is returned unchanged.
func ResolveDate(value string, t time.Time) (string, error) {
	layout, isAuto, err := layoutFor(value)
	if err != nil {
		return "", err
	}
	if !isAuto {
		return value, nil
	}
	return t.Format(layout), nil
}
