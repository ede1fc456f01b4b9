// Package datefmt compiles strptime-style date patterns (such as "%d/%m/%Y")
// into Go reference layouts and parses front-matter dates with them.
package datefmt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goodsign/monday"
)

// DefaultFormat is the day/month/year pattern used when none is configured.
const DefaultFormat = "%d/%m/%Y"

// MaxFormatLength limits pattern length.
const MaxFormatLength = 64

// ErrInvalidFormat indicates a pattern that cannot be compiled.
var ErrInvalidFormat = errors.New("invalid date format")

type directive struct {
	layout string
	// named marks directives rendered as month or weekday names,
	// which need locale translation.
	named bool
}

// directives maps strptime directives to Go layout elements. Numeric
// day/month/hour directives use the non-padded Go forms, which accept one
// or two digits when parsing.
//
//nolint:gochecknoglobals // Read-only lookup table.
var directives = map[byte]directive{
	'd': {layout: "2"},
	'm': {layout: "1"},
	'Y': {layout: "2006"},
	'y': {layout: "06"},
	'H': {layout: "15"},
	'I': {layout: "3"},
	'M': {layout: "4"},
	'S': {layout: "5"},
	'p': {layout: "PM"},
	'j': {layout: "__2"},
	'z': {layout: "-0700"},
	'Z': {layout: "MST"},
	'b': {layout: "Jan", named: true},
	'B': {layout: "January", named: true},
	'a': {layout: "Mon", named: true},
	'A': {layout: "Monday", named: true},
}

// sample has a distinct value in every field, so layout elements that run
// together render differently from the elements taken one at a time.
//
//nolint:gochecknoglobals // Read-only reference time.
var sample = time.Date(2029, time.November, 23, 19, 48, 37, 0, time.UTC)

// Layout is a compiled date pattern bound to a locale.
type Layout struct {
	format string
	layout string
	locale monday.Locale
	named  bool
}

// Compile converts a strptime-style pattern into a Layout.
// locale is a POSIX or BCP 47 locale name; it only matters for patterns with
// month or weekday names. An empty locale means English names.
func Compile(format, locale string) (*Layout, error) {
	goLayout, named, err := convert(format)
	if err != nil {
		return nil, err
	}

	compiled := &Layout{
		format: format,
		layout: goLayout,
		named:  named,
	}

	if strings.TrimSpace(locale) != "" {
		tag, err := NormalizeLocale(locale)
		if err != nil {
			return nil, err
		}
		compiled.locale = mondayLocale(tag)
	}

	return compiled, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(format, locale string) *Layout {
	l, err := Compile(format, locale)
	if err != nil {
		panic(err)
	}
	return l
}

// Parse parses value with the layout. Dates are returned in UTC and carry no
// timezone semantics of their own.
func (l *Layout) Parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if l.named && l.locale != "" {
		t, err := monday.ParseInLocation(l.layout, value, time.UTC, l.locale)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse %q as %q: %w", value, l.format, err)
		}
		return t, nil
	}

	t, err := time.ParseInLocation(l.layout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q as %q: %w", value, l.format, err)
	}
	return t, nil
}

// String returns the original strptime pattern.
func (l *Layout) String() string {
	return l.format
}

// GoLayout returns the Go reference layout the pattern compiled to.
func (l *Layout) GoLayout() string {
	return l.layout
}

// Locale returns the locale used for month and weekday names.
func (l *Layout) Locale() string {
	return string(l.locale)
}

func convert(format string) (string, bool, error) {
	if format == "" {
		return "", false, fmt.Errorf("%w: format cannot be empty", ErrInvalidFormat)
	}
	if len(format) > MaxFormatLength {
		return "", false, fmt.Errorf("%w: format exceeds %d characters", ErrInvalidFormat, MaxFormatLength)
	}

	var builder, expected strings.Builder
	builder.Grow(len(format) + 8)

	named := false
	hasDirective := false
	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '%' {
			// Literal digits would be read as layout elements by time.Parse.
			if ch >= '0' && ch <= '9' {
				return "", false, fmt.Errorf("%w: literal digit at position %d", ErrInvalidFormat, i)
			}
			builder.WriteByte(ch)
			expected.WriteByte(ch)
			continue
		}

		if i+1 >= len(format) {
			return "", false, fmt.Errorf("%w: dangling %% at end of format", ErrInvalidFormat)
		}
		i++

		if format[i] == '%' {
			builder.WriteByte('%')
			expected.WriteByte('%')
			continue
		}

		dir, ok := directives[format[i]]
		if !ok {
			return "", false, fmt.Errorf("%w: unsupported directive %%%c", ErrInvalidFormat, format[i])
		}
		builder.WriteString(dir.layout)
		expected.WriteString(sample.Format(dir.layout))
		named = named || dir.named
		hasDirective = true
	}

	if !hasDirective {
		return "", false, fmt.Errorf("%w: %q has no date directives", ErrInvalidFormat, format)
	}

	// Go layouts have no escaping: "%m%S" would become "15", the hour.
	layout := builder.String()
	if sample.Format(layout) != expected.String() {
		return "", false, fmt.Errorf("%w: elements of %q run together, separate them", ErrInvalidFormat, format)
	}

	return layout, named, nil
}
