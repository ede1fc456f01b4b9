// Package frontmatter extracts article metadata from markdown sources.
//
// Delimited blocks are supported in three encodings:
//
//	---        YAML
//	+++        TOML
//	;;;        JSON
//
// Sources without a delimited block may start with MultiMarkdown-style
// meta lines ("Key: value", continuation lines indented by four spaces,
// terminated by a blank line).
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	json "github.com/goccy/go-json"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies how the metadata of a document was encoded.
type Format string

// Supported formats.
const (
	FormatNone Format = ""
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatMeta Format = "meta"
)

// ErrMalformed indicates a delimited block that could not be decoded.
var ErrMalformed = errors.New("malformed front matter")

//nolint:gochecknoglobals // UTF-8 byte order mark.
var bom = []byte{0xEF, 0xBB, 0xBF}

// Fields maps lower-cased field names to their raw values. Every present
// key has at least one value.
type Fields map[string][]string

// First returns the first value of name and whether the field is present.
func (f Fields) First(name string) (string, bool) {
	values, ok := f[strings.ToLower(name)]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Has reports whether name is present.
func (f Fields) Has(name string) bool {
	_, ok := f.First(name)
	return ok
}

// Keys returns the field names in sorted order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f Fields) add(key, value string) {
	key = strings.ToLower(strings.TrimSpace(key))
	f[key] = append(f[key], value)
}

// Document is a source split into metadata and markdown body.
type Document struct {
	Fields Fields
	Body   []byte
	Format Format
}

// Extract splits source into its metadata fields and markdown body.
// A source without metadata yields empty Fields and the whole source as Body.
func Extract(source []byte) (*Document, error) {
	source = bytes.TrimPrefix(source, bom)

	format := detect(source)
	if format == FormatNone {
		fields, body := scanMeta(source)
		doc := &Document{Fields: fields, Body: body, Format: FormatNone}
		if len(fields) > 0 {
			doc.Format = FormatMeta
		}
		return doc, nil
	}

	var raw map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(source), &raw, formats()...)
	if err != nil {
		if isPlainDashes(source) {
			// Not YAML; MultiMarkdown meta may also open with "---".
			fields, rest := scanMeta(source)
			return &Document{Fields: fields, Body: rest, Format: FormatMeta}, nil
		}
		return nil, fmt.Errorf("%w (%s): %w", ErrMalformed, format, err)
	}

	if raw == nil && isPlainDashes(source) {
		// Empty or unterminated "---" block.
		fields, rest := scanMeta(source)
		doc := &Document{Fields: fields, Body: rest, Format: FormatYAML}
		if len(fields) > 0 {
			doc.Format = FormatMeta
		}
		return doc, nil
	}

	return &Document{Fields: fromMap(raw), Body: body, Format: format}, nil
}

func formats() []*frontmatter.Format {
	return []*frontmatter.Format{
		frontmatter.NewFormat("---", "---", yaml.Unmarshal),
		frontmatter.NewFormat("---yaml", "---", yaml.Unmarshal),
		frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
		frontmatter.NewFormat("---toml", "---", toml.Unmarshal),
		frontmatter.NewFormat(";;;", ";;;", json.Unmarshal),
		frontmatter.NewFormat("---json", "---", json.Unmarshal),
	}
}

// detect reports the format announced by the first non-blank line.
func detect(source []byte) Format {
	switch firstLine(source) {
	case "---", "---yaml":
		return FormatYAML
	case "+++", "---toml":
		return FormatTOML
	case ";;;", "---json":
		return FormatJSON
	default:
		return FormatNone
	}
}

func isPlainDashes(source []byte) bool {
	return firstLine(source) == "---"
}

func firstLine(source []byte) string {
	for len(source) > 0 {
		line := source
		if idx := bytes.IndexByte(source, '\n'); idx >= 0 {
			line, source = source[:idx], source[idx+1:]
		} else {
			source = nil
		}
		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			return string(trimmed)
		}
	}
	return ""
}

func fromMap(raw map[string]any) Fields {
	fields := make(Fields, len(raw))

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fields.add(k, stringify(raw[k]))
	}
	return fields
}

// stringify flattens a decoded value into the single-string form used by
// meta lines. Sequences are joined with spaces.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 {
			return v.Format("2006-01-02")
		}
		return v.Format("2006-01-02T15:04:05")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s := stringify(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
