// Package article turns extracted front matter and rendered markdown into
// validated Article records.
package article

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/dcruzf/blog-data/pkg/datefmt"
	"github.com/dcruzf/blog-data/pkg/frontmatter"
	"github.com/dcruzf/blog-data/pkg/slug"
)

// Front-matter field names.
const (
	FieldTitle    = "title"
	FieldSubtitle = "subtitle"
	FieldAbstract = "abstract"
	FieldAuthor   = "author"
	FieldTags     = "tags"
	FieldDate     = "date"
)

// RequiredFields lists the fields every source must define, in check order.
//
//nolint:gochecknoglobals // Read-only list.
var RequiredFields = []string{FieldTitle, FieldSubtitle, FieldAbstract, FieldAuthor, FieldTags}

// ErrInvalid indicates an Article that fails validation.
var ErrInvalid = errors.New("invalid article")

var errYearZero = errors.New("year must be at least 1")

//nolint:gochecknoglobals // Compiled pattern.
var tagPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Article is one published document.
type Article struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Abstract string   `json:"abstract"`
	Text     string   `json:"text"`
	TOC      string   `json:"toc"`
	Date     *Date    `json:"date"`
	Author   string   `json:"author"`
	Tags     []string `json:"tags"`

	// Source is the file the article was read from.
	Source string `json:"-"`
}

// Dated reports whether the article has a publication date.
func (a *Article) Dated() bool {
	return a.Date != nil
}

// Validate checks an already derived Article.
func (a *Article) Validate() error {
	err := validation.ValidateStruct(a,
		validation.Field(&a.ID,
			validation.Required.Error("id is empty; the title has no slug characters"),
			validation.By(func(value any) error {
				if id, _ := value.(string); id != "" && !slug.Valid(id) {
					return validation.NewError("article.id.invalid", "must be lower-case letters, digits and single hyphens")
				}
				return nil
			}),
		),
		validation.Field(&a.Tags,
			validation.Each(validation.Match(tagPattern)),
			validation.By(uniqueSorted),
		),
	)
	if err != nil {
		if a.Source != "" {
			return fmt.Errorf("%w %s: %w", ErrInvalid, a.Source, err)
		}
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func uniqueSorted(value any) error {
	tags, _ := value.([]string)
	for i := 1; i < len(tags); i++ {
		if tags[i-1] >= tags[i] {
			return validation.NewError("article.tags.set", "must be sorted and free of duplicates")
		}
	}
	return nil
}

// Input is the raw material for one Article.
type Input struct {
	Source string
	Fields frontmatter.Fields
	Text   string
	TOC    string
}

// Options controls normalization.
type Options struct {
	// Layout parses the date field. Nil means datefmt.DefaultFormat.
	Layout *datefmt.Layout
}

// Normalize builds a validated Article from in.
func Normalize(in Input, opts Options) (*Article, error) {
	values := make(map[string]string, len(RequiredFields))
	for _, name := range RequiredFields {
		value, ok := in.Fields.First(name)
		if !ok {
			return nil, &MissingFieldError{Source: in.Source, Field: name}
		}
		values[name] = strings.TrimSpace(value)
	}

	date, err := parseDate(in, opts)
	if err != nil {
		return nil, err
	}

	a := &Article{
		ID:       DeriveID(values[FieldTitle], date),
		Title:    values[FieldTitle],
		Subtitle: values[FieldSubtitle],
		Abstract: values[FieldAbstract],
		Text:     in.Text,
		TOC:      in.TOC,
		Author:   values[FieldAuthor],
		Tags:     ParseTags(values[FieldTags]),
		Source:   in.Source,
	}
	if date != nil {
		a.Date = &Date{Time: *date}
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func parseDate(in Input, opts Options) (*time.Time, error) {
	raw, ok := in.Fields.First(FieldDate)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return nil, nil //nolint:nilnil // Undated.
	}

	layout := opts.Layout
	if layout == nil {
		layout = datefmt.MustCompile(datefmt.DefaultFormat, "")
	}

	t, err := layout.Parse(raw)
	if err != nil {
		return nil, &DateFormatError{
			Source: in.Source,
			Value:  raw,
			Format: layout.String(),
			Err:    err,
		}
	}
	if t.Year() < 1 {
		return nil, &DateFormatError{
			Source: in.Source,
			Value:  raw,
			Format: layout.String(),
			Err:    errYearZero,
		}
	}
	return &t, nil
}

// ParseTags splits value on whitespace and slugifies every token. The result
// is sorted and free of duplicates and empty slugs.
func ParseTags(value string) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, token := range strings.Fields(value) {
		tag := slug.Make(token)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// DeriveID returns "{year}-{month}-{day}-{slug(title)}" for dated content
// and slug(title) otherwise. Date parts are not zero-padded.
func DeriveID(title string, date *time.Time) string {
	base := slug.Make(title)
	if date == nil {
		return base
	}

	var b strings.Builder
	b.WriteString(strconv.Itoa(date.Year()))
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(int(date.Month())))
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(date.Day()))
	if base != "" {
		b.WriteByte('-')
		b.WriteString(base)
	}
	return b.String()
}
