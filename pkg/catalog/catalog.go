// Package catalog loads the tag catalog shown by the site.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/dcruzf/blog-data/pkg/article"
	"github.com/dcruzf/blog-data/pkg/fsutil"
	"github.com/dcruzf/blog-data/pkg/slug"
)

// DefaultIcon is the icon of tags that do not name one.
const DefaultIcon = "person"

// Format is a catalog file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from the file extension. Anything that is not
// .yml or .yaml is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ErrInvalidTag indicates a Tag that fails validation.
var ErrInvalidTag = errors.New("invalid tag")

// Tag is one catalog entry.
type Tag struct {
	TagID string `json:"tagId" yaml:"tagId"`
	Name  string `json:"name"  yaml:"name"`
	Icon  string `json:"icon"  yaml:"icon"`
}

// Validate checks a fully defaulted Tag.
func (t Tag) Validate() error {
	err := validation.ValidateStruct(&t,
		validation.Field(&t.TagID, validation.Required, validation.By(func(value any) error {
			if id, _ := value.(string); id != "" && !slug.Valid(id) {
				return validation.NewError("tag.id.invalid", "must be lower-case letters, digits and single hyphens")
			}
			return nil
		})),
		validation.Field(&t.Name, validation.Required),
		validation.Field(&t.Icon, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidTag, t.TagID, err)
	}
	return nil
}

// Load reads and parses the catalog at path.
func Load(ctx context.Context, path string) ([]Tag, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load tag catalog: %w", err)
	}

	tags, err := Parse(content, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tags, nil
}

// Parse decodes a catalog: a list of objects with a required "name" and
// optional "tagId" and "icon". A missing tagId becomes slug(name) and a
// missing icon becomes DefaultIcon. Entries keep their file order.
func Parse(data []byte, format Format) ([]Tag, error) {
	var raw any
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, &MalformedCatalogError{Index: -1, Reason: err.Error()}
	}

	entries, ok := raw.([]any)
	if !ok {
		return nil, &MalformedCatalogError{Index: -1, Entry: describe(raw), Reason: "catalog must be a list"}
	}

	tags := make([]Tag, 0, len(entries))
	seen := make(map[string]int, len(entries))
	for i, entry := range entries {
		tag, err := parseEntry(i, entry)
		if err != nil {
			return nil, err
		}
		if first, dup := seen[tag.TagID]; dup {
			return nil, &MalformedCatalogError{
				Index:  i,
				Entry:  describe(entry),
				Reason: fmt.Sprintf("tagId %q already used by entry %d", tag.TagID, first),
			}
		}
		seen[tag.TagID] = i
		tags = append(tags, tag)
	}
	return tags, nil
}

func parseEntry(index int, entry any) (Tag, error) {
	fail := func(reason string) (Tag, error) {
		return Tag{}, &MalformedCatalogError{Index: index, Entry: describe(entry), Reason: reason}
	}

	obj, ok := entry.(map[string]any)
	if !ok {
		return fail("entry must be an object")
	}

	var tag Tag
	fields := []struct {
		key string
		dst *string
	}{
		{"tagId", &tag.TagID},
		{"name", &tag.Name},
		{"icon", &tag.Icon},
	}
	for _, f := range fields {
		key, dst := f.key, f.dst
		value, present := obj[key]
		if !present || value == nil {
			continue
		}
		s, ok := value.(string)
		if !ok {
			return fail(fmt.Sprintf("%q must be a string", key))
		}
		*dst = strings.TrimSpace(s)
	}

	if tag.Name == "" {
		return fail(`"name" is required`)
	}
	// Explicit ids are normalized like article tags so the two can match.
	if tag.TagID != "" {
		if tag.TagID = slug.Make(tag.TagID); tag.TagID == "" {
			return fail(`"tagId" has no letters or digits`)
		}
	} else {
		tag.TagID = slug.Make(tag.Name)
	}
	if tag.Icon == "" {
		tag.Icon = DefaultIcon
	}
	if err := tag.Validate(); err != nil {
		return fail(err.Error())
	}
	return tag, nil
}

// FromArticles builds a catalog from the union of the article tags, with
// name equal to tagId and the default icon, sorted by tagId.
func FromArticles(articles []*article.Article) []Tag {
	ids := usedTags(articles)
	tags := make([]Tag, 0, len(ids))
	for _, id := range ids {
		tags = append(tags, Tag{TagID: id, Name: id, Icon: DefaultIcon})
	}
	return tags
}

// Unknown returns the tags used by articles that the catalog does not
// define, sorted.
func Unknown(catalog []Tag, articles []*article.Article) []string {
	known := make(map[string]struct{}, len(catalog))
	for _, t := range catalog {
		known[t.TagID] = struct{}{}
	}

	var unknown []string
	for _, id := range usedTags(articles) {
		if _, ok := known[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	return unknown
}

func usedTags(articles []*article.Article) []string {
	set := make(map[string]struct{})
	for _, a := range articles {
		if a == nil {
			continue
		}
		for _, tag := range a.Tags {
			set[tag] = struct{}{}
		}
	}

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func describe(entry any) string {
	out, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprint(entry)
	}
	return string(out)
}
