// Package document assembles the site data document and encodes it.
package document

import (
	"bytes"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/dcruzf/blog-data/pkg/article"
	"github.com/dcruzf/blog-data/pkg/catalog"
	"github.com/dcruzf/blog-data/pkg/history"
)

// Assembly errors.
var (
	ErrMissingAbout  = errors.New("about page is missing")
	ErrAboutDated    = errors.New("about page must not have a date")
	ErrDuplicateTag  = errors.New("duplicate tag id")
	ErrDuplicateYear = errors.New("duplicate history year")
)

// Data is the document consumed by the site.
type Data struct {
	Tags     []catalog.Tag      `json:"tags"`
	History  []history.Entry    `json:"history"`
	About    *article.Article   `json:"about"`
	Articles []*article.Article `json:"articles"`
}

// Input holds the already derived parts of a Data document.
type Input struct {
	Tags     []catalog.Tag
	About    *article.Article
	Articles []*article.Article
	History  []history.Entry
}

// Assemble validates the parts and composes them. It derives nothing and
// stops at the first problem.
func Assemble(in Input) (*Data, error) {
	if in.About == nil {
		return nil, ErrMissingAbout
	}
	if err := in.About.Validate(); err != nil {
		return nil, fmt.Errorf("about: %w", err)
	}
	if in.About.Dated() {
		return nil, fmt.Errorf("%w: %s has date %s", ErrAboutDated, in.About.Source, in.About.Date)
	}

	ids := map[string]string{in.About.ID: in.About.Source}
	articles := make([]*article.Article, 0, len(in.Articles))
	for _, a := range in.Articles {
		if a == nil {
			continue
		}
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if first, dup := ids[a.ID]; dup {
			return nil, &DuplicateIDError{ID: a.ID, First: first, Second: a.Source}
		}
		ids[a.ID] = a.Source
		articles = append(articles, a)
	}

	tags := make([]catalog.Tag, 0, len(in.Tags))
	seenTags := make(map[string]struct{}, len(in.Tags))
	for _, t := range in.Tags {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seenTags[t.TagID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTag, t.TagID)
		}
		seenTags[t.TagID] = struct{}{}
		tags = append(tags, t)
	}

	entries := make([]history.Entry, 0, len(in.History))
	years := make(map[int]struct{}, len(in.History))
	for _, e := range in.History {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if _, dup := years[e.Year]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateYear, e.Year)
		}
		years[e.Year] = struct{}{}
		entries = append(entries, e)
	}

	return &Data{
		Tags:     tags,
		History:  entries,
		About:    in.About,
		Articles: articles,
	}, nil
}

// Marshal encodes data as JSON without HTML escaping. An empty indent
// produces compact output.
func Marshal(data *Data, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(data); err != nil {
		return nil, fmt.Errorf("encode data: %w", err)
	}
	return buf.Bytes(), nil
}
