package document_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcruzf/blog-data/pkg/article"
	"github.com/dcruzf/blog-data/pkg/catalog"
	"github.com/dcruzf/blog-data/pkg/document"
	"github.com/dcruzf/blog-data/pkg/history"
)

func about() *article.Article {
	return &article.Article{
		ID:     "about-me",
		Title:  "About Me",
		Text:   "<p>me</p>\n",
		Tags:   []string{},
		Source: "about.md",
	}
}

func post(id, source string) *article.Article {
	return &article.Article{
		ID:     id,
		Title:  "Hello World",
		Text:   "<p>a & b</p>\n",
		Date:   &article.Date{Time: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		Tags:   []string{"intro", "news"},
		Source: source,
	}
}

func validInput() document.Input {
	return document.Input{
		Tags:     []catalog.Tag{{TagID: "intro", Name: "Intro", Icon: "person"}},
		About:    about(),
		Articles: []*article.Article{post("2023-1-1-hello-world", "articles/hello.md")},
		History:  []history.Entry{{Year: 2023, Months: []int{1}}},
	}
}

func TestAssembleMarshalCheck(t *testing.T) {
	t.Parallel()

	data, err := document.Assemble(validInput())
	require.NoError(t, err)
	assert.Equal(t, "about-me", data.About.ID)
	require.Len(t, data.Articles, 1)

	payload, err := document.Marshal(data, "")
	require.NoError(t, err)

	out := string(payload)
	assert.True(t, strings.HasPrefix(out, `{"tags":[{"tagId":"intro","name":"Intro","icon":"person"}],"history":[{"year":2023,"months":[1]}],"about":{"id":"about-me"`), out)
	assert.Contains(t, out, `"date":null`)
	assert.Contains(t, out, `"date":"2023-01-01T00:00:00"`)
	assert.Contains(t, out, `<p>a & b</p>`)
	assert.NotContains(t, out, "Source")

	require.NoError(t, document.CheckSchema(payload))
}

func TestMarshal_Indent(t *testing.T) {
	t.Parallel()

	data, err := document.Assemble(validInput())
	require.NoError(t, err)

	payload, err := document.Marshal(data, "  ")
	require.NoError(t, err)
	assert.Contains(t, string(payload), "{\n  \"tags\": [")
	require.NoError(t, document.CheckSchema(payload))
}

func TestAssemble_EmptyLists(t *testing.T) {
	t.Parallel()

	data, err := document.Assemble(document.Input{About: about()})
	require.NoError(t, err)

	payload, err := document.Marshal(data, "")
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"tags":[],"history":[]`)
	assert.Contains(t, string(payload), `"articles":[]`)
	require.NoError(t, document.CheckSchema(payload))
}

func TestAssemble_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing about", func(t *testing.T) {
		t.Parallel()
		in := validInput()
		in.About = nil
		_, err := document.Assemble(in)
		assert.ErrorIs(t, err, document.ErrMissingAbout)
	})

	t.Run("dated about", func(t *testing.T) {
		t.Parallel()
		in := validInput()
		in.About = post("about-me", "about.md")
		_, err := document.Assemble(in)
		assert.ErrorIs(t, err, document.ErrAboutDated)
	})

	t.Run("invalid article", func(t *testing.T) {
		t.Parallel()
		in := validInput()
		in.Articles = append(in.Articles, post("", "articles/empty.md"))
		_, err := document.Assemble(in)
		assert.ErrorIs(t, err, article.ErrInvalid)
		assert.Contains(t, err.Error(), "articles/empty.md")
	})

	t.Run("duplicate article id", func(t *testing.T) {
		t.Parallel()
		in := validInput()
		in.Articles = append(in.Articles, post("2023-1-1-hello-world", "articles/again.md"))
		_, err := document.Assemble(in)
		require.ErrorIs(t, err, document.ErrDuplicateID)

		var dup *document.DuplicateIDError
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, "2023-1-1-hello-world", dup.ID)
		assert.Equal(t, "articles/hello.md", dup.First)
		assert.Equal(t, "articles/again.md", dup.Second)
	})

	t.Run("article reuses about id", func(t *testing.T) {
		t.Parallel()
		in := validInput()
		in.Articles = append(in.Articles, post("about-me", "articles/about-me.md"))
		_, err := document.Assemble(in)
		assert.ErrorIs(t, err, document.ErrDuplicateID)
	})

	t.Run("invalid tag", func(t *testing.T) {
		t.Parallel()
		in := validInput()
		in.Tags = append(in.Tags, catalog.Tag{TagID: "x"})
		_, err := document.Assemble(in)
		assert.ErrorIs(t, err, catalog.ErrInvalidTag)
	})

	t.Run("duplicate tag", func(t *testing.T) {
		t.Parallel()
		in := validInput()
		in.Tags = append(in.Tags, in.Tags[0])
		_, err := document.Assemble(in)
		assert.ErrorIs(t, err, document.ErrDuplicateTag)
	})

	t.Run("duplicate year", func(t *testing.T) {
		t.Parallel()
		in := validInput()
		in.History = append(in.History, history.Entry{Year: 2023, Months: []int{2}})
		_, err := document.Assemble(in)
		assert.ErrorIs(t, err, document.ErrDuplicateYear)
	})

	t.Run("invalid history", func(t *testing.T) {
		t.Parallel()
		in := validInput()
		in.History = []history.Entry{{Year: 2023, Months: []int{13}}}
		_, err := document.Assemble(in)
		assert.ErrorIs(t, err, history.ErrInvalid)
	})
}

func TestCheckSchema_Violations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `{`},
		{"missing keys", `{}`},
		{"dated about", `{"tags":[],"history":[],"articles":[],"about":{"id":"a","title":"","subtitle":"","abstract":"","text":"","toc":"","date":"2023-01-01T00:00:00","author":"","tags":[]}}`},
		{"bad id", `{"tags":[],"history":[],"articles":[],"about":{"id":"Not Slug","title":"","subtitle":"","abstract":"","text":"","toc":"","date":null,"author":"","tags":[]}}`},
		{"month out of range", `{"tags":[],"history":[{"year":2023,"months":[13]}],"articles":[],"about":{"id":"a","title":"","subtitle":"","abstract":"","text":"","toc":"","date":null,"author":"","tags":[]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := document.CheckSchema([]byte(tt.payload))
			require.Error(t, err)
			assert.ErrorIs(t, err, document.ErrSchema)

			var schemaErr *document.SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.NotEmpty(t, schemaErr.Issues)
		})
	}
}

func TestSchema(t *testing.T) {
	t.Parallel()

	assert.Contains(t, string(document.Schema()), "draft/2020-12")
}
