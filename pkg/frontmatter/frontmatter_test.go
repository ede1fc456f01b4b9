package frontmatter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcruzf/blog-data/pkg/frontmatter"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		source     string
		wantFormat frontmatter.Format
		wantFields frontmatter.Fields
		wantBody   string
	}{
		{
			name:       "multimarkdown meta",
			source:     "Title: Hello World\nDate: 01/01/2023\nTags: intro news\n\n# Body\n",
			wantFormat: frontmatter.FormatMeta,
			wantFields: frontmatter.Fields{
				"title": {"Hello World"},
				"date":  {"01/01/2023"},
				"tags":  {"intro news"},
			},
			wantBody: "# Body\n",
		},
		{
			name:       "multimarkdown continuation lines",
			source:     "Abstract: first line\n    second line\nAuthor: Ana\n\nbody",
			wantFormat: frontmatter.FormatMeta,
			wantFields: frontmatter.Fields{
				"abstract": {"first line", "second line"},
				"author":   {"Ana"},
			},
			wantBody: "body",
		},
		{
			name:       "multimarkdown stops at non meta line",
			source:     "Title: Hi\n# Heading\n",
			wantFormat: frontmatter.FormatMeta,
			wantFields: frontmatter.Fields{"title": {"Hi"}},
			wantBody:   "# Heading\n",
		},
		{
			name:       "yaml block",
			source:     "---\ntitle: Hello\ntags: [go, web]\ndate: 01/01/2023\n---\nbody\n",
			wantFormat: frontmatter.FormatYAML,
			wantFields: frontmatter.Fields{
				"title": {"Hello"},
				"tags":  {"go web"},
				"date":  {"01/01/2023"},
			},
			wantBody: "body\n",
		},
		{
			name:       "yaml keys are lower cased and null is empty",
			source:     "---\nTitle: X\nsubtitle:\n---\n",
			wantFormat: frontmatter.FormatYAML,
			wantFields: frontmatter.Fields{
				"title":    {"X"},
				"subtitle": {""},
			},
			wantBody: "",
		},
		{
			name:       "invalid yaml falls back to meta lines",
			source:     "---\nTitle: Hello: World\nTags: a\n---\nbody\n",
			wantFormat: frontmatter.FormatMeta,
			wantFields: frontmatter.Fields{
				"title": {"Hello: World"},
				"tags":  {"a"},
			},
			wantBody: "body\n",
		},
		{
			name:       "empty yaml block",
			source:     "---\n---\nbody",
			wantFormat: frontmatter.FormatYAML,
			wantFields: frontmatter.Fields{},
			wantBody:   "body",
		},
		{
			name:       "toml block",
			source:     "+++\ntitle = \"Hello\"\ntags = [\"a\", \"b\"]\n+++\nbody",
			wantFormat: frontmatter.FormatTOML,
			wantFields: frontmatter.Fields{
				"title": {"Hello"},
				"tags":  {"a b"},
			},
			wantBody: "body",
		},
		{
			name:       "json block",
			source:     ";;;\n{\"title\": \"Hello\", \"count\": 3}\n;;;\nbody",
			wantFormat: frontmatter.FormatJSON,
			wantFields: frontmatter.Fields{
				"title": {"Hello"},
				"count": {"3"},
			},
			wantBody: "body",
		},
		{
			name:       "no metadata",
			source:     "# Heading\n\ntext\n",
			wantFormat: frontmatter.FormatNone,
			wantFields: frontmatter.Fields{},
			wantBody:   "# Heading\n\ntext\n",
		},
		{
			name:       "byte order mark",
			source:     "\ufeffTitle: Hi\n\nbody",
			wantFormat: frontmatter.FormatMeta,
			wantFields: frontmatter.Fields{"title": {"Hi"}},
			wantBody:   "body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := frontmatter.Extract([]byte(tt.source))
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, doc.Format)
			assert.Equal(t, tt.wantFields, doc.Fields)
			assert.Equal(t, tt.wantBody, string(doc.Body))
		})
	}
}

func TestExtract_Malformed(t *testing.T) {
	t.Parallel()

	for _, source := range []string{
		"+++\ntitle = \n+++\nbody",
		";;;\n{\"title\": }\n;;;\nbody",
	} {
		_, err := frontmatter.Extract([]byte(source))
		require.Error(t, err, source)
		assert.ErrorIs(t, err, frontmatter.ErrMalformed)
	}
}

func TestFields_First(t *testing.T) {
	t.Parallel()

	fields := frontmatter.Fields{
		"title": {"first", "second"},
		"empty": {""},
	}

	got, ok := fields.First("Title")
	assert.True(t, ok)
	assert.Equal(t, "first", got)

	got, ok = fields.First("empty")
	assert.True(t, ok)
	assert.Empty(t, got)

	_, ok = fields.First("missing")
	assert.False(t, ok)
	assert.False(t, fields.Has("missing"))
	assert.Equal(t, []string{"empty", "title"}, fields.Keys())
}
