package catalog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcruzf/blog-data/pkg/article"
	"github.com/dcruzf/blog-data/pkg/catalog"
	"github.com/dcruzf/blog-data/pkg/fsutil"
)

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	tags, err := catalog.Parse([]byte(`[
		{"name": "Tech News"},
		{"tagId": "go", "name": "Go", "icon": "code"},
		{"name": "Programação", "icon": null}
	]`), catalog.FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, []catalog.Tag{
		{TagID: "tech-news", Name: "Tech News", Icon: "person"},
		{TagID: "go", Name: "Go", Icon: "code"},
		{TagID: "programacao", Name: "Programação", Icon: "person"},
	}, tags)
}

func TestParse_NormalizesExplicitTagID(t *testing.T) {
	t.Parallel()

	tags, err := catalog.Parse([]byte(`[
		{"tagId": "Tech_News", "name": "Tech News"},
		{"tagId": "  Programação Go ", "name": "Go"}
	]`), catalog.FormatJSON)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "tech-news", tags[0].TagID)
	assert.Equal(t, "programacao-go", tags[1].TagID)
}

func TestParse_YAML(t *testing.T) {
	t.Parallel()

	tags, err := catalog.Parse([]byte("- name: Tech News\n- tagId: go\n  name: Go\n"), catalog.FormatYAML)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "tech-news", tags[0].TagID)
	assert.Equal(t, "go", tags[1].TagID)
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		data      string
		wantIndex int
	}{
		{"not json", `[`, -1},
		{"not a list", `{"name": "x"}`, -1},
		{"entry not an object", `["go"]`, 0},
		{"missing name", `[{"name": "ok"}, {"icon": "x"}]`, 1},
		{"blank name", `[{"name": "   "}]`, 0},
		{"name not a string", `[{"name": 3}]`, 0},
		{"duplicate tagId", `[{"name": "Go"}, {"tagId": "go", "name": "Golang"}]`, 1},
		{"tagId without slug", `[{"tagId": "!!!", "name": "x"}]`, 0},
		{"duplicate after normalizing", `[{"name": "Go"}, {"tagId": "GO", "name": "Golang"}]`, 1},
		{"name without slug", `[{"name": "!!!"}]`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := catalog.Parse([]byte(tt.data), catalog.FormatJSON)
			require.Error(t, err)
			assert.ErrorIs(t, err, catalog.ErrMalformedCatalog)

			var malformed *catalog.MalformedCatalogError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tt.wantIndex, malformed.Index)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "tags.yml")
	require.NoError(t, os.WriteFile(path, []byte("- name: Go\n"), 0o600))

	tags, err := catalog.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []catalog.Tag{{TagID: "go", Name: "Go", Icon: catalog.DefaultIcon}}, tags)

	_, err = catalog.Load(context.Background(), filepath.Join(dir, "tags.json"))
	assert.ErrorIs(t, err, fsutil.ErrNotFound)
}

func TestFormatFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, catalog.FormatJSON, catalog.FormatFor("tags.json"))
	assert.Equal(t, catalog.FormatYAML, catalog.FormatFor("tags.YAML"))
	assert.Equal(t, catalog.FormatYAML, catalog.FormatFor("dir/tags.yml"))
	assert.Equal(t, catalog.FormatJSON, catalog.FormatFor("tags"))
}

func TestFromArticlesAndUnknown(t *testing.T) {
	t.Parallel()

	articles := []*article.Article{
		{ID: "a", Tags: []string{"news", "intro"}},
		{ID: "b", Tags: []string{"go", "news"}},
		nil,
	}

	derived := catalog.FromArticles(articles)
	assert.Equal(t, []catalog.Tag{
		{TagID: "go", Name: "go", Icon: "person"},
		{TagID: "intro", Name: "intro", Icon: "person"},
		{TagID: "news", Name: "news", Icon: "person"},
	}, derived)
	assert.Empty(t, catalog.Unknown(derived, articles))

	known := []catalog.Tag{{TagID: "news", Name: "News", Icon: "person"}}
	assert.Equal(t, []string{"go", "intro"}, catalog.Unknown(known, articles))
}

func TestTag_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, catalog.Tag{TagID: "go", Name: "Go", Icon: "person"}.Validate())
	assert.ErrorIs(t, catalog.Tag{TagID: "go", Name: "Go"}.Validate(), catalog.ErrInvalidTag)
	assert.ErrorIs(t, catalog.Tag{TagID: "Go!", Name: "Go", Icon: "x"}.Validate(), catalog.ErrInvalidTag)
}
