package builder_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcruzf/blog-data/pkg/article"
)

func addArticles(t *testing.T, s site, n int) {
	t.Helper()
	for i := range n {
		writeFile(t, filepath.Join(s.opts.ArticlesDir, fmt.Sprintf("post-%02d.md", i)), fmt.Sprintf(
			"Title: Post %d\nSubtitle: s\nAbstract: a\nAuthor: Ana\nDate: %02d/03/2022\nTags: go\n\nBody %d.\n",
			i, i%28+1, i))
	}
}

func TestRun_JobsDoNotChangeOutput(t *testing.T) {
	t.Parallel()

	var payloads [][]byte
	for _, jobs := range []int{1, 3, 16} {
		s := newSite(t)
		addArticles(t, s, 20)
		s.opts.Jobs = jobs
		s.opts.DryRun = true

		res, err := newBuilder().Run(context.Background(), s.opts)
		require.NoError(t, err, "jobs=%d", jobs)
		assert.Equal(t, 21, res.Stats.Articles)
		payloads = append(payloads, res.Payload)
	}

	// Article ids and sources do not depend on the temp dir.
	assert.Equal(t, payloads[0], payloads[1])
	assert.Equal(t, payloads[0], payloads[2])
}

func TestRun_ReportsEarliestFailure(t *testing.T) {
	t.Parallel()

	for _, jobs := range []int{1, 4} {
		s := newSite(t)
		addArticles(t, s, 8)
		writeFile(t, filepath.Join(s.opts.ArticlesDir, "a-broken.md"), "Date: 01/01/2020\n\nNo title.\n")
		writeFile(t, filepath.Join(s.opts.ArticlesDir, "z-broken.md"),
			"Title: Z\nSubtitle: s\nAbstract: a\nAuthor: Ana\nDate: 2020-01-01\nTags: go\n\nBody.\n")
		s.opts.Jobs = jobs

		_, err := newBuilder().Run(context.Background(), s.opts)
		require.Error(t, err)
		require.ErrorIs(t, err, article.ErrMissingField, "jobs=%d", jobs)
		assert.Contains(t, err.Error(), "a-broken.md")
		assert.NoFileExists(t, s.opts.Output)
	}
}
