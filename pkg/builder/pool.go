package builder

import (
	"context"
	"fmt"
	"sync"

	"github.com/dcruzf/blog-data/pkg/article"
)

type loadOutcome struct {
	path    string
	article *article.Article
	err     error
}

// loadAll loads files one at a time, or with up to jobs workers when jobs
// is above one. Articles come back in the order of files, and the reported
// error is the one of the earliest failing file, whatever order the workers
// finish in.
func (b *Builder) loadAll(ctx context.Context, files []string, jobs int) ([]*article.Article, error) {
	jobs = min(jobs, len(files))
	if jobs <= 1 {
		articles := make([]*article.Article, 0, len(files))
		for _, path := range files {
			a, err := b.load(ctx, path)
			if err != nil {
				return nil, err
			}
			articles = append(articles, a)
		}
		return articles, nil
	}

	workCh := make(chan string)
	outCh := make(chan loadOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range workCh {
				a, err := b.load(ctx, path)
				outCh <- loadOutcome{path: path, article: a, err: err}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]loadOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.path] = outcome
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build cancelled: %w", err)
	}

	articles := make([]*article.Article, 0, len(files))
	for _, path := range files {
		outcome := outcomes[path]
		if outcome.err != nil {
			return nil, outcome.err
		}
		articles = append(articles, outcome.article)
	}
	return articles, nil
}
