package builder

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dcruzf/blog-data/internal/logging"
	"github.com/dcruzf/blog-data/pkg/article"
	"github.com/dcruzf/blog-data/pkg/catalog"
	"github.com/dcruzf/blog-data/pkg/datefmt"
	"github.com/dcruzf/blog-data/pkg/document"
	"github.com/dcruzf/blog-data/pkg/frontmatter"
	"github.com/dcruzf/blog-data/pkg/fsutil"
	"github.com/dcruzf/blog-data/pkg/history"
	"github.com/dcruzf/blog-data/pkg/render"
)

// CatalogSource tells where the tags of a run came from.
type CatalogSource string

// Catalog sources.
const (
	CatalogFile    CatalogSource = "file"
	CatalogDerived CatalogSource = "derived"
)

// Result is the outcome of a successful run.
type Result struct {
	Data        *document.Data
	Payload     []byte
	Output      string
	BackupPath  string
	Catalog     CatalogSource
	UnknownTags []string
	Stats       Stats
}

// Builder runs builds. It is safe to reuse across runs.
type Builder struct {
	renderer *render.Renderer
	layout   *datefmt.Layout
	now      func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithLayout sets the date layout used for front-matter dates.
func WithLayout(layout *datefmt.Layout) Option {
	return func(b *Builder) {
		b.layout = layout
	}
}

// WithClock replaces time.Now for duration measurement.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// New creates a Builder around renderer.
func New(renderer *render.Renderer, opts ...Option) *Builder {
	b := &Builder{
		renderer: renderer,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.renderer == nil {
		b.renderer = render.New(render.DefaultOptions())
	}
	if b.layout == nil {
		b.layout = datefmt.MustCompile(datefmt.DefaultFormat, "")
	}
	return b
}

// Run builds the data document. Any error aborts the run before the output
// is touched.
func (b *Builder) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	start := b.now()

	files, err := Discover(ctx, opts.discoverOptions())
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered articles", logging.FieldArticlesDir, opts.ArticlesDir, logging.FieldFiles, len(files))

	articles, err := b.loadAll(ctx, files, opts.Jobs)
	if err != nil {
		return nil, err
	}
	for _, a := range articles {
		logger.Debug("loaded article", logging.FieldPath, a.Source, logging.FieldID, a.ID)
	}

	about, err := b.load(ctx, opts.AboutFile)
	if err != nil {
		return nil, fmt.Errorf("about page: %w", err)
	}

	tags, source, err := loadCatalog(ctx, opts.TagsFile, articles)
	if err != nil {
		return nil, err
	}
	unknown := catalog.Unknown(tags, articles)
	for _, tag := range unknown {
		logger.Warn("tag not in catalog", logging.FieldTag, tag, logging.FieldPath, opts.TagsFile)
	}

	entries := history.Aggregate(articles)

	data, err := document.Assemble(document.Input{
		Tags:     tags,
		About:    about,
		Articles: articles,
		History:  entries,
	})
	if err != nil {
		return nil, err
	}

	payload, err := document.Marshal(data, opts.Indent)
	if err != nil {
		return nil, err
	}
	if err := document.CheckSchema(payload); err != nil {
		return nil, err
	}

	result := &Result{
		Data:        data,
		Payload:     payload,
		Output:      opts.Output,
		Catalog:     source,
		UnknownTags: unknown,
		Stats:       collectStats(data, unknown, payload),
	}
	result.Stats.DryRun = opts.DryRun

	if !opts.DryRun {
		if err := b.write(ctx, opts, result); err != nil {
			return nil, err
		}
	}

	result.Stats.Duration = b.now().Sub(start)
	return result, nil
}

// load reads, extracts, renders and normalizes one source.
func (b *Builder) load(ctx context.Context, path string) (*article.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build cancelled: %w", err)
	}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	doc, err := frontmatter.Extract(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	rendered, err := b.renderer.Render(ctx, doc.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return article.Normalize(article.Input{
		Source: path,
		Fields: doc.Fields,
		Text:   rendered.HTML,
		TOC:    rendered.TOC,
	}, article.Options{Layout: b.layout})
}

func loadCatalog(ctx context.Context, path string, articles []*article.Article) ([]catalog.Tag, CatalogSource, error) {
	if path != "" {
		tags, err := catalog.Load(ctx, path)
		if err == nil {
			return tags, CatalogFile, nil
		}
		if !errors.Is(err, fsutil.ErrNotFound) {
			return nil, "", err
		}
		logging.FromContext(ctx).Info("tag catalog not found, deriving tags from articles", logging.FieldPath, path)
	}
	return catalog.FromArticles(articles), CatalogDerived, nil
}

func (b *Builder) write(ctx context.Context, opts Options, result *Result) error {
	logger := logging.FromContext(ctx)

	if err := fsutil.EnsureDir(ctx, filepath.Dir(opts.Output)); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if opts.Backup {
		backup, err := fsutil.CreateBackup(ctx, opts.Output)
		if err != nil {
			return err
		}
		if backup != "" {
			logger.Debug("backed up previous output", logging.FieldPath, backup)
		}
		result.BackupPath = backup
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, opts.Output, result.Payload, fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("write %s: %w", opts.Output, err)
	}
	result.Stats.Written = written
	result.Stats.Unchanged = !written
	return nil
}

func collectStats(data *document.Data, unknown []string, payload []byte) Stats {
	stats := Stats{
		Articles:    len(data.Articles),
		Tags:        len(data.Tags),
		UnknownTags: len(unknown),
		Years:       len(data.History),
		Bytes:       len(payload),
	}
	for _, a := range data.Articles {
		if a.Dated() {
			stats.Dated++
		} else {
			stats.Undated++
		}
	}
	return stats
}
