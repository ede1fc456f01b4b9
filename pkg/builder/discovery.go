package builder

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dcruzf/blog-data/pkg/fsutil"
)

// DefaultExtensions are the file extensions treated as articles.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// DiscoverOptions selects article files.
type DiscoverOptions struct {
	// Dir is the articles directory.
	Dir string

	// Extensions are matched case-insensitively, with leading dot.
	// Empty means DefaultExtensions.
	Extensions []string

	// Recursive descends into subdirectories. Hidden directories are
	// always skipped.
	Recursive bool

	// Exclude holds glob patterns matched against paths relative to Dir
	// and against base names. "dir/**" and "**/name" forms are supported.
	Exclude []string

	// Skip lists files to leave out, such as the about page.
	Skip []string
}

// Discover returns the article files under opts.Dir sorted by path. Paths
// are Dir joined with the path relative to it.
func Discover(ctx context.Context, opts DiscoverOptions) ([]string, error) {
	if err := fsutil.CheckDir(opts.Dir); err != nil {
		return nil, fmt.Errorf("articles directory: %w", err)
	}

	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = DefaultExtensions()
	}

	skip := make(map[string]struct{}, len(opts.Skip))
	for _, p := range opts.Skip {
		if abs, err := filepath.Abs(p); err == nil {
			skip[abs] = struct{}{}
		}
	}

	var files []string
	err := filepath.WalkDir(opts.Dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			return walkErr
		}

		rel, relErr := filepath.Rel(opts.Dir, path)
		if relErr != nil {
			rel = path
		}

		if entry.IsDir() {
			if path == opts.Dir {
				return nil
			}
			if !opts.Recursive || strings.HasPrefix(entry.Name(), ".") || excluded(rel, opts.Exclude) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") ||
			!hasExtension(path, extensions) ||
			excluded(rel, opts.Exclude) {
			return nil
		}

		if abs, err := filepath.Abs(path); err == nil {
			if _, ok := skip[abs]; ok {
				return nil
			}
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil || info.IsDir() {
				return nil //nolint:nilerr // Broken or directory symlinks are not articles.
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover articles in %s: %w", opts.Dir, err)
	}

	sort.Strings(files)
	return files, nil
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

func excluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(rel, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches rel against pattern, then against its base name.
func matchGlob(rel, pattern string) bool {
	rel = filepath.ToSlash(rel)
	pattern = filepath.ToSlash(pattern)

	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return rel == prefix || strings.HasPrefix(rel, prefix+"/")
	}
	if suffix, ok := strings.CutPrefix(pattern, "**/"); ok {
		for _, part := range strings.Split(rel, "/") {
			if matched, _ := filepath.Match(suffix, part); matched {
				return true
			}
		}
		return false
	}

	if matched, err := filepath.Match(pattern, rel); err == nil && matched {
		return true
	}
	matched, err := filepath.Match(pattern, filepath.Base(rel))
	return err == nil && matched
}
