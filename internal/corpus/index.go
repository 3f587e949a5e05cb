// ABOUTME: Corpus index: one "category/file.md" entry per guide with its title
// ABOUTME: Titles are read concurrently with a bounded errgroup

package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

const indexConcurrency = 8

// IndexEntry names one guide for the system prompt.
type IndexEntry struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

// Index lists every guide one level below a category, sorted by path.
// A missing root yields an empty index.
func (s *Store) Index(ctx context.Context) ([]IndexEntry, error) {
	paths, err := s.guidePaths()
	if err != nil {
		return nil, fmt.Errorf("indexing guides: %w", err)
	}

	entries := make([]IndexEntry, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(indexConcurrency)

	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(p)))
			if err != nil {
				return fmt.Errorf("reading %s: %w", p, err)
			}
			entries[i] = IndexEntry{Path: p, Title: Title(p, string(data))}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
