// ABOUTME: Two-level guide corpus on disk: <root>/<category>/<guide>.md
// ABOUTME: Path confinement, NFC normalization, listing, preview, read, and write

package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/unicode/norm"
)

// PreviewLines is the number of leading lines returned by Preview.
const PreviewLines = 10

// DefaultCategories are created by EnsureLayout on first use.
var DefaultCategories = []string{"websites", "applications", "workflows"}

var (
	// ErrNotFound is returned when a guide or directory does not exist.
	ErrNotFound = errors.New("guide not found")
	// ErrOutsideCorpus is returned for paths that escape the corpus root.
	ErrOutsideCorpus = errors.New("path escapes guide directory")
)

// Entry is one item of a directory listing.
type Entry struct {
	Name  string
	IsDir bool
}

// String renders the entry the way listings show it: directories end in "/".
func (e Entry) String() string {
	if e.IsDir {
		return e.Name + "/"
	}
	return e.Name
}

// Store is a guide corpus rooted at a directory.
type Store struct {
	root string
}

// Open returns a Store rooted at root. The directory need not exist yet.
func Open(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Root returns the corpus root directory.
func (s *Store) Root() string {
	return s.root
}

// EnsureLayout creates the root and the default categories when the root is missing.
// An existing root is left untouched.
func (s *Store) EnsureLayout() error {
	if _, err := os.Stat(s.root); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking guide directory: %w", err)
	}
	for _, c := range DefaultCategories {
		if err := os.MkdirAll(filepath.Join(s.root, c), 0o755); err != nil {
			return fmt.Errorf("creating guide category %s: %w", c, err)
		}
	}
	return nil
}

// resolve maps a corpus-relative path to an absolute one inside the root.
// Leading slashes are ignored, so "/websites" and "websites" are the same entry.
func (s *Store) resolve(rel string) (string, string, error) {
	clean := norm.NFC.String(strings.TrimSpace(rel))
	clean = strings.TrimLeft(filepath.ToSlash(clean), "/")
	if clean == "" {
		return s.root, "", nil
	}
	clean = filepath.Clean(filepath.FromSlash(clean))
	if !filepath.IsLocal(clean) {
		return "", "", fmt.Errorf("%w: %s", ErrOutsideCorpus, rel)
	}
	return filepath.Join(s.root, clean), filepath.ToSlash(clean), nil
}

// List returns the visible entries of a corpus directory, directories first,
// then alphabetical. Hidden and .guideignore'd entries are skipped.
// A missing directory yields an empty listing.
func (s *Store) List(rel string) ([]Entry, error) {
	abs, clean, err := s.resolve(rel)
	if err != nil {
		return nil, err
	}

	dirents, err := os.ReadDir(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", rel, err)
	}

	skip := s.loadIgnore()
	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		if strings.HasPrefix(d.Name(), ".") || skip.ignored(path.Join(clean, d.Name()), d.IsDir()) {
			continue
		}
		entries = append(entries, Entry{Name: d.Name(), IsDir: d.IsDir()})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Read returns the full text of a guide.
func (s *Store) Read(rel string) (string, error) {
	abs, clean, err := s.resolve(rel)
	if err != nil {
		return "", err
	}
	if clean == "" {
		return "", fmt.Errorf("path is a directory: %s", rel)
	}

	info, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return "", s.notFound(clean)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rel, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is a directory: %s", clean)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", clean, err)
	}
	return string(data), nil
}

// Preview returns the first PreviewLines lines of a guide.
func (s *Store) Preview(rel string) (string, error) {
	text, err := s.Read(rel)
	if err != nil {
		return "", err
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) > PreviewLines {
		lines = lines[:PreviewLines]
	}
	return strings.Join(lines, "\n"), nil
}

// Write stores content at rel, creating parent directories as needed.
func (s *Store) Write(rel, content string) error {
	abs, clean, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if clean == "" {
		return fmt.Errorf("path is a directory: %s", rel)
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return fmt.Errorf("path is a directory: %s", clean)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("creating parent of %s: %w", clean, err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", clean, err)
	}
	return nil
}

// notFound builds an ErrNotFound, suggesting the closest existing guide path.
func (s *Store) notFound(clean string) error {
	if best := s.closest(clean); best != "" {
		return fmt.Errorf("%w: %s (did you mean %s?)", ErrNotFound, clean, best)
	}
	return fmt.Errorf("%w: %s", ErrNotFound, clean)
}

func (s *Store) closest(clean string) string {
	paths, err := s.guidePaths()
	if err != nil || len(paths) == 0 {
		return ""
	}
	if m := fuzzy.Find(clean, paths); len(m) > 0 {
		return m[0].Str
	}
	// Fall back to matching the base name only.
	if m := fuzzy.Find(filepath.Base(clean), paths); len(m) > 0 {
		return m[0].Str
	}
	return ""
}

// guidePaths returns every visible "category/file.md" path, sorted.
func (s *Store) guidePaths() ([]string, error) {
	cats, err := s.List("")
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, c := range cats {
		if !c.IsDir {
			continue
		}
		files, err := s.List(c.Name)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if !f.IsDir && strings.EqualFold(filepath.Ext(f.Name), ".md") {
				paths = append(paths, c.Name+"/"+f.Name)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}
