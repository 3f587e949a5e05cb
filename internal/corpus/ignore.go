// ABOUTME: Optional .guideignore at the corpus root, in gitignore syntax
// ABOUTME: Ignored entries disappear from listings, the index, and suggestions

package corpus

import (
	"errors"
	"io/fs"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"

	pilog "github.com/mauromedda/automate-go/internal/log"
)

// IgnoreFile is read from the corpus root on every listing so edits apply immediately.
const IgnoreFile = ".guideignore"

type ignoreMatcher struct {
	gi *ignore.GitIgnore
}

func (s *Store) loadIgnore() ignoreMatcher {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(s.root, IgnoreFile))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			pilog.Warn("corpus: ignoring unreadable %s: %v", IgnoreFile, err)
		}
		return ignoreMatcher{}
	}
	return ignoreMatcher{gi: gi}
}

// ignored reports whether the corpus-relative slash path is excluded.
// Directories are also tested with a trailing slash so "drafts/" patterns match.
func (m ignoreMatcher) ignored(rel string, isDir bool) bool {
	if m.gi == nil {
		return false
	}
	if isDir && m.gi.MatchesPath(rel+"/") {
		return true
	}
	return m.gi.MatchesPath(rel)
}
