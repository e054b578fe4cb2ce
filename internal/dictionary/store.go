// Package dictionary reads and writes the Markdown entries of the dictionary.
package dictionary

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/heartmarshall/dictmeta/internal/domain"
)

const indexFile = "index.md"

// Store is the dictionary directory.
type Store struct {
	root string
	log  *slog.Logger
}

// NewStore creates a Store rooted at root.
func NewStore(root string, logger *slog.Logger) *Store {
	return &Store{
		root: root,
		log:  logger.With("component", "dictionary"),
	}
}

// List returns the path of every entry under the root, sorted. Index pages
// are not entries.
func (s *Store) List() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" || d.Name() == indexFile {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("dictionary: list %s: %w", s.root, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("dictionary: list %s: %w", s.root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// PathFor returns where the entry for word lives: <root>/<first letter>/<word>.md.
func (s *Store) PathFor(word string) string {
	w := domain.NormalizeWord(word)
	return filepath.Join(s.root, domain.FirstLetter(w), w+".md")
}

// Load reads and parses the entry at path.
func (s *Store) Load(path string) (*Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("dictionary: load %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("dictionary: load %s: %w", path, err)
	}

	fm, body, err := Split(string(raw))
	if err != nil {
		return nil, fmt.Errorf("dictionary: load %s: %w", path, err)
	}
	return &Entry{Path: path, FrontMatter: fm, Body: body}, nil
}

// Save writes e back to its path, replacing the file atomically.
func (s *Store) Save(e *Entry) error {
	content, err := Join(e.FrontMatter, e.Body)
	if err != nil {
		return fmt.Errorf("dictionary: save %s: %w", e.Path, err)
	}

	dir := filepath.Dir(e.Path)
	tmp, err := os.CreateTemp(dir, "."+strings.TrimSuffix(filepath.Base(e.Path), ".md")+"-*.tmp")
	if err != nil {
		return fmt.Errorf("dictionary: save %s: %w", e.Path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("dictionary: save %s: %w", e.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("dictionary: save %s: %w", e.Path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("dictionary: save %s: %w", e.Path, err)
	}
	if err := os.Rename(tmp.Name(), e.Path); err != nil {
		return fmt.Errorf("dictionary: save %s: %w", e.Path, err)
	}

	s.log.Debug("entry saved", slog.String("path", e.Path))
	return nil
}
