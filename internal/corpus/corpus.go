// Package corpus locates the legal texts to ingest.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
)

// Corpus is a directory tree of legal texts. Folder and file names carry
// the law's name, which decides each file's doc type.
type Corpus struct {
	root string
}

// New creates a corpus rooted at root. The directory must exist.
func New(root string) (*Corpus, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve corpus path %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to access corpus path %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus path %s is not a directory", abs)
	}
	return &Corpus{root: abs}, nil
}

// Root returns the absolute corpus root.
func (c *Corpus) Root() string {
	return c.root
}

// AbsPath returns the absolute path of a file given its relative path.
func (c *Corpus) AbsPath(relPath string) string {
	return filepath.Join(c.root, filepath.FromSlash(relPath))
}
