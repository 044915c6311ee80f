package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/legal"
)

// ScannedFile represents a legal text found during corpus scanning.
type ScannedFile struct {
	RelPath string        // Relative path from corpus root, forward slashes
	AbsPath string        // Absolute file path
	DocType legal.DocType // Detected from the relative path
}

var textExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// Scan walks the corpus and returns every .txt and .md file, sorted by
// relative path. Hidden directories are skipped.
func (c *Corpus) Scan(ctx context.Context) ([]ScannedFile, error) {
	var files []ScannedFile

	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != c.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !textExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		relPath, err := filepath.Rel(c.root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}
		relPath = filepath.ToSlash(relPath)

		files = append(files, ScannedFile{
			RelPath: relPath,
			AbsPath: path,
			DocType: legal.DetectDocType(relPath),
		})
		return nil
	})
	if err != nil {
		return files, fmt.Errorf("failed to scan corpus %s: %w", c.root, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})
	return files, nil
}
