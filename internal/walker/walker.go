package walker

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultMaxFileSize is the largest content file read (1 MB).
const DefaultMaxFileSize int64 = 1 << 20

// DefaultInclude matches every Markdown file below the root.
var DefaultInclude = []string{"**/*.md"}

// File is a content file discovered during traversal.
type File struct {
	Path    string // Absolute path on disk.
	RelPath string // Slash-separated path relative to the root directory.
	Size    int64
}

// Config controls Walk.
type Config struct {
	RootDir     string
	Include     []string // Glob patterns; empty means DefaultInclude.
	Exclude     []string // Glob patterns; matching files are skipped.
	MaxFileSize int64    // 0 means DefaultMaxFileSize.
}

// Walk returns the content files under config.RootDir that pass the
// include/exclude filters, sorted by relative path so page order is stable.
// Hidden directories and files are skipped.
func Walk(config Config) ([]File, error) {
	root, err := filepath.Abs(config.RootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}

	include := config.Include
	if len(include) == 0 {
		include = DefaultInclude
	}
	maxSize := config.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	var files []File
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && shouldExcludeDir(name) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || strings.HasPrefix(name, ".") {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if !MatchesInclude(relPath, include) || MatchesExclude(relPath, config.Exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Size() > maxSize {
			return nil
		}

		files = append(files, File{
			Path:    path,
			RelPath: filepath.ToSlash(relPath),
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}
