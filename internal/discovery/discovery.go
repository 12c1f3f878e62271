package discovery

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/indaco/hubbump/internal/core"
)

// Service provides manifest discovery.
type Service struct {
	fs core.FileSystem
}

// NewService creates a new discovery Service.
func NewService(fs core.FileSystem) *Service {
	if fs == nil {
		fs = core.NewOSFileSystem()
	}
	return &Service{fs: fs}
}

// Discover returns every manifest under root matching opts.Pattern, sorted
// by path so that modules are always processed in the same order.
func (s *Service) Discover(ctx context.Context, root string, opts Options) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pattern := opts.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid manifest pattern %q: %w", pattern, err)
	}

	info, err := s.fs.Stat(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("cannot read hub directory %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("hub path %q is not a directory", root)
	}

	var candidates []Candidate
	err = s.walkDirectory(ctx, root, 0, opts.MaxDepth, opts.Excludes, func(path string) error {
		name := filepath.Base(path)
		if matched, _ := filepath.Match(pattern, name); !matched {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}

		candidates = append(candidates, Candidate{
			Path:    path,
			RelPath: relPath,
			Module:  filepath.Base(filepath.Dir(path)),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Path < candidates[j].Path })
	return candidates, nil
}

// walkDirectory walks the directory tree calling fn for every regular file.
func (s *Service) walkDirectory(ctx context.Context, dir string, depth, maxDepth int, excludes []string, fn func(string) error) error {
	if maxDepth > 0 && depth > maxDepth {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := s.fs.ReadDir(ctx, dir)
	if err != nil {
		// Skip directories we can't read
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		if shouldExclude(name, path, entry.IsDir(), excludes) {
			continue
		}

		if entry.IsDir() {
			if err := s.walkDirectory(ctx, path, depth+1, maxDepth, excludes, fn); err != nil {
				return err
			}
			continue
		}

		if err := fn(path); err != nil {
			return err
		}
	}

	return nil
}

// shouldExclude checks if a path should be excluded from scanning.
func shouldExclude(name, path string, isDir bool, excludes []string) bool {
	// Hidden directories (.git, .github, ...) never hold modules.
	if isDir && strings.HasPrefix(name, ".") {
		return true
	}

	for _, pattern := range excludes {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
	}

	return false
}
