package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/indaco/hubbump/internal/core"
)

// ErrNotFound is returned by Load when the manifest file does not exist.
var ErrNotFound = errors.New("manifest not found")

// Store loads and saves manifests through a core.FileSystem.
type Store struct {
	fs core.FileSystem
}

// NewStore creates a Store. A nil fs uses the OS filesystem.
func NewStore(fs core.FileSystem) *Store {
	if fs == nil {
		fs = core.NewOSFileSystem()
	}
	return &Store{fs: fs}
}

// Load reads the manifest at path and extracts its version fields.
func (s *Store) Load(ctx context.Context, path string) (*Manifest, error) {
	format, err := FormatForFile(path)
	if err != nil {
		return nil, err
	}

	data, err := s.fs.ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}

	ed := editorFor(format)
	m := &Manifest{
		Path:   path,
		Format: format,
		data:   data,
		editor: ed,
	}

	version, ok, err := ed.get(data, FieldVersion)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if !ok || version == "" {
		return nil, &FieldError{Path: path, Field: FieldVersion, Reason: "is required"}
	}
	m.Version = version

	coreVersion, ok, err := ed.get(data, FieldCoreVersion)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if ok && coreVersion == "" {
		return nil, &FieldError{Path: path, Field: FieldCoreVersion, Reason: "is empty"}
	}
	if ok {
		m.CoreVersion = coreVersion
		m.HasCoreVersion = true
	}

	return m, nil
}

// Save writes the manifest document back to its path.
func (s *Store) Save(ctx context.Context, m *Manifest) error {
	if err := s.fs.WriteFile(ctx, m.Path, m.data, core.PermFile); err != nil {
		return fmt.Errorf("failed to write manifest %q: %w", m.Path, err)
	}
	return nil
}
