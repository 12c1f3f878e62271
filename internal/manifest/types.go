package manifest

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Field names read and written by hubbump.
const (
	// FieldVersion holds the module's own dotted version.
	FieldVersion = "version"

	// FieldCoreVersion holds the minimum core version the module requires.
	FieldCoreVersion = "jina-version"
)

// Format identifies the serialization of a manifest file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// FormatForFile detects the manifest format from the file extension.
func FormatForFile(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported manifest format for %q", path)
	}
}

// Manifest is the loaded content of one plugin manifest.
//
// Only Version and CoreVersion are interpreted. The raw document is kept so
// that every other key, and where the format allows it comments and key
// order, survives a Save unchanged.
type Manifest struct {
	Path        string
	Format      Format
	Version     string
	CoreVersion string

	// HasCoreVersion is false when the manifest does not declare FieldCoreVersion.
	HasCoreVersion bool

	data   []byte
	editor editor
}

// Module returns the module name, i.e. the directory holding the manifest.
func (m *Manifest) Module() string {
	return filepath.Base(filepath.Dir(m.Path))
}

// Bytes returns the current serialized document.
func (m *Manifest) Bytes() []byte {
	return m.data
}

// SetVersion rewrites FieldVersion in the document.
func (m *Manifest) SetVersion(version string) error {
	if err := m.set(FieldVersion, version); err != nil {
		return err
	}
	m.Version = version
	return nil
}

// SetCoreVersion rewrites, or adds, FieldCoreVersion in the document.
func (m *Manifest) SetCoreVersion(version string) error {
	if err := m.set(FieldCoreVersion, version); err != nil {
		return err
	}
	m.CoreVersion = version
	m.HasCoreVersion = true
	return nil
}

func (m *Manifest) set(field, value string) error {
	updated, err := m.editor.set(m.data, field, value)
	if err != nil {
		return &ParseError{Path: m.Path, Err: fmt.Errorf("set %s: %w", field, err)}
	}
	m.data = updated
	return nil
}

// editor reads and writes top-level string fields of one document format.
type editor interface {
	// get returns the value of field and whether it is present. An explicit
	// null is present with an empty value.
	get(data []byte, field string) (string, bool, error)

	// set returns data with field set to value, adding the field if needed.
	set(data []byte, field, value string) ([]byte, error)
}

func editorFor(f Format) editor {
	switch f {
	case FormatJSON:
		return jsonEditor{}
	case FormatTOML:
		return tomlEditor{}
	default:
		return yamlEditor{}
	}
}

// ParseError indicates that a manifest could not be decoded or re-encoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse manifest at %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// FieldError indicates a required field is missing or has the wrong shape.
type FieldError struct {
	Path   string
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid manifest at %s: field %q %s", e.Path, e.Field, e.Reason)
}
