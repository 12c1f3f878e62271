package discovery

// Candidate is a manifest file found during discovery.
type Candidate struct {
	// Path is the manifest path as passed to the filesystem.
	Path string

	// RelPath is Path relative to the discovery root.
	RelPath string

	// Module is the name of the directory holding the manifest.
	Module string
}

// Options controls a discovery walk.
type Options struct {
	// Pattern is matched against file names with filepath.Match.
	Pattern string

	// MaxDepth limits how many directory levels below the root are scanned.
	// Zero or a negative value means no limit.
	MaxDepth int

	// Excludes are extra filepath.Match patterns for names or paths to skip.
	Excludes []string
}

// DefaultPattern matches the manifest file name used by hub modules.
const DefaultPattern = "manifest.yml"
