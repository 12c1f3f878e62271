package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/indaco/hubbump/internal/core"
)

const (
	// DefaultConfigFile is read from the working directory when no other
	// config file is given.
	DefaultConfigFile = ".hubbump.yaml"

	// EnvConfigFile names an alternative config file.
	EnvConfigFile = "HUBBUMP_CONFIG"
	// EnvToken holds the GitHub API token.
	EnvToken = "GITHUB_TOKEN"
)

// Defaults applied to every field left empty in the config file.
const (
	DefaultHubDir          = "jina-hub"
	DefaultCoreDir         = "."
	DefaultManifestPattern = "manifest.yml"
	DefaultBaseBranch      = "master"
	DefaultRemote          = "origin"
	DefaultHubRepo         = "jina-ai/jina-hub"
	DefaultCoreRepo        = "jina-ai/jina"
	DefaultMergeAttempts   = 30
	DefaultMergeInterval   = "10s"
	DefaultMergeMethod     = "merge"
)

// DefaultExcludes keeps build output and dependency trees out of discovery
// when the config file has no excludes key. An explicit empty list scans
// everything.
var DefaultExcludes = []string{"build", "dist", "target", "vendor", "node_modules", "__pycache__"}

// ConfigFilePerm defines the permissions of a written config file.
const ConfigFilePerm = core.PermFile

// MergeConfig controls the polling loop that merges opened pull requests.
type MergeConfig struct {
	Enabled     *bool  `yaml:"enabled,omitempty"`
	MaxAttempts int    `yaml:"max-attempts,omitempty"`
	Interval    string `yaml:"interval,omitempty"`
	Method      string `yaml:"method,omitempty"`
}

// IsEnabled reports whether merge polling runs. It defaults to true.
func (m *MergeConfig) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// IntervalDuration parses Interval.
func (m *MergeConfig) IntervalDuration() (time.Duration, error) {
	d, err := time.ParseDuration(m.Interval)
	if err != nil {
		return 0, fmt.Errorf("invalid merge interval %q: %w", m.Interval, err)
	}
	return d, nil
}

// Config is the main configuration structure for hubbump.
type Config struct {
	HubDir             string      `yaml:"hub-dir"`
	CoreDir            string      `yaml:"core-dir"`
	ManifestPattern    string      `yaml:"manifest-pattern"`
	MaxDepth           int         `yaml:"max-depth,omitempty"`
	Excludes           []string    `yaml:"excludes,omitempty"`
	BaseBranch         string      `yaml:"base-branch"`
	Remote             string      `yaml:"remote"`
	HubRepo            string      `yaml:"hub-repo"`
	CoreRepo           string      `yaml:"core-repo"`
	CoreVersion        string      `yaml:"core-version,omitempty"`
	IncludePrereleases bool        `yaml:"include-prereleases,omitempty"`
	APIURL             string      `yaml:"api-url,omitempty"`
	Theme              string      `yaml:"theme,omitempty"`
	Merge              MergeConfig `yaml:"merge"`

	// Token is only read from the environment.
	Token string `yaml:"-"`

	// Source is the file the config was read from, empty for defaults.
	Source string `yaml:"-"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	setDefault(&c.HubDir, DefaultHubDir)
	setDefault(&c.CoreDir, DefaultCoreDir)
	setDefault(&c.ManifestPattern, DefaultManifestPattern)
	setDefault(&c.BaseBranch, DefaultBaseBranch)
	setDefault(&c.Remote, DefaultRemote)
	setDefault(&c.HubRepo, DefaultHubRepo)
	setDefault(&c.CoreRepo, DefaultCoreRepo)
	setDefault(&c.Merge.Interval, DefaultMergeInterval)
	setDefault(&c.Merge.Method, DefaultMergeMethod)
	if c.Excludes == nil {
		c.Excludes = slices.Clone(DefaultExcludes)
	}
	if c.Merge.MaxAttempts == 0 {
		c.Merge.MaxAttempts = DefaultMergeAttempts
	}
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// LoadConfigFn is replaced in tests of the command layer.
var LoadConfigFn = func(ctx context.Context, path string) (*Config, error) {
	return Load(ctx, core.NewOSFileSystem(), path)
}

// Load reads the configuration. The file is, by priority: path, the file
// named by HUBBUMP_CONFIG, then DefaultConfigFile. A missing DefaultConfigFile
// yields the defaults; a missing explicitly named file is an error. The
// token always comes from GITHUB_TOKEN.
func Load(ctx context.Context, fsys core.FileSystem, path string) (*Config, error) {
	explicit := true
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path == "" {
		path = DefaultConfigFile
		explicit = false
	}

	cfg, err := loadFile(ctx, fsys, path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		cfg = Default()
	case err != nil:
		return nil, err
	}

	cfg.Token = os.Getenv(EnvToken)
	return cfg, nil
}

func loadFile(ctx context.Context, fsys core.FileSystem, path string) (*Config, error) {
	data, err := fsys.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	var cfg Config
	if len(bytes.TrimSpace(data)) > 0 {
		decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
		}
	}
	cfg.applyDefaults()
	cfg.Source = path
	return &cfg, nil
}

// Save writes cfg as YAML to path.
func Save(ctx context.Context, fsys core.FileSystem, cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to %q: %w", path, err)
	}
	if err := fsys.WriteFile(ctx, path, data, ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", path, err)
	}
	return nil
}
