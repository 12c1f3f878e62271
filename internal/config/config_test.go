package config

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/indaco/hubbump/internal/core"
)

/* ------------------------------------------------------------------------- */
/* LOAD CONFIG                                                               */
/* ------------------------------------------------------------------------- */

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("missing default file falls back to defaults", func(t *testing.T) {
		t.Setenv(EnvConfigFile, "")
		t.Setenv(EnvToken, "secret")

		cfg, err := Load(ctx, core.NewMockFileSystem(), "")
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		want := Default()
		if cfg.HubDir != want.HubDir || cfg.CoreDir != want.CoreDir || cfg.HubRepo != want.HubRepo ||
			cfg.BaseBranch != "master" || cfg.Remote != "origin" || cfg.ManifestPattern != "manifest.yml" {
			t.Errorf("unexpected defaults: %+v", cfg)
		}
		if cfg.Token != "secret" || cfg.Source != "" {
			t.Errorf("Token = %q, Source = %q", cfg.Token, cfg.Source)
		}
		if !cfg.Merge.IsEnabled() || cfg.Merge.MaxAttempts != DefaultMergeAttempts || cfg.Merge.Method != "merge" {
			t.Errorf("unexpected merge defaults: %+v", cfg.Merge)
		}
		if !slices.Equal(cfg.Excludes, DefaultExcludes) || !slices.Contains(cfg.Excludes, "node_modules") {
			t.Errorf("Excludes = %v, want %v", cfg.Excludes, DefaultExcludes)
		}
		cfg.Excludes[0] = "changed"
		if DefaultExcludes[0] == "changed" {
			t.Error("Default() shares its excludes with DefaultExcludes")
		}
	})

	t.Run("empty excludes scan every directory", func(t *testing.T) {
		t.Setenv(EnvConfigFile, "")
		fsys := core.NewMockFileSystem()
		fsys.SetFile(DefaultConfigFile, []byte("hub-dir: plugins\nexcludes: []\n"))

		cfg, err := Load(ctx, fsys, "")
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.Excludes == nil || len(cfg.Excludes) != 0 {
			t.Errorf("Excludes = %#v, want an empty list", cfg.Excludes)
		}
	})

	t.Run("default file", func(t *testing.T) {
		t.Setenv(EnvConfigFile, "")
		fsys := core.NewMockFileSystem()
		fsys.SetFile(DefaultConfigFile, []byte(`hub-dir: plugins
core-repo: acme/core
excludes: [legacy]
merge:
  enabled: false
  max-attempts: 5
  interval: 1m
  method: squash
`))

		cfg, err := Load(ctx, fsys, "")
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.HubDir != "plugins" || cfg.CoreRepo != "acme/core" || cfg.Source != DefaultConfigFile {
			t.Errorf("unexpected config: %+v", cfg)
		}
		if cfg.HubRepo != DefaultHubRepo || cfg.CoreDir != DefaultCoreDir {
			t.Errorf("defaults not applied: %+v", cfg)
		}
		if !slices.Equal(cfg.Excludes, []string{"legacy"}) {
			t.Errorf("Excludes = %v", cfg.Excludes)
		}
		if cfg.Merge.IsEnabled() || cfg.Merge.MaxAttempts != 5 || cfg.Merge.Method != "squash" {
			t.Errorf("unexpected merge config: %+v", cfg.Merge)
		}
		if d, err := cfg.Merge.IntervalDuration(); err != nil || d != time.Minute {
			t.Errorf("IntervalDuration() = %v, %v", d, err)
		}
	})

	t.Run("env file wins over default file", func(t *testing.T) {
		fsys := core.NewMockFileSystem()
		fsys.SetFile(DefaultConfigFile, []byte("hub-dir: from-default\n"))
		fsys.SetFile("/etc/hubbump.yaml", []byte("hub-dir: from-env\n"))
		t.Setenv(EnvConfigFile, "/etc/hubbump.yaml")

		cfg, err := Load(ctx, fsys, "")
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.HubDir != "from-env" {
			t.Errorf("HubDir = %q, want from-env", cfg.HubDir)
		}
	})

	t.Run("explicit path wins over env", func(t *testing.T) {
		fsys := core.NewMockFileSystem()
		fsys.SetFile("/etc/hubbump.yaml", []byte("hub-dir: from-env\n"))
		fsys.SetFile("/work/custom.yaml", []byte("hub-dir: from-flag\n"))
		t.Setenv(EnvConfigFile, "/etc/hubbump.yaml")

		cfg, err := Load(ctx, fsys, "/work/custom.yaml")
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.HubDir != "from-flag" {
			t.Errorf("HubDir = %q, want from-flag", cfg.HubDir)
		}
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		_, err := Load(ctx, core.NewMockFileSystem(), "/nope.yaml")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected fs.ErrNotExist, got %v", err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		fsys := core.NewMockFileSystem()
		fsys.SetFile("/work/empty.yaml", []byte("\n"))
		cfg, err := Load(ctx, fsys, "/work/empty.yaml")
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.HubDir != DefaultHubDir {
			t.Errorf("HubDir = %q", cfg.HubDir)
		}
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		fsys := core.NewMockFileSystem()
		fsys.SetFile("/work/typo.yaml", []byte("hub-dri: plugins\n"))
		_, err := Load(ctx, fsys, "/work/typo.yaml")
		if err == nil || !strings.Contains(err.Error(), "/work/typo.yaml") {
			t.Errorf("expected parse error naming the file, got %v", err)
		}
	})

	t.Run("read error", func(t *testing.T) {
		fsys := core.NewMockFileSystem()
		fsys.ReadErr = errors.New("disk on fire")
		if _, err := Load(ctx, fsys, "/work/x.yaml"); !errors.Is(err, fsys.ReadErr) {
			t.Errorf("expected read error, got %v", err)
		}
	})
}

func TestLoad_OSFileSystem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".hubbump.yaml")
	cfg := Default()
	cfg.HubDir = "plugins"
	cfg.Token = "must-not-be-written"

	ctx := context.Background()
	osfs := core.NewOSFileSystem()
	if err := Save(ctx, osfs, cfg, path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, err := osfs.ReadFile(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "must-not-be-written") {
		t.Error("token was written to the config file")
	}

	t.Setenv(EnvToken, "")
	loaded, err := Load(ctx, osfs, path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.HubDir != "plugins" || loaded.Merge.Interval != DefaultMergeInterval {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}

func TestSave_WriteError(t *testing.T) {
	fsys := core.NewMockFileSystem()
	fsys.WriteErr = errors.New("read-only")
	if err := Save(context.Background(), fsys, Default(), "/x.yaml"); !errors.Is(err, fsys.WriteErr) {
		t.Errorf("expected write error, got %v", err)
	}
}

/* ------------------------------------------------------------------------- */
/* VALIDATION                                                                */
/* ------------------------------------------------------------------------- */

func validFixture() (*core.MockFileSystem, *Config) {
	fsys := core.NewMockFileSystem()
	fsys.SetFile("/work/jina-hub/encoders/a/manifest.yml", []byte("version: 0.0.1\n"))
	fsys.SetFile("/work/setup.py", []byte(""))

	cfg := Default()
	cfg.HubDir = "/work/jina-hub"
	cfg.CoreDir = "/work"
	return fsys, cfg
}

func TestValidator_Valid(t *testing.T) {
	fsys, cfg := validFixture()
	results := NewValidator(fsys, cfg).Validate(context.Background())
	if HasErrors(results) {
		t.Fatalf("unexpected errors: %v", Err(results))
	}
	if WarningCount(results) != 0 {
		t.Errorf("unexpected warnings: %+v", results)
	}
}

func TestValidator_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		message string
	}{
		{"missing hub dir", func(c *Config) { c.HubDir = "/work/missing" }, "does not exist"},
		{"hub dir is a file", func(c *Config) { c.HubDir = "/work/setup.py" }, "is not a directory"},
		{"empty core dir", func(c *Config) { c.CoreDir = "" }, "core-dir is empty"},
		{"bad pattern", func(c *Config) { c.ManifestPattern = "[" }, "manifest-pattern"},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, "max-depth"},
		{"bad slug", func(c *Config) { c.HubRepo = "jina-hub" }, "owner/name"},
		{"nested slug", func(c *Config) { c.HubRepo = "a/b/c" }, "owner/name"},
		{"empty remote", func(c *Config) { c.Remote = "" }, "remote"},
		{"negative attempts", func(c *Config) { c.Merge.MaxAttempts = -2 }, "max-attempts"},
		{"bad interval", func(c *Config) { c.Merge.Interval = "soon" }, "interval"},
		{"negative interval", func(c *Config) { c.Merge.Interval = "-1s" }, "negative"},
		{"bad method", func(c *Config) { c.Merge.Method = "octopus" }, "merge.method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys, cfg := validFixture()
			tt.mutate(cfg)

			results := NewValidator(fsys, cfg).Validate(context.Background())
			if ErrorCount(results) != 1 {
				t.Fatalf("expected 1 error, got %d: %+v", ErrorCount(results), results)
			}
			err := Err(results)
			if err == nil || !strings.Contains(err.Error(), tt.message) {
				t.Errorf("expected error containing %q, got %v", tt.message, err)
			}
		})
	}
}

func TestValidator_Warnings(t *testing.T) {
	fsys, cfg := validFixture()
	cfg.CoreRepo = ""
	cfg.Excludes = []string{"legacy", " "}
	cfg.Merge.Interval = "0s"
	cfg.Theme = "neon"

	results := NewValidator(fsys, cfg).Validate(context.Background())
	if HasErrors(results) {
		t.Fatalf("unexpected errors: %v", Err(results))
	}
	if got := WarningCount(results); got != 4 {
		t.Errorf("WarningCount() = %d, want 4: %+v", got, results)
	}

	disabled := false
	cfg.Merge.Enabled = &disabled
	results = NewValidator(fsys, cfg).Validate(context.Background())
	if got := WarningCount(results); got != 3 {
		t.Errorf("WarningCount() with merge disabled = %d, want 3", got)
	}
}

func TestErr_NoFailures(t *testing.T) {
	if err := Err([]ValidationResult{{Category: "x", Passed: true}}); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}
