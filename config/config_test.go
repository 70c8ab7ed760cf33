package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Taxonomy.Path != "." {
		t.Errorf("expected default taxonomy path '.', got %s", cfg.Taxonomy.Path)
	}
	if len(cfg.Taxonomy.Include) == 0 {
		t.Error("expected default include patterns")
	}
	if !cfg.Taxonomy.WithDefaults {
		t.Error("expected with_defaults true by default")
	}
	if cfg.Export.Format != "yaml" {
		t.Errorf("expected default export format yaml, got %s", cfg.Export.Format)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing taxonomy path",
			modify:  func(c *Config) { c.Taxonomy.Path = "" },
			wantErr: true,
		},
		{
			name:    "no include patterns",
			modify:  func(c *Config) { c.Taxonomy.Include = nil },
			wantErr: true,
		},
		{
			name:    "unknown export format",
			modify:  func(c *Config) { c.Export.Format = "turtle" },
			wantErr: true,
		},
		{
			name:    "json export format",
			modify:  func(c *Config) { c.Export.Format = "json" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	other := DefaultConfig()
	other.Taxonomy.Path = "/data/taxonomy"
	other.Taxonomy.WithDefaults = false
	other.Export.Format = "json"
	other.Watch.DebounceDelay = "2s"

	base.Merge(other)

	if base.Taxonomy.Path != "/data/taxonomy" {
		t.Errorf("taxonomy path = %s, want /data/taxonomy", base.Taxonomy.Path)
	}
	if base.Taxonomy.WithDefaults {
		t.Error("with_defaults should be overridden to false")
	}
	if base.Export.Format != "json" {
		t.Errorf("export format = %s, want json", base.Export.Format)
	}
	if base.Watch.DebounceDelay != "2s" {
		t.Errorf("debounce = %s, want 2s", base.Watch.DebounceDelay)
	}
}

func TestConfigMergeNil(t *testing.T) {
	base := DefaultConfig()
	base.Merge(nil)
	if base.Taxonomy.Path != "." {
		t.Error("merging nil should not change the config")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "privlang.yaml")
	content := `taxonomy:
  path: ./taxonomy
  with_defaults: false
export:
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Taxonomy.Path != "./taxonomy" {
		t.Errorf("taxonomy path = %s, want ./taxonomy", cfg.Taxonomy.Path)
	}
	if cfg.Taxonomy.WithDefaults {
		t.Error("with_defaults should be false")
	}
	// Unset fields keep their defaults.
	if len(cfg.Taxonomy.Include) == 0 {
		t.Error("include patterns should fall back to defaults")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	// The wrapped read error must stay classifiable as not-exist so a
	// missing optional config is skipped quietly instead of warned about.
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("LoadFromFile should fail for a missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error %v should match fs.ErrNotExist", err)
	}
}

func TestSaveToFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Export.Format = "json"
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if loaded.Export.Format != "json" {
		t.Errorf("export format = %s, want json", loaded.Export.Format)
	}
}
