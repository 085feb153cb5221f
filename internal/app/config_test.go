package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMerge_FileOverridesDefaults(t *testing.T) {
	fc := FileConfig{BaseURL: "https://mirror.example.edu/cs475/"}
	fc.Cache.TTL = duration(time.Hour)
	fc.Output.Format = "pdf"
	fc.Workers = 2

	cfg := Merge(Defaults(), fc)
	if cfg.BaseURL != "https://mirror.example.edu/cs475/" {
		t.Fatalf("base URL not merged: %q", cfg.BaseURL)
	}
	if cfg.CacheTTL != time.Hour || cfg.Format != "pdf" || cfg.Workers != 2 {
		t.Fatalf("file values must win over defaults: %+v", cfg)
	}
	// Untouched fields keep their defaults.
	if cfg.SectionCap != 50 || cfg.MaxAttempts != 3 {
		t.Fatalf("defaults lost in merge: %+v", cfg)
	}
}

func TestLoadConfigFile_MissingOptionalFile(t *testing.T) {
	fc, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"), false)
	if err != nil {
		t.Fatalf("optional missing file must not error: %v", err)
	}
	if fc.BaseURL != "" {
		t.Fatalf("expected zero config, got %+v", fc)
	}
}

func TestLoadConfigFile_MissingRequiredFile(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"), true); err == nil {
		t.Fatalf("required missing file must error")
	}
}

func TestLoadConfigFile_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labgen.yaml")
	body := `baseURL: https://mirror.example.edu/cs475/
cache:
  dir: /tmp/labgen-test
  ttl: 2h
fetch:
  timeout: 10s
  maxAttempts: 5
sectionCap: 20
output:
  format: html
useQueryParser: true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fc, err := LoadConfigFile(path, true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if fc.Cache.TTL != duration(2*time.Hour) || fc.Fetch.MaxAttempts != 5 || fc.SectionCap != 20 {
		t.Fatalf("unexpected parse: %+v", fc)
	}
	if !fc.UseQueryParser || fc.Output.Format != "html" {
		t.Fatalf("unexpected parse: %+v", fc)
	}
}

func TestLoadConfigFile_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("cache: [unterminated"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfigFile(path, true); err == nil {
		t.Fatalf("malformed YAML must error")
	}
}
