package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "" {
		t.Errorf("Database.Path = %q, want empty default", cfg.Database.Path)
	}
	if cfg.Data.Dir != "." {
		t.Errorf("Data.Dir = %q, want .", cfg.Data.Dir)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Database.Path = "/tmp/metrics.db"
	cfg.Teams.Abbreviations = map[string][]string{"Boise State": {"BSU"}}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Database.Path != "/tmp/metrics.db" {
		t.Errorf("Database.Path = %q", got.Database.Path)
	}
	if abbrs := got.Teams.Abbreviations["Boise State"]; len(abbrs) != 1 || abbrs[0] != "BSU" {
		t.Errorf("Abbreviations = %v", got.Teams.Abbreviations)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".cfbmetrics")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [valid"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Error("want error for malformed config")
	}
}
