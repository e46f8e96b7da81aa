package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, ConfigFileName)

	cfg := &Config{
		Servers: []Server{
			{URL: "http://localhost:8000/api/v1", Alias: "local"},
			{URL: "https://api.example.com/api/v1", Alias: "production"},
		},
	}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(loaded.Servers) != 2 {
		t.Fatalf("loaded %d servers, want 2", len(loaded.Servers))
	}
	if loaded.Servers[1].Alias != "production" {
		t.Errorf("alias = %q, want production", loaded.Servers[1].Alias)
	}
	if loaded.Servers[0].URL != "http://localhost:8000/api/v1" {
		t.Errorf("url = %q", loaded.Servers[0].URL)
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, ConfigFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestFindConfigFileSearchesParents(t *testing.T) {
	tempDir := t.TempDir()
	nested := filepath.Join(tempDir, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(tempDir, ConfigFileName)
	if err := Save(cfgPath, DefaultConfig()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(originalDir)

	if err := os.Chdir(nested); err != nil {
		t.Fatal(err)
	}

	found, err := FindConfigFile()
	if err != nil {
		t.Fatalf("FindConfigFile: %v", err)
	}
	// Resolve symlinks; macOS temp dirs live behind /private.
	wantResolved, _ := filepath.EvalSymlinks(cfgPath)
	foundResolved, _ := filepath.EvalSymlinks(found)
	if foundResolved != wantResolved {
		t.Errorf("found %q, want %q", found, cfgPath)
	}
}

func TestGetServerByAlias(t *testing.T) {
	cfg := &Config{
		Servers: []Server{
			{URL: "http://localhost:8000/api/v1", Alias: "local"},
			{URL: "https://api.example.com/api/v1", Alias: "production"},
		},
	}

	server, err := cfg.GetServerByAlias("production")
	if err != nil {
		t.Fatalf("GetServerByAlias: %v", err)
	}
	if server.URL != "https://api.example.com/api/v1" {
		t.Errorf("url = %q", server.URL)
	}

	if _, err := cfg.GetServerByAlias("staging"); err == nil {
		t.Error("expected error for unknown alias")
	}
}

func TestGetDefaultServer(t *testing.T) {
	if _, err := (&Config{}).GetDefaultServer(); err == nil {
		t.Error("expected error for empty server list")
	}

	cfg := DefaultConfig()
	server, err := cfg.GetDefaultServer()
	if err != nil {
		t.Fatalf("GetDefaultServer: %v", err)
	}
	if server.Alias != "local" {
		t.Errorf("alias = %q, want local", server.Alias)
	}
}
