package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ConfirmationToken != DefaultConfirmationToken {
		t.Fatalf("token = %q", cfg.ConfirmationToken)
	}
	if _, ok := cfg.Tools["ventoy"]; !ok {
		t.Fatalf("default tools missing: %v", cfg.ToolNames())
	}
}

func TestLoad_OverridesKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"confirmation_token": "ERASE"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ConfirmationToken != "ERASE" {
		t.Fatalf("token = %q", cfg.ConfirmationToken)
	}
	if cfg.WorkDir == "" || len(cfg.Tools) == 0 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"syntax.json": `{"confirmation_token":`,
		"empty.json":  `{"confirmation_token": ""}`,
		"tool.json":   `{"tools": {"rufus": {"file": "rufus.exe"}}}`,
	}
	for name, body := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestSave_RoundTripAndOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.ConfirmationToken = "FORMAT"

	if err := cfg.Save(path, false); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := cfg.Save(path, false); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected refusal to overwrite, got %v", err)
	}
	if err := cfg.Save(path, true); err != nil {
		t.Fatalf("forced save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ConfirmationToken != "FORMAT" {
		t.Fatalf("token = %q", loaded.ConfirmationToken)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 && os.PathSeparator == '/' {
		t.Fatalf("permissions = %o", perm)
	}
}
