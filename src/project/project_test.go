package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReadsPackageIdentity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Cargo.toml")
	manifest := `
[package]
name = "amberol"
version = "2024.2"
edition = "2021"

[dependencies]
gtk = { version = "0.8", package = "gtk4" }
`
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	info, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if info.Name != "amberol" || info.Version != "2024.2" {
		t.Errorf("info = %+v, want amberol 2024.2", info)
	}
}

func TestLoadMissingManifest(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "Cargo.toml")); err == nil {
		t.Fatal("want error for missing manifest")
	}
}

func TestLoadRequiresPackageName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Cargo.toml")
	if err := os.WriteFile(path, []byte("[workspace]\nmembers = []\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("want error for manifest without package.name")
	}
}
