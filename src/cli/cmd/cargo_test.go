package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCopyExecutable(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "amberol")
	dst := filepath.Join(dir, "out", "amberol")

	if err := os.WriteFile(src, []byte("#!/bin/sh\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := copyExecutable(src, dst); err != nil {
		t.Fatalf("copyExecutable: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read copy: %v", err)
	}
	if string(data) != "#!/bin/sh\n" {
		t.Errorf("copied content = %q", data)
	}

	if runtime.GOOS != "windows" {
		fi, err := os.Stat(dst)
		if err != nil {
			t.Fatal(err)
		}
		if fi.Mode().Perm()&0o111 == 0 {
			t.Errorf("copy is not executable: %v", fi.Mode())
		}
	}
}

func TestCopyExecutableMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := copyExecutable(filepath.Join(dir, "missing"), filepath.Join(dir, "out"))
	if err == nil {
		t.Fatal("want error for missing source")
	}
}

func TestExeName(t *testing.T) {
	got := exeName("amberol")
	if runtime.GOOS == "windows" {
		if got != "amberol.exe" {
			t.Errorf("exeName = %q, want amberol.exe", got)
		}
	} else if got != "amberol" {
		t.Errorf("exeName = %q, want amberol", got)
	}
}
