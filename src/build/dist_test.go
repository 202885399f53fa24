package build

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/halt-spesn/amberol/src/config"
	"github.com/halt-spesn/amberol/src/run"
)

func testPackager(t *testing.T, runner run.Runner) (*distPackager, string) {
	t.Helper()
	dir := t.TempDir()
	p := &distPackager{
		win: config.WindowsConfig{
			PortableDir: filepath.Join(dir, "amberol-windows-portable"),
		},
		dist: config.DistConfig{
			Dir:             filepath.Join(dir, "dist"),
			InstallerScript: filepath.Join(dir, "amberol-installer.iss"),
		},
		runner:   runner,
		w:        &bytes.Buffer{},
		lookPath: func(string) (string, error) { return "", errors.New("not found") },
	}
	return p, dir
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestPackageMissingPortableBuildFailsBeforeArchiving(t *testing.T) {
	runner := &fakeRunner{}
	p, _ := testPackager(t, runner)

	err := p.Run(context.Background(), request(TargetPackageWindows))

	var prereq *run.PrereqError
	if !errors.As(err, &prereq) {
		t.Fatalf("err = %v, want *run.PrereqError", err)
	}
	if _, statErr := os.Stat(p.dist.Dir); statErr == nil {
		t.Error("dist directory created despite missing portable build")
	}
	if len(runner.commands) != 0 {
		t.Errorf("spawned %d processes, want 0", len(runner.commands))
	}
}

func TestArchiveEntriesRootedOneLevelUp(t *testing.T) {
	runner := &fakeRunner{}
	p, _ := testPackager(t, runner)

	writeTree(t, p.win.PortableDir, map[string]string{
		"a.txt":     "alpha",
		"sub/b.txt": "beta",
	})

	if err := p.Run(context.Background(), request(TargetPackageWindows)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	zipPath := filepath.Join(p.dist.Dir, "amberol-windows-portable.zip")
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer zr.Close()

	got := map[string]bool{}
	for _, f := range zr.File {
		got[f.Name] = true
	}
	for _, want := range []string{
		"amberol-windows-portable/a.txt",
		"amberol-windows-portable/sub/b.txt",
	} {
		if !got[want] {
			t.Errorf("archive missing entry %q, has %v", want, zr.File)
		}
	}
	if len(zr.File) != 2 {
		t.Errorf("archive has %d entries, want 2", len(zr.File))
	}
}

func TestInstallerSkippedWhenToolAbsent(t *testing.T) {
	runner := &fakeRunner{}
	p, _ := testPackager(t, runner)
	writeTree(t, p.win.PortableDir, map[string]string{"a.txt": "alpha"})

	if err := p.Run(context.Background(), request(TargetPackageWindows)); err != nil {
		t.Fatalf("installer absence must be a soft skip, got %v", err)
	}
	if len(runner.commands) != 0 {
		t.Errorf("spawned %d processes with no installer tool, want 0", len(runner.commands))
	}
}

func TestInstallerSkippedWhenDefinitionAbsent(t *testing.T) {
	runner := &fakeRunner{}
	p, _ := testPackager(t, runner)
	writeTree(t, p.win.PortableDir, map[string]string{"a.txt": "alpha"})
	p.lookPath = func(string) (string, error) { return "/usr/bin/iscc", nil }

	if err := p.Run(context.Background(), request(TargetPackageWindows)); err != nil {
		t.Fatalf("missing .iss must be a soft skip, got %v", err)
	}
	if len(runner.commands) != 0 {
		t.Errorf("spawned %d processes with no installer definition, want 0", len(runner.commands))
	}
}

func TestInstallerRunsWhenToolAndDefinitionPresent(t *testing.T) {
	runner := &fakeRunner{}
	p, _ := testPackager(t, runner)
	writeTree(t, p.win.PortableDir, map[string]string{"a.txt": "alpha"})
	if err := os.WriteFile(p.dist.InstallerScript, []byte("[Setup]"), 0o644); err != nil {
		t.Fatal(err)
	}
	p.lookPath = func(string) (string, error) { return "/usr/bin/iscc", nil }

	if err := p.Run(context.Background(), request(TargetPackageWindows)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(runner.commands) != 1 || runner.commands[0].Step != "installer" {
		t.Fatalf("commands = %+v, want one installer invocation", runner.commands)
	}
}

func TestInstallerFailureIsFatal(t *testing.T) {
	runner := &fakeRunner{
		fail: map[string]*run.ToolError{
			"installer": {Step: "installer", Tool: "iscc", Code: 2},
		},
	}
	p, _ := testPackager(t, runner)
	writeTree(t, p.win.PortableDir, map[string]string{"a.txt": "alpha"})
	if err := os.WriteFile(p.dist.InstallerScript, []byte("[Setup]"), 0o644); err != nil {
		t.Fatal(err)
	}
	p.lookPath = func(string) (string, error) { return "/usr/bin/iscc", nil }

	err := p.Run(context.Background(), request(TargetPackageWindows))
	var toolErr *run.ToolError
	if !errors.As(err, &toolErr) || toolErr.Code != 2 {
		t.Fatalf("err = %v, want installer tool failure with code 2", err)
	}
}
