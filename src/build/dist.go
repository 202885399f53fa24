package build

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/halt-spesn/amberol/src/config"
	"github.com/halt-spesn/amberol/src/run"
)

// distPackager turns a completed portable build into distributable
// artifacts: the zip archive is mandatory, the installer is best-effort.
type distPackager struct {
	win      config.WindowsConfig
	dist     config.DistConfig
	runner   run.Runner
	w        io.Writer
	lookPath func(string) (string, error)
}

func newDistPackager(win config.WindowsConfig, dist config.DistConfig, runner run.Runner, w io.Writer) *distPackager {
	return &distPackager{win: win, dist: dist, runner: runner, w: w, lookPath: exec.LookPath}
}

func (p *distPackager) Name() string { return string(TargetPackageWindows) }

func (p *distPackager) Run(ctx context.Context, req Request) error {
	portable := p.win.PortableDir
	if _, err := os.Stat(portable); err != nil {
		return &run.PrereqError{
			Missing: "portable build " + portable + " not found",
			Hint:    "build the windows target first",
		}
	}

	zipPath := filepath.Join(p.dist.Dir, filepath.Base(portable)+".zip")
	if err := os.MkdirAll(p.dist.Dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", p.dist.Dir, err)
	}

	fmt.Fprintln(p.w, "Creating portable archive...")
	if err := writeArchive(zipPath, portable); err != nil {
		return fmt.Errorf("package: %w", err)
	}
	fmt.Fprintf(p.w, "Wrote %s\n", zipPath)

	return p.buildInstaller(ctx)
}

// buildInstaller invokes Inno Setup when both the compiler and the
// definition file are present. Either one missing is a logged skip, never a
// failure; a compiler that runs and fails is a real command failure.
func (p *distPackager) buildInstaller(ctx context.Context) error {
	iscc, err := p.lookPath("iscc")
	if err != nil {
		fmt.Fprintln(p.w, "Inno Setup not found, skipping installer creation")
		return nil
	}
	if _, err := os.Stat(p.dist.InstallerScript); err != nil {
		fmt.Fprintln(p.w, "Installer script not found, skipping installer creation")
		return nil
	}

	fmt.Fprintln(p.w, "Creating Windows installer...")
	_, err = p.runner.Run(ctx, run.Command{
		Step:  "installer",
		Argv:  []string{iscc, p.dist.InstallerScript},
		Check: true,
	})
	return err
}

// writeArchive zips the portable directory rooted one level above it, so
// extracting yields a self-contained top-level folder. Walk order is
// lexical, making the entry order deterministic.
func writeArchive(zipPath, portableDir string) error {
	f, err := os.Create(zipPath)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	root := filepath.Dir(portableDir)

	err = filepath.WalkDir(portableDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		entry, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		_, err = io.Copy(entry, src)
		src.Close()
		return err
	})
	if err != nil {
		zw.Close()
		return err
	}

	return zw.Close()
}
