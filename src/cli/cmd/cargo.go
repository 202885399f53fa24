package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/halt-spesn/amberol/src/run"
)

var (
	cbCargoHome   string
	cbManifest    string
	cbTargetDir   string
	cbProfile     string
	cbOutput      string
	cbProjectName string
)

// cargoBuildCmd is the helper meson calls to drive cargo: it builds the
// crate with an isolated CARGO_HOME and places the executable where the
// build system expects it.
var cargoBuildCmd = &cobra.Command{
	Use:   "cargo-build",
	Short: "Build the crate and copy the executable into place",
	RunE:  runCargoBuild,
}

func init() {
	cargoBuildCmd.Flags().StringVar(&cbCargoHome, "cargo-home", "", "cargo home directory")
	cargoBuildCmd.Flags().StringVar(&cbManifest, "manifest-path", "", "path to Cargo.toml")
	cargoBuildCmd.Flags().StringVar(&cbTargetDir, "target-dir", "", "target directory for the build")
	cargoBuildCmd.Flags().StringVar(&cbProfile, "profile", "release", "build profile (release, debug)")
	cargoBuildCmd.Flags().StringVar(&cbOutput, "output", "", "output executable path")
	cargoBuildCmd.Flags().StringVar(&cbProjectName, "project-name", "", "crate binary name")

	for _, flag := range []string{"cargo-home", "manifest-path", "target-dir", "output", "project-name"} {
		_ = cargoBuildCmd.MarkFlagRequired(flag)
	}

	rootCmd.AddCommand(cargoBuildCmd)
}

func runCargoBuild(cmd *cobra.Command, args []string) error {
	runner := run.NewExecRunner()

	argv := []string{
		"cargo", "build",
		"--manifest-path", cbManifest,
		"--target-dir", cbTargetDir,
	}
	if cbProfile == "release" {
		argv = append(argv, "--release")
	}

	_, err := runner.Run(cmd.Context(), run.Command{
		Step:  "cargo",
		Argv:  argv,
		Env:   map[string]string{"CARGO_HOME": cbCargoHome},
		Check: true,
	})
	if err != nil {
		var toolErr *run.ToolError
		if errors.As(err, &toolErr) {
			fmt.Fprintf(os.Stderr, "cargo build failed with exit code %d\n", toolErr.Code)
			return &exitError{code: toolErr.Code}
		}
		return err
	}

	src := filepath.Join(cbTargetDir, cbProfile, exeName(cbProjectName))
	fmt.Printf("Copying %s to %s\n", src, cbOutput)
	if err := copyExecutable(src, cbOutput); err != nil {
		return fmt.Errorf("copying executable: %w", err)
	}
	return nil
}

// exeName appends the platform executable suffix.
func exeName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

// copyExecutable copies src to dst and marks it executable on Unix.
func copyExecutable(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if runtime.GOOS != "windows" {
		return os.Chmod(dst, 0o755)
	}
	return nil
}
