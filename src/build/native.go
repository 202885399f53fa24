package build

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/halt-spesn/amberol/src/config"
	"github.com/halt-spesn/amberol/src/run"
	"github.com/halt-spesn/amberol/src/toolchain"
)

// nativePipeline drives the meson build system: dependency gate, optional
// clean, configure, compile, optional privileged install. Steps run in that
// fixed order and the first failure stops the pipeline.
type nativePipeline struct {
	cfg     config.LinuxConfig
	runner  run.Runner
	checker *toolchain.Checker
	w       io.Writer
}

func newNativePipeline(cfg config.LinuxConfig, runner run.Runner, checker *toolchain.Checker, w io.Writer) *nativePipeline {
	return &nativePipeline{cfg: cfg, runner: runner, checker: checker, w: w}
}

func (p *nativePipeline) Name() string { return string(TargetLinux) }

func (p *nativePipeline) Run(ctx context.Context, req Request) error {
	if !p.checker.Check(ctx, toolchain.LinuxSpecs()) {
		return &run.PrereqError{
			Missing: "native toolchain incomplete",
			Hint:    "install the tools listed above",
		}
	}

	buildDir := p.cfg.BuildDir

	// Clean before configure, never after: a failed removal must not leave
	// a previously good build half-deleted behind a fresh configure.
	if req.Clean {
		if _, err := os.Stat(buildDir); err == nil {
			fmt.Fprintln(p.w, "Cleaning previous build...")
			if err := os.RemoveAll(buildDir); err != nil {
				return fmt.Errorf("cleaning %s: %w", buildDir, err)
			}
		}
	}

	configure := []string{
		"meson", "setup", buildDir,
		"--buildtype=" + req.BuildType,
		"--prefix=" + req.Prefix,
	}
	if req.Profile == ProfileDevelopment {
		configure = append(configure, "-Dprofile=development")
	}
	if _, err := p.runner.Run(ctx, run.Command{Step: "configure", Argv: configure, Check: true}); err != nil {
		return err
	}

	if _, err := p.runner.Run(ctx, run.Command{
		Step:  "compile",
		Argv:  []string{"meson", "compile", "-C", buildDir},
		Check: true,
	}); err != nil {
		return err
	}

	if req.Install {
		if _, err := p.runner.Run(ctx, run.Command{
			Step:  "install",
			Argv:  []string{"sudo", "meson", "install", "-C", buildDir},
			Check: true,
		}); err != nil {
			return err
		}
	}

	return nil
}
