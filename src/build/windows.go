package build

import (
	"context"
	"io"
	"os"

	"github.com/halt-spesn/amberol/src/config"
	"github.com/halt-spesn/amberol/src/run"
)

// scriptPipeline delegates the whole configure/compile/install sequence to
// the PowerShell driver script, forwarding the request flags as parameters.
// The orchestrator only dispatches here on a Windows host.
type scriptPipeline struct {
	cfg    config.WindowsConfig
	runner run.Runner
	w      io.Writer
}

func newScriptPipeline(cfg config.WindowsConfig, runner run.Runner, w io.Writer) *scriptPipeline {
	return &scriptPipeline{cfg: cfg, runner: runner, w: w}
}

func (p *scriptPipeline) Name() string { return string(TargetWindows) }

func (p *scriptPipeline) Run(ctx context.Context, req Request) error {
	// Both prerequisites are checked up front so their absence reads as a
	// missing prerequisite, not as a failed command.
	if _, err := os.Stat(p.cfg.Script); err != nil {
		return &run.PrereqError{
			Missing: p.cfg.Script + " not found",
			Hint:    "run from the repository root",
		}
	}
	if _, err := os.Stat(p.cfg.ToolchainRoot); err != nil {
		return &run.PrereqError{
			Missing: "MSYS2 not found at " + p.cfg.ToolchainRoot,
			Hint:    "install MSYS2 from https://www.msys2.org/",
		}
	}

	argv := []string{
		"powershell", "-ExecutionPolicy", "Bypass", "-File", p.cfg.Script,
		"-Profile", req.BuildType,
	}
	if req.Clean {
		argv = append(argv, "-Clean")
	}
	if req.Install {
		argv = append(argv, "-Install")
	}

	_, err := p.runner.Run(ctx, run.Command{Step: "build", Argv: argv, Check: true})
	return err
}
