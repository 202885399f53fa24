package build

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/halt-spesn/amberol/src/config"
	"github.com/halt-spesn/amberol/src/run"
)

// flatpakPipeline produces the sandboxed application bundle via
// flatpak-builder. Linux-host gating is the orchestrator's job.
type flatpakPipeline struct {
	cfg    config.FlatpakConfig
	runner run.Runner
	w      io.Writer
}

func newFlatpakPipeline(cfg config.FlatpakConfig, runner run.Runner, w io.Writer) *flatpakPipeline {
	return &flatpakPipeline{cfg: cfg, runner: runner, w: w}
}

func (p *flatpakPipeline) Name() string { return string(TargetFlatpak) }

func (p *flatpakPipeline) Run(ctx context.Context, req Request) error {
	if _, err := os.Stat(p.cfg.Manifest); err != nil {
		return &run.PrereqError{Missing: "flatpak manifest " + p.cfg.Manifest + " not found"}
	}

	if req.Clean {
		if _, err := os.Stat(p.cfg.BuildDir); err == nil {
			if err := os.RemoveAll(p.cfg.BuildDir); err != nil {
				return fmt.Errorf("cleaning %s: %w", p.cfg.BuildDir, err)
			}
		}
	}

	_, err := p.runner.Run(ctx, run.Command{
		Step: "flatpak",
		Argv: []string{
			"flatpak-builder", "--force-clean", "--user", "--install-deps-from=flathub",
			p.cfg.BuildDir, p.cfg.Manifest,
		},
		Check: true,
	})
	return err
}
