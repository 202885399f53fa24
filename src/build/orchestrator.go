package build

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/halt-spesn/amberol/src/config"
	"github.com/halt-spesn/amberol/src/output"
	"github.com/halt-spesn/amberol/src/platform"
	"github.com/halt-spesn/amberol/src/run"
	"github.com/halt-spesn/amberol/src/toolchain"
)

// Pipeline is one build/package strategy. Each platform/target pair has
// exactly one implementation.
type Pipeline interface {
	Name() string
	Run(ctx context.Context, req Request) error
}

// Orchestrator maps a request onto pipelines using the platform detected
// once at startup, and folds their results into one outcome.
type Orchestrator struct {
	Host    platform.Kind
	Cfg     *config.Config
	Runner  run.Runner
	Checker *toolchain.Checker
	W       io.Writer
	Color   bool
}

// NewOrchestrator wires an orchestrator against the real system.
func NewOrchestrator(host platform.Kind, cfg *config.Config) *Orchestrator {
	return &Orchestrator{
		Host:    host,
		Cfg:     cfg,
		Runner:  run.NewExecRunner(),
		Checker: toolchain.NewChecker(),
		W:       os.Stdout,
		Color:   output.UseColor(),
	}
}

// Run dispatches the request. The table below is evaluated in this fixed
// order regardless of req.Target, because "all" must attempt every
// applicable sub-target before the results are folded. A failure stops the
// pipeline it happened in, never the sub-targets after it.
func (o *Orchestrator) Run(ctx context.Context, req Request) Outcome {
	start := time.Now()
	out := Outcome{OK: true}

	if req.Target == TargetLinux || req.Target == TargetAll {
		o.attempt(ctx, &out, req, newNativePipeline(o.Cfg.Linux, o.Runner, o.Checker, o.W))
	}

	if req.Target == TargetWindows || req.Target == TargetAll {
		if o.Host == platform.Windows {
			o.attempt(ctx, &out, req, newScriptPipeline(o.Cfg.Windows, o.Runner, o.W))
		} else {
			// Windows artifacts cannot be cross-built; record the mismatch
			// without spawning anything.
			o.record(&out, string(TargetWindows), 0, &run.MismatchError{
				Target: string(TargetWindows), Host: o.Host.String(), Need: "windows",
			})
		}
	}

	if req.Target == TargetFlatpak {
		if o.Host == platform.Linux {
			o.attempt(ctx, &out, req, newFlatpakPipeline(o.Cfg.Flatpak, o.Runner, o.W))
		} else {
			o.record(&out, string(TargetFlatpak), 0, &run.MismatchError{
				Target: string(TargetFlatpak), Host: o.Host.String(), Need: "linux",
			})
		}
	}

	if req.Target == TargetPackageWindows {
		// Packaging a prior Windows build output runs on whatever machine
		// produced it, so this sub-target is not platform-gated.
		o.attempt(ctx, &out, req, newDistPackager(o.Cfg.Windows, o.Cfg.Dist, o.Runner, o.W))
	}

	out.Duration = time.Since(start)
	return out
}

// attempt runs one pipeline and records its result.
func (o *Orchestrator) attempt(ctx context.Context, out *Outcome, req Request, p Pipeline) {
	fmt.Fprintf(o.W, "\n%s\n", output.Bold("Building target: "+p.Name(), o.Color))

	start := time.Now()
	err := p.Run(ctx, req)
	o.record(out, p.Name(), time.Since(start), err)
}

// record appends a step result and folds it into the aggregate.
func (o *Orchestrator) record(out *Outcome, name string, d time.Duration, err error) {
	res := StepResult{Target: name, Status: output.StatusSuccess, Duration: d}
	if err != nil {
		res.Status = output.StatusFailed
		res.Err = err
		out.OK = false
		fmt.Fprintf(o.W, "%s %s: %v\n", output.StatusIcon(output.StatusFailed, o.Color), name, err)
	}
	out.Steps = append(out.Steps, res)
}
