package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/halt-spesn/amberol/src/build"
	"github.com/halt-spesn/amberol/src/gitver"
	"github.com/halt-spesn/amberol/src/output"
	"github.com/halt-spesn/amberol/src/platform"
	"github.com/halt-spesn/amberol/src/project"
)

// targetNames feeds cobra's argument completion from the build package.
func targetNames() []string {
	return build.Targets()
}

func runBuild(cmd *cobra.Command, args []string) error {
	target, err := build.ParseTarget(args[0])
	if err != nil {
		return err
	}

	// The platform is detected exactly once; everything downstream receives
	// this value instead of re-querying the host.
	host := platform.Detect()

	req := build.Request{
		Target:    target,
		BuildType: buildType,
		Profile:   profile,
		Prefix:    prefix,
		Clean:     cleanFlag,
		Install:   installFlag,
	}
	if req.Prefix == "" {
		req.Prefix = defaultPrefix(host)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	w := os.Stdout
	color := output.UseColor()

	output.ContextBlock(w, contextKV(host, req))

	orch := build.NewOrchestrator(host, cfg)
	orch.W = w
	orch.Color = color

	out := orch.Run(cmd.Context(), req)

	sec := output.NewSection(w, "Summary", out.Duration, color)
	for _, step := range out.Steps {
		detail := ""
		if step.Err != nil {
			detail = step.Err.Error()
		}
		output.SummaryRow(w, step.Target, step.Status, detail, color)
	}
	sec.Separator()
	status := output.StatusSuccess
	if !out.OK {
		status = output.StatusFailed
	}
	output.SummaryTotal(w, out.Duration, status, color)
	sec.Close()

	output.Banner(w, out.OK, color)

	if !out.OK {
		return &exitError{code: out.ExitCode()}
	}
	return nil
}

// contextKV assembles the run context block. Project identity and git
// stamp are best-effort: a tree without Cargo.toml or .git just shows less.
func contextKV(host platform.Kind, req build.Request) []output.KV {
	kv := []output.KV{
		{Key: "platform", Value: host.String()},
		{Key: "target", Value: string(req.Target)},
		{Key: "buildtype", Value: req.BuildType},
		{Key: "profile", Value: req.Profile},
		{Key: "prefix", Value: req.Prefix},
	}

	if info, err := project.Load(cfg.Project.Manifest); err == nil {
		kv = append(kv, output.KV{Key: "project", Value: info.Name + " " + info.Version})
	}
	if stamp, err := gitver.Detect("."); err == nil {
		kv = append(kv, output.KV{Key: "git", Value: stamp.String()})
	}
	return kv
}

// defaultPrefix picks the platform-standard install location.
func defaultPrefix(host platform.Kind) string {
	if host == platform.Windows {
		return "C:/Program Files/Amberol"
	}
	return "/usr/local"
}
