// Package build contains the target pipelines and the orchestrator that
// dispatches a build request across them.
package build

import (
	"errors"
	"fmt"
	"time"

	"github.com/halt-spesn/amberol/src/run"
)

// Target is a named build/package goal selectable on the CLI.
type Target string

const (
	TargetLinux          Target = "linux"
	TargetWindows        Target = "windows"
	TargetFlatpak        Target = "flatpak"
	TargetPackageWindows Target = "package-windows"
	TargetAll            Target = "all"
)

// Targets lists every valid target in CLI declaration order.
func Targets() []string {
	return []string{
		string(TargetLinux),
		string(TargetWindows),
		string(TargetFlatpak),
		string(TargetPackageWindows),
		string(TargetAll),
	}
}

// ParseTarget validates a CLI target argument.
func ParseTarget(s string) (Target, error) {
	switch Target(s) {
	case TargetLinux, TargetWindows, TargetFlatpak, TargetPackageWindows, TargetAll:
		return Target(s), nil
	}
	return "", fmt.Errorf("unknown target %q (valid: linux, windows, flatpak, package-windows, all)", s)
}

// Build types and profiles.
const (
	BuildTypeRelease = "release"
	BuildTypeDebug   = "debug"

	ProfileDefault     = "default"
	ProfileDevelopment = "development"
)

// Request is the validated set of orchestration parameters. It is
// constructed once from user input and only read afterwards.
type Request struct {
	Target    Target
	BuildType string
	Profile   string
	Prefix    string
	Clean     bool
	Install   bool
}

// Validate checks the enumerated fields.
func (r Request) Validate() error {
	if _, err := ParseTarget(string(r.Target)); err != nil {
		return err
	}
	if r.BuildType != BuildTypeRelease && r.BuildType != BuildTypeDebug {
		return fmt.Errorf("unknown buildtype %q (valid: release, debug)", r.BuildType)
	}
	if r.Profile != ProfileDefault && r.Profile != ProfileDevelopment {
		return fmt.Errorf("unknown profile %q (valid: default, development)", r.Profile)
	}
	return nil
}

// StepResult records one attempted sub-target.
type StepResult struct {
	Target   string
	Status   string // output.StatusSuccess or output.StatusFailed
	Err      error
	Duration time.Duration
}

// Outcome is the aggregate result of one orchestration run. OK is the
// logical AND over every attempted sub-target.
type Outcome struct {
	OK       bool
	Steps    []StepResult
	Duration time.Duration
}

// ExitCode folds the outcome into a process exit code: 0 on full success,
// the first fatal tool's exit code otherwise, or 1 for orchestration-level
// failures (missing prerequisites, platform mismatch).
func (o Outcome) ExitCode() int {
	if o.OK {
		return 0
	}
	for _, s := range o.Steps {
		if s.Err == nil {
			continue
		}
		var toolErr *run.ToolError
		if errors.As(s.Err, &toolErr) && toolErr.Code != 0 {
			return toolErr.Code
		}
	}
	return 1
}
