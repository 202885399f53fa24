// Package toolchain verifies that the external tools a pipeline depends on
// are resolvable before any of them is invoked.
package toolchain

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"

	masterminds "github.com/Masterminds/semver/v3"
)

// Spec names one required tool together with the package that provides it.
// MinVersion, when set, is the oldest acceptable release of the tool.
type Spec struct {
	Tool       string // executable looked up on PATH
	Package    string // install hint shown to the user
	MinVersion string // optional semver floor, gated via "<tool> --version"
}

// LinuxSpecs is the native-pipeline toolchain.
func LinuxSpecs() []Spec {
	return []Spec{
		{Tool: "meson", Package: "meson", MinVersion: "0.59.0"},
		{Tool: "ninja", Package: "ninja-build"},
		{Tool: "cargo", Package: "rust"},
	}
}

// Checker resolves tool specs against the current system. LookPath and
// Probe default to the real PATH lookup and a --version subprocess; tests
// inject both.
type Checker struct {
	W        io.Writer
	LookPath func(tool string) (string, error)
	Probe    func(ctx context.Context, tool string) (string, error)
}

// NewChecker creates a checker reporting to stdout.
func NewChecker() *Checker {
	return &Checker{
		W:        os.Stdout,
		LookPath: exec.LookPath,
		Probe:    probeVersion,
	}
}

// Check verifies every spec and reports ALL unmet entries at once: a user
// repairing a toolchain should see the complete list in a single pass, not
// one miss per invocation. Returns true only when everything resolves.
func (c *Checker) Check(ctx context.Context, specs []Spec) bool {
	type miss struct {
		spec   Spec
		reason string
	}
	var missing []miss

	for _, s := range specs {
		if _, err := c.lookPath(s.Tool); err != nil {
			missing = append(missing, miss{spec: s, reason: "not found"})
			continue
		}
		if s.MinVersion == "" {
			continue
		}
		if old := c.versionTooOld(ctx, s); old != "" {
			missing = append(missing, miss{spec: s, reason: fmt.Sprintf("version %s is older than %s", old, s.MinVersion)})
		}
	}

	if len(missing) == 0 {
		return true
	}

	fmt.Fprintln(c.W, "Missing dependencies:")
	for _, m := range missing {
		fmt.Fprintf(c.W, "  %s — %s (install %s)\n", m.spec.Tool, m.reason, m.spec.Package)
	}
	fmt.Fprintln(c.W, "\nInstall missing dependencies and try again.")
	return false
}

// versionTooOld probes the tool version and compares it against the spec
// floor. Probe failures and unparseable banners are a soft skip: only a
// version that parses and is older than the floor counts as unmet.
func (c *Checker) versionTooOld(ctx context.Context, s Spec) string {
	min, err := masterminds.NewVersion(s.MinVersion)
	if err != nil {
		return ""
	}

	probe := c.Probe
	if probe == nil {
		probe = probeVersion
	}
	out, err := probe(ctx, s.Tool)
	if err != nil {
		return ""
	}

	raw := firstSemver(out)
	if raw == "" {
		return ""
	}
	got, err := masterminds.NewVersion(raw)
	if err != nil {
		return ""
	}
	if got.LessThan(min) {
		return got.String()
	}
	return ""
}

func (c *Checker) lookPath(tool string) (string, error) {
	if c.LookPath != nil {
		return c.LookPath(tool)
	}
	return exec.LookPath(tool)
}

// probeVersion runs "<tool> --version" and returns its combined output.
func probeVersion(ctx context.Context, tool string) (string, error) {
	out, err := exec.CommandContext(ctx, tool, "--version").CombinedOutput()
	return string(out), err
}

var semverRe = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// firstSemver extracts the first version-looking token from a --version
// banner ("meson 1.4.0", "cargo 1.78.0 (54d8815d0 2024-03-26)", ...).
func firstSemver(banner string) string {
	return semverRe.FindString(strings.TrimSpace(banner))
}
