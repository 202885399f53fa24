package run

import "fmt"

// ToolError reports an external tool that ran and exited non-zero. It is
// fatal for the pipeline that issued it; the exit code of the first
// ToolError in a run becomes the process exit code.
type ToolError struct {
	Step string // pipeline step ("configure", "compile", "install", "package")
	Tool string // program that failed
	Code int    // child exit code
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s exited with code %d", e.Step, e.Tool, e.Code)
}

// PrereqError reports a missing prerequisite: an absent toolchain, manifest,
// driver script, or prior build output. It is detected before any external
// process is spawned and carries an actionable hint for the user.
type PrereqError struct {
	Missing string // what is absent
	Hint    string // how to fix it
}

func (e *PrereqError) Error() string {
	if e.Hint == "" {
		return e.Missing
	}
	return e.Missing + " (" + e.Hint + ")"
}

// MismatchError reports a platform-gated target requested on the wrong
// host. It is a request-validation failure, never a build failure, and no
// external process runs once it is raised.
type MismatchError struct {
	Target string
	Host   string
	Need   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("target %s requires a %s host, detected %s", e.Target, e.Need, e.Host)
}
