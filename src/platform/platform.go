// Package platform classifies the host operating environment into the
// closed set of platforms the build orchestrator knows how to drive.
package platform

import "runtime"

// Kind is a detected host platform.
type Kind string

const (
	Linux   Kind = "linux"
	Windows Kind = "windows"
	FreeBSD Kind = "freebsd"
	Unknown Kind = "unknown"
)

// Detect classifies the current host. Call it once at startup and pass the
// result explicitly into anything that needs it; a run never re-detects.
func Detect() Kind {
	return classify(runtime.GOOS)
}

// classify maps a GOOS value onto a Kind.
func classify(goos string) Kind {
	switch goos {
	case "linux":
		return Linux
	case "windows":
		return Windows
	case "freebsd":
		return FreeBSD
	default:
		return Unknown
	}
}

// String returns the kind as shown to the user.
func (k Kind) String() string {
	return string(k)
}
