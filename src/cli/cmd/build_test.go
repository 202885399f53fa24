package cmd

import (
	"testing"

	"github.com/halt-spesn/amberol/src/platform"
)

func TestDefaultPrefix(t *testing.T) {
	if got := defaultPrefix(platform.Windows); got != "C:/Program Files/Amberol" {
		t.Errorf("windows prefix = %q", got)
	}
	for _, host := range []platform.Kind{platform.Linux, platform.FreeBSD, platform.Unknown} {
		if got := defaultPrefix(host); got != "/usr/local" {
			t.Errorf("%s prefix = %q, want /usr/local", host, got)
		}
	}
}

func TestTargetNamesCoverEveryTarget(t *testing.T) {
	names := targetNames()
	want := map[string]bool{
		"linux": true, "windows": true, "flatpak": true,
		"package-windows": true, "all": true,
	}
	if len(names) != len(want) {
		t.Fatalf("targetNames = %v", names)
	}
	for _, n := range names {
		if !want[n] {
			t.Errorf("unexpected target %q", n)
		}
	}
}
