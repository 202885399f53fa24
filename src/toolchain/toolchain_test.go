package toolchain

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func fakeLookPath(present ...string) func(string) (string, error) {
	set := map[string]bool{}
	for _, p := range present {
		set[p] = true
	}
	return func(tool string) (string, error) {
		if set[tool] {
			return "/usr/bin/" + tool, nil
		}
		return "", errors.New("not found")
	}
}

func TestCheckReportsEveryMissingTool(t *testing.T) {
	var out bytes.Buffer
	c := &Checker{W: &out, LookPath: fakeLookPath("ninja")}

	ok := c.Check(context.Background(), []Spec{
		{Tool: "meson", Package: "meson"},
		{Tool: "ninja", Package: "ninja-build"},
		{Tool: "cargo", Package: "rust"},
	})

	if ok {
		t.Fatal("Check = true with two missing tools")
	}
	report := out.String()
	for _, want := range []string{"meson", "install meson", "cargo", "install rust"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
	if strings.Contains(report, "ninja —") {
		t.Errorf("present tool reported as missing:\n%s", report)
	}
}

func TestCheckAllPresent(t *testing.T) {
	var out bytes.Buffer
	c := &Checker{W: &out, LookPath: fakeLookPath("meson", "ninja", "cargo")}

	if !c.Check(context.Background(), LinuxSpecs()[1:]) {
		t.Fatal("Check = false with all tools present")
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output on success: %q", out.String())
	}
}

func TestCheckVersionFloor(t *testing.T) {
	cases := []struct {
		name   string
		banner string
		err    error
		wantOK bool
	}{
		{"newer", "meson 1.4.0", nil, true},
		{"exact", "meson 0.59.0", nil, true},
		{"older", "The Meson build system\nVersion: 0.53.2", nil, false},
		{"unparseable banner is a soft skip", "development snapshot", nil, true},
		{"probe failure is a soft skip", "", errors.New("boom"), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			c := &Checker{
				W:        &out,
				LookPath: fakeLookPath("meson"),
				Probe: func(context.Context, string) (string, error) {
					return tc.banner, tc.err
				},
			}
			ok := c.Check(context.Background(), []Spec{{Tool: "meson", Package: "meson", MinVersion: "0.59.0"}})
			if ok != tc.wantOK {
				t.Errorf("Check = %v, want %v (output: %s)", ok, tc.wantOK, out.String())
			}
		})
	}
}

func TestFirstSemver(t *testing.T) {
	cases := map[string]string{
		"meson 1.4.0":                         "1.4.0",
		"cargo 1.78.0 (54d8815d0 2024-03-26)": "1.78.0",
		"1.11":                                "1.11",
		"no digits here":                      "",
	}
	for banner, want := range cases {
		if got := firstSemver(banner); got != want {
			t.Errorf("firstSemver(%q) = %q, want %q", banner, got, want)
		}
	}
}
