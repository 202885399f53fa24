// Package config loads the optional .amberol-build.yml file that overrides
// where the orchestrator finds build directories, driver scripts, manifests,
// and packaging inputs.
package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".amberol-build.yml"

// Config is the top-level build-tool configuration.
type Config struct {
	Project ProjectConfig `yaml:"project"`
	Linux   LinuxConfig   `yaml:"linux"`
	Windows WindowsConfig `yaml:"windows"`
	Flatpak FlatpakConfig `yaml:"flatpak"`
	Dist    DistConfig    `yaml:"dist"`
}

// ProjectConfig identifies the application being built.
type ProjectConfig struct {
	Name     string `yaml:"name"`
	Manifest string `yaml:"manifest"` // Cargo.toml location
}

// LinuxConfig configures the native meson pipeline.
type LinuxConfig struct {
	BuildDir string `yaml:"build_dir"`
}

// WindowsConfig configures the script-driven pipeline.
type WindowsConfig struct {
	Script        string `yaml:"script"`         // driver script, relative to the invocation directory
	ToolchainRoot string `yaml:"toolchain_root"` // MSYS2 installation root
	PortableDir   string `yaml:"portable_dir"`   // portable build output consumed by packaging
}

// FlatpakConfig configures the sandbox packager.
type FlatpakConfig struct {
	Manifest string `yaml:"manifest"`
	BuildDir string `yaml:"build_dir"`
}

// DistConfig configures distribution packaging.
type DistConfig struct {
	Dir             string `yaml:"dir"`              // archive output directory
	InstallerScript string `yaml:"installer_script"` // Inno Setup definition, best-effort
}

// Load reads configuration from a YAML file.
// If path is empty, it tries the default file.
// Returns the built-in defaults if the file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Defaults(), nil
		}
		return nil, err
	}

	if err := validate(data); err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns the configuration matching the repository layout.
func Defaults() *Config {
	return &Config{
		Project: ProjectConfig{
			Name:     "amberol",
			Manifest: "Cargo.toml",
		},
		Linux: LinuxConfig{
			BuildDir: "_build_linux",
		},
		Windows: WindowsConfig{
			Script:        "build_windows.ps1",
			ToolchainRoot: "C:/msys64",
			PortableDir:   "amberol-windows-portable",
		},
		Flatpak: FlatpakConfig{
			Manifest: "io.bassi.Amberol.json",
			BuildDir: "_flatpak_build",
		},
		Dist: DistConfig{
			Dir:             "dist",
			InstallerScript: "amberol-installer.iss",
		},
	}
}
