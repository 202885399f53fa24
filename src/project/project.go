// Package project reads the application's Cargo.toml so the orchestrator
// can show what it is building and stamp artifacts with the right identity.
package project

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Info is the identity of the application under build.
type Info struct {
	Name    string
	Version string
}

// Load parses the cargo manifest at path. A missing or unparseable manifest
// is an error; callers that only want the identity for display treat it as
// best-effort.
func Load(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var manifest struct {
		Package struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"package"`
	}
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("project: parse %s: %w", path, err)
	}
	if manifest.Package.Name == "" {
		return nil, fmt.Errorf("project: %s has no package.name", path)
	}

	return &Info{
		Name:    manifest.Package.Name,
		Version: manifest.Package.Version,
	}, nil
}
