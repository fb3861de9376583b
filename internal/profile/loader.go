package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileFormat is the on-disk layout of a profiles file.
type fileFormat struct {
	Profiles []Profile `yaml:"profiles"`
}

// LoadFile reads additional profiles from a YAML file.
func LoadFile(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile: read %s: %w", path, err)
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("profile: decode %s: %w", path, err)
	}
	return f.Profiles, nil
}

// Load returns the built-in registry, overlaid with the profiles from path
// when path is not empty.
func Load(path string) (*Registry, error) {
	r := Default()
	if path == "" {
		return r, nil
	}

	extra, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	r, err = r.With(extra...)
	if err != nil {
		return nil, fmt.Errorf("profile: %s: %w", path, err)
	}
	return r, nil
}
