// Package config loads the optional xnet.yaml traversal defaults, the
// same single-pass, no-framework way config.DeviceBuilder supplies CGRA
// mesh defaults: one struct, one load, no env layering, no watching.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Traversal holds the project-wide XNET conventions a team can pin in
// xnet.yaml instead of repeating CLI flags on every invocation.
type Traversal struct {
	SkipTypes []string `yaml:"skip_types"`
	IncludeDNS bool    `yaml:"include_dns"`

	// StopNets names additional exact net names to treat as stop nets,
	// layered on top of the built-in ground/power patterns (spec
	// §4.5.1) for project-specific rail names the patterns miss.
	StopNets []string `yaml:"stop_nets"`
}

// Config is the top-level shape of xnet.yaml.
type Config struct {
	Traversal Traversal `yaml:"traversal"`
}

// Default returns the zero-value configuration used when no xnet.yaml
// is present: no extra skip types, DNS excluded, no extra stop nets.
func Default() *Config {
	return &Config{}
}

// Load reads and parses path. A missing file is not an error: callers
// get Default() back, since xnet.yaml is optional (spec's supplemented
// "ambient config layer").
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SkipTypeSet converts the configured skip-type list into the
// map[string]bool shape traversal.Options expects.
func (t Traversal) SkipTypeSet() map[string]bool {
	set := make(map[string]bool, len(t.SkipTypes))
	for _, prefix := range t.SkipTypes {
		set[prefix] = true
	}
	return set
}

// StopNetSet converts the configured extra-stop-net list into the
// map[string]bool shape traversal.Options.ExtraStopNets expects.
func (t Traversal) StopNetSet() map[string]bool {
	set := make(map[string]bool, len(t.StopNets))
	for _, name := range t.StopNets {
		set[name] = true
	}
	return set
}
