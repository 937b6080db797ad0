package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is a saved shell configuration: session settings plus
// attribute presets applied once the session is open. Command-line
// flags override the session settings; presets apply in name order.
//
// Example:
//
//	resource: PXI1Slot2
//	simulate: true
//	model: "5654"
//	trace: session.rftrace
//	presets:
//	  rf_frequency: 2.4e9
//	  rf_power: -10
//	  reference_source: OnboardClock
type Profile struct {
	Resource string         `yaml:"resource"`
	Options  string         `yaml:"options"`
	Simulate bool           `yaml:"simulate"`
	Model    string         `yaml:"model"`
	Trace    string         `yaml:"trace"`
	Presets  map[string]any `yaml:"presets"`
}

// LoadProfile reads a YAML profile file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return &p, nil
}
