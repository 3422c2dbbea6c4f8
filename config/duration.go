package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration represents a time.Duration encoded as text, i.e. 30s
type Duration time.Duration

// Duration returns time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// UnmarshalYAML decodes duration text
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var text string
	if err := node.Decode(&text); err != nil {
		return err
	}
	duration, err := time.ParseDuration(text)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(duration)
	return nil
}

// MarshalYAML encodes duration as text
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}
