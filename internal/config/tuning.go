package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ugaemi/facepong-server/internal/game"
)

// LoadTuning reads gameplay overrides from a YAML file. Keys that are absent
// keep their default value. An empty path returns the defaults.
func LoadTuning(path string) (game.Settings, error) {
	s := game.DefaultSettings()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read tuning file: %w", err)
	}
	return ParseTuning(data)
}

// ParseTuning decodes a YAML document over the default settings and validates
// the result. Unknown keys are rejected.
func ParseTuning(data []byte) (game.Settings, error) {
	s := game.DefaultSettings()
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return game.DefaultSettings(), fmt.Errorf("decode tuning: %w", err)
	}
	if err := s.Validate(); err != nil {
		return game.DefaultSettings(), fmt.Errorf("tuning: %w", err)
	}
	return s, nil
}
