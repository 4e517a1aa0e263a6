package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings are the harness tunables: window, default level, and which
// ability scripts to attach. Engine tunables live in the level file, not
// here.
type Settings struct {
	Window struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"window"`
	Level   string   `yaml:"level"`
	Scripts []string `yaml:"scripts"`
	Debug   bool     `yaml:"debug"`
}

func defaultSettings() Settings {
	var s Settings
	s.Window.Width = 1280
	s.Window.Height = 720
	s.Level = "plains.json"
	return s
}

// LoadSettings reads a YAML settings file, falling back to defaults when
// the file doesn't exist.
func LoadSettings(path string) (Settings, error) {
	s := defaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("settings: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("settings: unmarshal %s: %w", path, err)
	}
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		def := defaultSettings()
		s.Window = def.Window
	}
	if s.Level == "" {
		s.Level = defaultSettings().Level
	}
	return s, nil
}
