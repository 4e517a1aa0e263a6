package level

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrNoSpawn is returned when a level cannot start a run because it has no
// spawn point.
var ErrNoSpawn = errors.New("level: no spawn point")

// Load reads and decodes a level from a JSON file at path.
func Load(path string) (*Level, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", path, err)
	}
	lvl, err := LoadData(b)
	if err != nil {
		return nil, fmt.Errorf("level: load %s: %w", path, err)
	}
	return lvl, nil
}

// LoadData decodes a level from JSON, normalizes link entries, sanitizes
// the config, and validates name invariants.
func LoadData(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("level: unmarshal: %w", err)
	}
	lvl.Config.sanitize()
	for _, o := range lvl.Objects {
		if !o.Kind.valid() {
			return nil, fmt.Errorf("level: unknown object kind %q", o.Kind)
		}
		if o.TouchMode != nil && !o.TouchMode.valid() {
			o.TouchMode = nil
		}
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Save writes the level as JSON to path.
func (l *Level) Save(path string) error {
	b, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("level: marshal: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("level: write %s: %w", path, err)
	}
	return nil
}

// Validate enforces the structural invariants the simulation relies on:
// portal names unique among portals, zone names unique among zones. The
// two namespaces are independent. A link to a nonexistent portal is inert,
// not an error.
func (l *Level) Validate() error {
	portals := map[string]bool{}
	zones := map[string]bool{}
	for _, o := range l.Objects {
		switch o.Kind {
		case KindPortal:
			if o.Name == "" {
				return fmt.Errorf("level: portal without a name")
			}
			if portals[o.Name] {
				return fmt.Errorf("level: duplicate portal name %q", o.Name)
			}
			portals[o.Name] = true
		case KindZone:
			if o.Name == "" {
				continue
			}
			if zones[o.Name] {
				return fmt.Errorf("level: duplicate zone name %q", o.Name)
			}
			zones[o.Name] = true
		}
	}
	return nil
}
