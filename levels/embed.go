package levels

import (
	"embed"
	"fmt"
)

//go:embed *.json
var levelsFS embed.FS

// Load returns the raw bytes of a bundled level file.
func Load(name string) ([]byte, error) {
	data, err := levelsFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return data, nil
}

// Names lists the bundled level files.
func Names() []string {
	entries, err := levelsFS.ReadDir(".")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			out = append(out, e.Name())
		}
	}
	return out
}
