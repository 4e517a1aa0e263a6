package scripts

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed *.tengo
var scriptsFS embed.FS

// Load returns a plugin script by name, preferring a file on disk next to
// the binary so scripts can be iterated on without rebuilding.
func Load(name string) ([]byte, error) {
	clean := filepath.Base(name)
	if data, err := os.ReadFile(filepath.Join("scripts", clean)); err == nil {
		return data, nil
	}
	data, err := scriptsFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("scripts: read %s: %w", name, err)
	}
	return data, nil
}
