package usdmesh

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExportOptions configures an export run. Grounded on the teacher pack's
// YAML config loading (avatar29A-midgard-ro/internal/config/load.go),
// narrowed to the single flat struct this package needs — there is no
// CLI-flag layer or XDG search path here, since this package has no
// command-line surface of its own.
type ExportOptions struct {
	// MTLName is the base name written into the OBJ file's `mtllib`
	// directive (without the .mtl extension).
	MTLName string `yaml:"mtlName"`
	// ColorOrder fixes the iteration order over a MeshSet's colors; nil
	// means map order (undefined across runs).
	ColorOrder []Color `yaml:"colorOrder,omitempty"`
	// LogFile names a log file path. Export does not read it: diagnostic
	// logging goes only to the logger passed to Export.
	LogFile string `yaml:"logFile,omitempty"`
}

// DefaultOptions returns the zero-configuration defaults.
func DefaultOptions() *ExportOptions {
	return &ExportOptions{MTLName: "export"}
}

// LoadOptions reads YAML-encoded ExportOptions from path, starting from
// DefaultOptions so a partial file only overrides what it sets.
func LoadOptions(path string) (*ExportOptions, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export options from %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("parsing export options from %s: %w", path, err)
	}
	return opts, nil
}
