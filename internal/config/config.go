// Package config loads meshcut settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/meshcut/meshcut/pkg/boolean/sdfxengine"
	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/primitive"
	"github.com/meshcut/meshcut/pkg/render"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "meshcut.yaml"

// Cutter places the cylindrical cutting tool
type Cutter struct {
	primitive.CylinderParams `yaml:",inline"`
	Position                 geometry.Vector3 `yaml:"position"`
	Direction                geometry.Vector3 `yaml:"direction"`
}

// Box is the initial target shown when no file is loaded
type Box struct {
	Center geometry.Vector3 `yaml:"center"`
	Size   geometry.Vector3 `yaml:"size"`
}

// Engine tunes the CSG engine
type Engine struct {
	Cells int `yaml:"cells"`
}

// Render sets snapshot and viewer defaults
type Render struct {
	Width   int            `yaml:"width"`
	Height  int            `yaml:"height"`
	Palette render.Palette `yaml:"palette"`
}

// Config holds all settings
type Config struct {
	Cutter   Cutter  `yaml:"cutter"`
	Box      Box     `yaml:"box"`
	MoveStep float64 `yaml:"move_step"`
	Engine   Engine  `yaml:"engine"`
	Render   Render  `yaml:"render"`
	Watch    bool    `yaml:"watch"`
}

// Default returns the built-in settings: a 50mm x 6mm cutter along +Z at the
// origin, a 20x20x25 box centered at (0,0,15) and a 1mm move step.
func Default() Config {
	return Config{
		Cutter: Cutter{
			CylinderParams: primitive.DefaultCylinderParams(),
			Direction:      geometry.ZAxis,
		},
		Box: Box{
			Center: geometry.NewVector3(0, 0, 15),
			Size:   geometry.NewVector3(20, 20, 25),
		},
		MoveStep: 1.0,
		Engine:   Engine{Cells: sdfxengine.DefaultCells},
		Render: Render{
			Width:   800,
			Height:  600,
			Palette: render.DefaultPalette(),
		},
		Watch: true,
	}
}

// Load reads path over the defaults. A missing file yields Default().
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks values that would make the tools misbehave. Degenerate
// cutter dimensions are allowed; they produce an empty cutter.
func (c Config) Validate() error {
	var errs []error
	if c.MoveStep <= 0 {
		errs = append(errs, fmt.Errorf("move_step must be positive, got %v", c.MoveStep))
	}
	if c.Engine.Cells < 8 {
		errs = append(errs, fmt.Errorf("engine.cells must be at least 8, got %d", c.Engine.Cells))
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height))
	}
	return errors.Join(errs...)
}
