package ui

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the TOML file read by the viewer commands. Zero values keep the defaults.
type Config struct {
	Title     string    `toml:"title"`
	Width     int       `toml:"width"`
	Height    int       `toml:"height"`
	Model     ModelType `toml:"model"`
	ResInv    int       `toml:"res_inv"`
	FrameRate int       `toml:"frame_rate"`
	Damping   float64   `toml:"damping"`
	MeshCells int       `toml:"mesh_cells"`
	Fov       float64   `toml:"fov"`
	WatchFile string    `toml:"watch_file"`
	Listen    string    `toml:"listen"` // TCP address of the remote viewer service (disabled if empty)
}

// DefaultConfig is the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Title:     "Assembly Viewer",
		Width:     1280,
		Height:    720,
		Model:     ModelPump,
		ResInv:    1,
		FrameRate: 60,
		Damping:   0.05,
		MeshCells: 48,
		Fov:       45,
	}
}

// LoadConfig reads a TOML file over the defaults. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig is LoadConfig for in-memory TOML.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return Config{}, fmt.Errorf("parsing config: %s", strictErr.String())
		}
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the ranges of every field.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.ResInv < 1 || c.ResInv > 64 {
		errs = append(errs, fmt.Errorf("res_inv must be in [1, 64], got %d", c.ResInv))
	}
	if c.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("frame_rate must be positive, got %d", c.FrameRate))
	}
	if c.Damping <= 0 || c.Damping > 1 {
		errs = append(errs, fmt.Errorf("damping must be in (0, 1], got %v", c.Damping))
	}
	if c.MeshCells < 4 {
		errs = append(errs, fmt.Errorf("mesh_cells must be at least 4, got %d", c.MeshCells))
	}
	if c.Fov <= 0 || c.Fov >= 180 {
		errs = append(errs, fmt.Errorf("fov must be in (0, 180), got %v", c.Fov))
	}
	return errors.Join(errs...)
}

// Options converts the configuration to viewer options.
func (c Config) Options() []Option {
	opts := []Option{
		OptMModel(c.Model),
		OptMResInv(c.ResInv),
		OptMFrameRate(c.FrameRate),
		Opt3Damping(c.Damping),
		OptMMeshCells(c.MeshCells),
		Opt3CamFov(c.Fov),
	}
	if c.WatchFile != "" {
		opts = append(opts, OptMWatchModelFile(c.WatchFile))
	}
	return opts
}
