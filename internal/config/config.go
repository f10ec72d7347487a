// Package config holds the settings shared by the windowed and
// terminal frontends.
package config

import (
	"errors"
	"flag"
	"fmt"

	"pixelpaint/internal/canvas"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Width       int
	Height      int
	CellSize    int
	ExportScale int
	FrameDelay  int
	Verbose     bool
	// LogFile, when set, receives log output instead of stderr.
	LogFile string
}

// Default returns the canvas the application opens with.
func Default() Config {
	return Config{
		Width:       canvas.DefaultWidth,
		Height:      canvas.DefaultHeight,
		CellSize:    canvas.DefaultCellSize,
		ExportScale: 1,
		FrameDelay:  25,
	}
}

// RegisterFlags binds c to fs. Current values become the flag defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "canvas width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "canvas height in pixels")
	fs.IntVar(&c.CellSize, "cell", c.CellSize, "grid cell size in pixels")
	fs.IntVar(&c.ExportScale, "scale", c.ExportScale, "integer upscale applied on export")
	fs.IntVar(&c.FrameDelay, "delay", c.FrameDelay, "flipbook frame delay in 1/100s")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "verbose logging")
	fs.StringVar(&c.LogFile, "log", c.LogFile, "write logs to this file")
}

func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas %dx%d must be positive", c.Width, c.Height))
	}
	if c.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("cell size %d must be positive", c.CellSize))
	}
	if c.ExportScale < 1 {
		errs = append(errs, fmt.Errorf("export scale %d must be at least 1", c.ExportScale))
	}
	if c.FrameDelay < 1 {
		errs = append(errs, fmt.Errorf("frame delay %d must be at least 1", c.FrameDelay))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Parse reads args into a copy of Default and validates the result.
func Parse(name string, args []string) (Config, error) {
	return ParseWith(Default(), name, args)
}

// ParseWith is Parse starting from c instead of Default.
func ParseWith(c Config, name string, args []string) (Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	c.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}
