// SPDX-License-Identifier: EPL-2.0

// Package config loads export settings from a YAML file, the environment
// and command line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/kkyr/fig"
	"github.com/spf13/pflag"

	"github.com/ik5/soundobjects"
	"github.com/ik5/soundobjects/internal/logger"
	"github.com/ik5/soundobjects/internal/metrics"
)

const (
	FileName = "soundobjects.yaml"
	// EnvPrefix prefixes the environment overrides, e.g.
	// SOUNDOBJECTS_ROOM_SIZE.
	EnvPrefix = "SOUNDOBJECTS"
)

var ErrInvalid = errors.New("config: invalid setting")

type Export struct {
	RoomSize        float64 `fig:"room_size" default:"1.0"`
	MaxObjects      int     `fig:"max_objects" default:"24"`
	Tolerance       float64 `fig:"tolerance"`
	BitDepth        int     `fig:"bit_depth" default:"24"`
	Originator      string  `fig:"originator" default:"soundobjects"`
	WorkDir         string  `fig:"work_dir"`
	Debug           bool    `fig:"debug"`
	MetricsTextfile string  `fig:"metrics_textfile"`
}

// Load reads the settings file at path. With an empty path the file is
// looked up in ".", "configs" and "$HOME/.soundobjects", and a missing file
// leaves the defaults and environment in effect.
func Load(path string) (*Export, error) {
	var c Export

	file, dirs := FileName, []string{".", "configs"}
	if path != "" {
		file, dirs = filepath.Base(path), []string{filepath.Dir(path)}
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".soundobjects"))
	}

	err := fig.Load(&c, fig.File(file), fig.Dirs(dirs...), fig.UseEnv(EnvPrefix))
	if path == "" && errors.Is(err, fig.ErrFileNotFound) {
		c = Export{}
		err = fig.Load(&c, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
	}
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &c, nil
}

// AddFlags registers one flag per setting on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.Float64("room-size", soundobjects.DefaultRoomSize, "Half width of the room in scene units")
	fs.Int("max-objects", soundobjects.DefaultMaxObjects, "Maximum number of objects written")
	fs.Float64("tolerance", 0, "Distance under which two positions are equal, 0 compares exactly")
	fs.Int("bit-depth", soundobjects.DefaultBitDepth, "Bit depth of the mixdowns: 16, 24 or 32")
	fs.String("originator", soundobjects.DefaultOriginator, "Originator written to the bext chunk")
	fs.String("work-dir", "", "Directory for intermediate mixdowns, defaults to the output directory")
	fs.BoolP("debug", "d", false, "Enable debug logging")
	fs.String("metrics-textfile", "", "Write export metrics to this file")
}

// ApplyFlags copies the flags given on the command line over c. Flags left
// at their defaults do not override file or environment settings.
func (c *Export) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "room-size":
			c.RoomSize, err = fs.GetFloat64(f.Name)
		case "max-objects":
			c.MaxObjects, err = fs.GetInt(f.Name)
		case "tolerance":
			c.Tolerance, err = fs.GetFloat64(f.Name)
		case "bit-depth":
			c.BitDepth, err = fs.GetInt(f.Name)
		case "originator":
			c.Originator, err = fs.GetString(f.Name)
		case "work-dir":
			c.WorkDir, err = fs.GetString(f.Name)
		case "debug":
			c.Debug, err = fs.GetBool(f.Name)
		case "metrics-textfile":
			c.MetricsTextfile, err = fs.GetString(f.Name)
		}
	})
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (c *Export) Validate() error {
	switch {
	case math.IsNaN(c.RoomSize) || c.RoomSize < soundobjects.MinRoomSize:
		return fmt.Errorf("%w: room_size %v, minimum is %v", ErrInvalid, c.RoomSize, soundobjects.MinRoomSize)
	case c.MaxObjects < 0 || c.MaxObjects > soundobjects.MaxObjects:
		return fmt.Errorf("%w: max_objects %d outside 0..%d", ErrInvalid, c.MaxObjects, soundobjects.MaxObjects)
	case math.IsNaN(c.Tolerance) || c.Tolerance < 0:
		return fmt.Errorf("%w: tolerance %v", ErrInvalid, c.Tolerance)
	case c.BitDepth != 16 && c.BitDepth != 24 && c.BitDepth != 32:
		return fmt.Errorf("%w: bit_depth %d", ErrInvalid, c.BitDepth)
	case c.Originator == "":
		return fmt.Errorf("%w: originator is empty", ErrInvalid)
	}

	return nil
}

// Options turns the settings into export options for output.
func (c *Export) Options(output string, log *logger.Logger, m *metrics.Export) soundobjects.Options {
	opts := soundobjects.DefaultOptions(output)
	opts.RoomSize = c.RoomSize
	opts.MaxObjects = c.MaxObjects
	opts.Tolerance = c.Tolerance
	opts.BitDepth = c.BitDepth
	opts.Originator = c.Originator
	opts.WorkDir = c.WorkDir
	opts.Logger = log
	opts.Metrics = m

	return opts
}
