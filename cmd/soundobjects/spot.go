// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"

	"github.com/ik5/soundobjects/internal/logger"
	"github.com/ik5/soundobjects/scene"
	"github.com/ik5/soundobjects/soundbank"
	"github.com/ik5/soundobjects/spot"
)

func spotCmd(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("spot", "<scene.yaml> <sound-dir>", stderr)
	prefix := fs.StringP("prefix", "p", "", "Use only sounds whose file name starts with this")
	mode := fs.StringP("mode", "m", string(spot.StartFrame), "Trigger mode: START_FRAME, MIN_DISTANCE, RANDOM or RANDOM_GAUSSIAN")
	syncPeak := fs.Bool("sync-peak", false, "Line up the loudest frame of each sound with its trigger")
	stddev := fs.Float64("stddev", 1, "Spread in frames of RANDOM_GAUSSIAN")
	near := fs.Float64("range", spot.DefaultRange, "Distance to the camera under which a source is near")
	seed := fs.Uint64("seed", 0, "Random seed, 0 picks one")
	sources := fs.StringSlice("source", nil, "Spot only these sources, may be repeated")
	output := fs.StringP("output", "o", "", "Write the scene here instead of over the input")
	debug := fs.BoolP("debug", "d", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, "scene", "sound-dir")
	if err != nil {
		return err
	}
	scenePath, soundDir := pos[0], pos[1]
	if *output == "" {
		*output = scenePath
	}

	m, err := spot.ParseMode(*mode)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	host, err := scene.OpenFile(scenePath)
	if err != nil {
		return err
	}
	soundDir, err = filepath.Abs(soundDir)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	outDir, err := filepath.Abs(filepath.Dir(*output))
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	if *seed == 0 {
		*seed = rand.Uint64()
	}

	log := logger.NewWriter(stderr, *debug)
	placed, err := spot.Spot(host, soundbank.New(soundDir, *prefix, nil), spot.Options{
		Mode:     m,
		SyncPeak: *syncPeak,
		StdDev:   *stddev,
		Range:    *near,
		Rand:     rand.New(rand.NewPCG(*seed, *seed)),
		Sources:  *sources,
		BaseDir:  outDir,
		Logger:   log,
	})
	if err != nil {
		return err
	}

	if err := scene.SaveFile(*output, host.Document()); err != nil {
		return err
	}

	for _, a := range placed {
		fmt.Fprintf(stdout, "%-20s %s %s\n", a.Source, a.Window, a.File)
	}
	fmt.Fprintf(stdout, "seed %d, wrote %s\n", *seed, *output)

	return nil
}
