// SPDX-License-Identifier: EPL-2.0

package spot

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"

	"github.com/ik5/soundobjects/geom"
	"github.com/ik5/soundobjects/internal/logger"
	"github.com/ik5/soundobjects/scene"
	"github.com/ik5/soundobjects/soundbank"
)

type Options struct {
	Mode     Mode
	SyncPeak bool
	StdDev   float64
	// Range is the near distance of the envelope; zero means DefaultRange.
	Range float64
	Rand  *rand.Rand
	// Sources limits spotting to these names; empty means every source.
	Sources []string
	// BaseDir makes clip paths relative to it when set.
	BaseDir string
	Logger  *logger.Logger
}

// Assignment records the clip given to one source.
type Assignment struct {
	Source string
	File   string
	Window geom.FrameInterval
}

// Spot replaces the clips of the selected sources of fs with one clip drawn
// from bank each. The document is changed in memory only.
func Spot(fs *scene.FileScene, bank *soundbank.Bank, opts Options) ([]Assignment, error) {
	log := logger.OrDefault(opts.Logger)
	if opts.Range == 0 {
		opts.Range = DefaultRange
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	doc := fs.Document()
	names := opts.Sources
	if len(names) == 0 {
		for _, sd := range doc.Sources {
			names = append(names, sd.Name)
		}
	}

	out := make([]Assignment, 0, len(names))
	for _, name := range names {
		sd, ok := doc.Source(name)
		if !ok {
			return out, fmt.Errorf("%w: %q", scene.ErrUnknownSource, name)
		}

		env, err := NewEnvelope(fs, name, fs.FrameRange(), opts.Range)
		if err != nil {
			return out, fmt.Errorf("source %s: %w", name, err)
		}

		path, err := bank.Random(opts.Rand)
		if err != nil {
			return out, err
		}
		info, err := bank.Info(path, fs.FPS())
		if err != nil {
			return out, err
		}

		window, err := Place(Placement{
			Mode:     opts.Mode,
			Frames:   fs.FrameRange(),
			Envelope: env,
			Sound:    info,
			SyncPeak: opts.SyncPeak,
			StdDev:   opts.StdDev,
			Rand:     opts.Rand,
		})
		if err != nil {
			return out, fmt.Errorf("source %s: %w", name, err)
		}

		file := path
		if opts.BaseDir != "" {
			if rel, err := filepath.Rel(opts.BaseDir, path); err == nil {
				file = rel
			}
		}
		sd.Clips = []scene.Clip{{File: file, FrameInterval: window}}
		out = append(out, Assignment{Source: name, File: file, Window: window})

		log.Debug().
			Str("source", name).
			Str("file", file).
			Stringer("window", window).
			Bool("entered", env.Entered).
			Int("closest", env.Closest).
			Msg("spotted sound")
	}

	return out, nil
}
