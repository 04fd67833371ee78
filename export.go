// SPDX-License-Identifier: EPL-2.0

package soundobjects

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/ik5/soundobjects/adm"
	"github.com/ik5/soundobjects/bwf"
	"github.com/ik5/soundobjects/internal/logger"
	"github.com/ik5/soundobjects/internal/metrics"
	"github.com/ik5/soundobjects/mix"
	"github.com/ik5/soundobjects/partition"
	"github.com/ik5/soundobjects/scene"
	"github.com/ik5/soundobjects/trajectory"
)

const (
	// MinRoomSize is the smallest accepted room half-width.
	MinRoomSize = 0.001
	// MaxObjects is one less than the ADM channel limit.
	MaxObjects        = 118
	DefaultRoomSize   = 1.0
	DefaultMaxObjects = 24
	DefaultBitDepth   = 24
	DefaultOriginator = "soundobjects"
)

type Options struct {
	// Output is the path of the file to write.
	Output     string
	RoomSize   float64
	MaxObjects int
	// Tolerance is the L∞ distance under which two positions count as
	// equal. Zero compares exactly.
	Tolerance  float64
	BitDepth   int
	Originator string
	// WorkDir holds a private subdirectory for the intermediate mixdowns,
	// removed after the export; empty means the directory of Output.
	WorkDir string

	Logger  *logger.Logger
	Metrics *metrics.Export
	// Now stamps the bext record; nil means time.Now.
	Now func() time.Time
}

// DefaultOptions returns the options of a plain export to output.
func DefaultOptions(output string) Options {
	return Options{
		Output:     output,
		RoomSize:   DefaultRoomSize,
		MaxObjects: DefaultMaxObjects,
		BitDepth:   DefaultBitDepth,
		Originator: DefaultOriginator,
	}
}

func (o Options) Validate() error {
	switch {
	case o.Output == "":
		return fmt.Errorf("%w: no output path", ErrInvalidOptions)
	case math.IsNaN(o.RoomSize) || o.RoomSize < MinRoomSize:
		return fmt.Errorf("%w: room size %v below %v", ErrInvalidOptions, o.RoomSize, MinRoomSize)
	case o.MaxObjects < 0 || o.MaxObjects > MaxObjects:
		return fmt.Errorf("%w: max objects %d outside 0..%d", ErrInvalidOptions, o.MaxObjects, MaxObjects)
	case math.IsNaN(o.Tolerance) || o.Tolerance < 0:
		return fmt.Errorf("%w: tolerance %v", ErrInvalidOptions, o.Tolerance)
	case o.BitDepth != 16 && o.BitDepth != 24 && o.BitDepth != 32:
		return fmt.Errorf("%w: bit depth %d", ErrInvalidOptions, o.BitDepth)
	}

	return nil
}

// ObjectReport describes one written object.
type ObjectReport struct {
	Name    string
	Members []string
	Blocks  int
}

// Report is the outcome of an export.
type Report struct {
	Output  string
	Objects []ObjectReport
	// Overflow lists the members of every group dropped over the object
	// limit.
	Overflow [][]string
	Skipped  []string
	// Frames is the number of sample frames per channel written.
	Frames     int
	SampleRate int
	BitDepth   int
}

// Export partitions the sources of host into objects and writes their
// mixdowns and motion into a broadcast wave file at opts.Output. A scene
// without playable sources is not an error; nothing is written then.
func Export(ctx context.Context, host scene.Host, opts Options) (rep Report, err error) {
	if err := opts.Validate(); err != nil {
		return Report{}, err
	}
	if opts.WorkDir == "" {
		opts.WorkDir = filepath.Dir(opts.Output)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := logger.OrDefault(opts.Logger)
	rep.Output = opts.Output

	began := time.Now()
	defer func() {
		result := metrics.ResultOK
		switch {
		case err != nil:
			result = metrics.ResultFailed
		case len(rep.Objects) == 0:
			result = metrics.ResultEmpty
		}
		opts.Metrics.Finished(result, time.Since(began), len(rep.Objects), len(rep.Overflow), len(rep.Skipped))
	}()

	if err := ctx.Err(); err != nil {
		return rep, fmt.Errorf("%w", err)
	}

	lock := flock.New(opts.Output + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return rep, fmt.Errorf("locking %s: %w", opts.Output, err)
	}
	if !locked {
		return rep, fmt.Errorf("%w: %s", ErrLocked, opts.Output)
	}
	defer lock.Unlock()

	res, err := partition.Partition(host, opts.MaxObjects, log)
	if err != nil {
		return rep, err
	}
	rep.Skipped = res.Skipped
	for _, g := range res.Overflow {
		rep.Overflow = append(rep.Overflow, g.Names())
	}

	if len(res.Groups) == 0 {
		log.Info().Str("scene", host.Name()).Msg("no playable sound sources, nothing to export")
		return rep, nil
	}

	sampler := trajectory.Sampler{
		Positions: host,
		RoomSize:  opts.RoomSize,
		Tolerance: opts.Tolerance,
		FPS:       host.FPS(),
	}
	objects := make([]adm.Object, len(res.Groups))
	for i, g := range res.Groups {
		blocks, err := sampler.Sample(g)
		if err != nil {
			return rep, fmt.Errorf("object %s: %w", g.Name(), err)
		}
		objects[i] = adm.Object{Name: g.Name(), Blocks: blocks}
		rep.Objects = append(rep.Objects, ObjectReport{Name: g.Name(), Members: g.Names(), Blocks: len(blocks)})
		log.Debug().Str("object", g.Name()).Int("blocks", len(blocks)).Msg("sampled trajectory")
	}

	mixOpts := mix.Options{WorkDir: opts.WorkDir, BitDepth: opts.BitDepth, Logger: log}
	err = mix.WithPool(host, res.Groups, mixOpts, func(p *mix.Pool) error {
		return write(ctx, host, p, objects, opts, &rep)
	})
	if err != nil {
		return rep, err
	}

	log.Info().
		Str("output", rep.Output).
		Int("objects", len(rep.Objects)).
		Int("frames", rep.Frames).
		Msg("export written")

	return rep, nil
}

func write(ctx context.Context, host scene.Host, p *mix.Pool, objects []adm.Object, opts Options, rep *Report) error {
	length, err := p.ShortestLength(ctx)
	if err != nil {
		return err
	}

	readers := make([]*mix.Reader, p.Len())
	for i, m := range p.Mixes() {
		if readers[i], err = m.Reader(ctx); err != nil {
			return err
		}
		if readers[i].SampleRate() != readers[0].SampleRate() || readers[i].BitDepth() != readers[0].BitDepth() {
			return fmt.Errorf("%w: %s is %d Hz/%d bit, %s is %d Hz/%d bit", ErrFormatMismatch,
				m.Name(), readers[i].SampleRate(), readers[i].BitDepth(),
				p.Mixes()[0].Name(), readers[0].SampleRate(), readers[0].BitDepth())
		}
		opts.Metrics.Object(len(objects[i].Blocks))
	}
	rate, bits := readers[0].SampleRate(), readers[0].BitDepth()

	doc, chna, err := adm.Build(adm.Scene{
		Name:       host.Name(),
		Frames:     host.FrameRange(),
		FPS:        host.FPS(),
		SampleRate: rate,
		BitDepth:   bits,
	}, objects)
	if err != nil {
		return err
	}
	axml, err := doc.Marshal()
	if err != nil {
		return err
	}
	chnaData, err := chna.MarshalBinary()
	if err != nil {
		return err
	}
	bext, err := bwf.NewBext(host.Name(), opts.RoomSize, opts.Originator, host.FrameRange().Start, rate, host.FPS(), opts.Now())
	if err != nil {
		return err
	}
	bextData, err := bext.MarshalBinary()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(opts.Output), ".soundobjects-*.wav")
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	w, err := bwf.NewWriter(tmp, rate, bits, len(readers))
	if err != nil {
		return err
	}
	for _, c := range []bwf.Chunk{{ID: bwf.BextID, Data: bextData}, {ID: bwf.ChnaID, Data: chnaData}, {ID: bwf.AxmlID, Data: axml}} {
		if err := w.AddChunk(c.ID, c.Data); err != nil {
			return err
		}
	}

	if err := mux(ctx, readers, w, length); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	if err := os.Rename(tmp.Name(), opts.Output); err != nil {
		return fmt.Errorf("%w", err)
	}

	rep.Frames, rep.SampleRate, rep.BitDepth = length, rate, bits
	opts.Metrics.Samples(length)

	return nil
}
