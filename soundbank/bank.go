// SPDX-License-Identifier: EPL-2.0

package soundbank

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/ik5/soundobjects/audio"
	"github.com/ik5/soundobjects/formats"
)

const readBuffer = 8192

// Info locates a sound on the scene timeline. Both values are in frames
// and may be fractional.
type Info struct {
	// PeakFrame is the offset of the first frame holding the largest sample.
	PeakFrame float64
	Frames    float64
}

type infoKey struct {
	path string
	fps  int
}

type Bank struct {
	dir      string
	prefix   string
	registry *audio.Registry

	mtx   sync.Mutex
	cache map[infoKey]Info
}

// New returns a bank over dir. reg selects the decodable formats; nil means
// the bundled ones.
func New(dir, prefix string, reg *audio.Registry) *Bank {
	if reg == nil {
		reg = formats.Default()
	}

	return &Bank{
		dir:      dir,
		prefix:   prefix,
		registry: reg,
		cache:    make(map[infoKey]Info),
	}
}

// Sounds lists the matching files in name order.
func (b *Bank) Sounds() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, b.prefix) {
			continue
		}
		if _, ok := b.registry.Get(filepath.Ext(name)); !ok {
			continue
		}
		out = append(out, filepath.Join(b.dir, name))
	}
	slices.Sort(out)

	return out, nil
}

// Random picks one of the matching files.
func (b *Bank) Random(rng *rand.Rand) (string, error) {
	sounds, err := b.Sounds()
	if err != nil {
		return "", err
	}
	if len(sounds) == 0 {
		return "", fmt.Errorf("%w: %q in %s", ErrEmpty, b.prefix, b.dir)
	}

	return sounds[rng.IntN(len(sounds))], nil
}

// Info decodes the sound at path once per fps and reports its peak and
// length in frames.
func (b *Bank) Info(path string, fps int) (Info, error) {
	if fps <= 0 {
		return Info{}, fmt.Errorf("%w: %d", ErrInvalidFPS, fps)
	}

	key := infoKey{path: path, fps: fps}
	b.mtx.Lock()
	info, ok := b.cache[key]
	b.mtx.Unlock()
	if ok {
		return info, nil
	}

	info, err := b.measure(path, fps)
	if err != nil {
		return Info{}, err
	}

	b.mtx.Lock()
	b.cache[key] = info
	b.mtx.Unlock()

	return info, nil
}

func (b *Bank) measure(path string, fps int) (Info, error) {
	src, err := b.registry.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer src.Close()

	samples, err := audio.ReadAll(src, readBuffer)
	if err != nil {
		return Info{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(samples) == 0 {
		return Info{}, fmt.Errorf("%w: %s", ErrSilent, path)
	}

	peak := 0
	for i, s := range samples {
		if s > samples[peak] {
			peak = i
		}
	}

	channels, rate := src.Channels(), float64(src.SampleRate())
	frames := len(samples) / channels

	return Info{
		PeakFrame: float64(peak/channels) * float64(fps) / rate,
		Frames:    float64(frames) * float64(fps) / rate,
	}, nil
}
