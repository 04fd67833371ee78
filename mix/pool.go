// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/ik5/soundobjects/internal/logger"
	"github.com/ik5/soundobjects/partition"
)

type Options struct {
	// WorkDir holds the pool's private directory of mixdown files. Empty
	// means the system temporary directory.
	WorkDir  string
	BitDepth int
	Logger   *logger.Logger
}

type Pool struct {
	dir   string
	mixes []*ObjectMix
	log   *logger.Logger
}

// NewPool creates one mix per group, in group order, inside a fresh
// directory under opts.WorkDir. Mixes whose file names would collide get a
// numeric suffix.
func NewPool(host Host, groups []partition.Group, opts Options) (*Pool, error) {
	dir, err := os.MkdirTemp(opts.WorkDir, ".soundobjects-*")
	if err != nil {
		return nil, fmt.Errorf("creating mixdown directory: %w", err)
	}

	p := &Pool{dir: dir, log: logger.OrDefault(opts.Logger)}
	used := make(map[string]bool, len(groups))

	for i, g := range groups {
		path := pathIn(dir, host.Name(), g.Name())
		for n := 2; used[path]; n++ {
			path = pathIn(dir, host.Name(), fmt.Sprintf("%s_%d", g.Name(), n))
		}
		used[path] = true

		m, err := New(host, g, path, opts.BitDepth, p.log)
		if err != nil {
			if rmErr := os.RemoveAll(dir); rmErr != nil {
				p.log.Warn().Err(rmErr).Str("dir", dir).Msg("mixdown directory not removed")
			}
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		p.mixes = append(p.mixes, m)
	}

	return p, nil
}

// Dir is the directory holding the pool's mixdowns. It is gone after Close.
func (p *Pool) Dir() string { return p.dir }

// Mixes returns the mixes in object order.
func (p *Pool) Mixes() []*ObjectMix { return p.mixes }
func (p *Pool) Len() int            { return len(p.mixes) }

// ShortestLength renders and opens every mix and returns the smallest sample
// count among them. Unequal lengths are logged since the longer tracks lose
// their tails.
func (p *Pool) ShortestLength(ctx context.Context) (int, error) {
	if len(p.mixes) == 0 {
		return 0, nil
	}

	lengths := make([]string, len(p.mixes))
	shortest, longest := -1, 0
	for i, m := range p.mixes {
		r, err := m.Reader(ctx)
		if err != nil {
			return 0, err
		}

		n := r.Len()
		lengths[i] = fmt.Sprintf("%s=%d", m.Name(), n)
		if shortest < 0 || n < shortest {
			shortest = n
		}
		longest = max(longest, n)
	}

	if shortest != longest {
		p.log.Warn().
			Int("shortest", shortest).
			Int("longest", longest).
			Str("lengths", strings.Join(lengths, " ")).
			Msg("track lengths differ, truncating to the shortest")
	}

	return shortest, nil
}

// Close disposes every mix, removes the pool directory and returns all
// failures together.
func (p *Pool) Close() error {
	var mErr *multierror.Error
	for _, m := range p.mixes {
		if err := m.Dispose(); err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("%s: %w", m.Name(), err))
		}
	}

	if p.dir != "" {
		if err := os.RemoveAll(p.dir); err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("removing %s: %w", p.dir, err))
		}
		p.dir = ""
	}

	return mErr.ErrorOrNil()
}

// WithPool runs fn with a new pool and closes the pool afterwards. An error
// from fn wins over a cleanup error, which is then only logged.
func WithPool(host Host, groups []partition.Group, opts Options, fn func(*Pool) error) (err error) {
	p, err := NewPool(host, groups, opts)
	if err != nil {
		return err
	}

	defer func() {
		cErr := p.Close()
		if cErr == nil {
			return
		}
		if err != nil {
			p.log.Warn().Err(cErr).Msg("mixdown cleanup failed")
			return
		}
		err = cErr
	}()

	return fn(p)
}
