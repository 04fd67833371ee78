// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/ik5/soundobjects/internal/logger"
	"github.com/ik5/soundobjects/partition"
	"github.com/ik5/soundobjects/scene"
)

type State int

const (
	Unrendered State = iota
	Rendered
	Reading
	Disposed
)

func (s State) String() string {
	switch s {
	case Unrendered:
		return "unrendered"
	case Rendered:
		return "rendered"
	case Reading:
		return "reading"
	case Disposed:
		return "disposed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Host is the part of a scene host a mix needs to bounce audio.
type Host interface {
	scene.Mixer
	Name() string
	Sources() []scene.Source
}

// CleanName replaces everything but ASCII letters and digits with '_'.
func CleanName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, name)
}

// FileName is the mixdown file name of object in sceneName.
func FileName(sceneName, object string) string {
	return CleanName(sceneName) + "_" + CleanName(object) + ".wav"
}

type ObjectMix struct {
	host     Host
	group    partition.Group
	path     string
	bitDepth int
	log      *logger.Logger

	state  State
	reader *Reader
}

// New prepares the mix of group; nothing is rendered until the file is
// needed. path is where the mixdown will be written.
func New(host Host, group partition.Group, path string, bitDepth int, log *logger.Logger) (*ObjectMix, error) {
	if len(group.Members) == 0 {
		return nil, ErrEmptyGroup
	}

	return &ObjectMix{
		host:     host,
		group:    group,
		path:     path,
		bitDepth: bitDepth,
		log:      logger.OrDefault(log),
	}, nil
}

// Name is the name of the object's earliest member.
func (m *ObjectMix) Name() string           { return m.group.Name() }
func (m *ObjectMix) Group() partition.Group { return m.group }
func (m *ObjectMix) State() State           { return m.state }

// Render bounces the mixdown unless it is already rendered. It refuses to
// write over a file it did not create.
func (m *ObjectMix) Render(ctx context.Context) error {
	switch m.state {
	case Disposed:
		return ErrDisposed
	case Rendered, Reading:
		return nil
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w", err)
	}

	// Dispose deletes the path, so it must be ours.
	if _, err := os.Lstat(m.path); err == nil {
		return fmt.Errorf("%w: %s", ErrPathExists, m.path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", m.Name(), err)
	}

	restore, err := scene.Solo(m.host, scene.Names(m.host.Sources()), m.group.Names())
	if err != nil {
		return fmt.Errorf("%w: %s: %w", scene.ErrRender, m.Name(), err)
	}

	var mErr *multierror.Error
	if err := m.host.RenderMonoMixdown(ctx, m.path, m.bitDepth); err != nil {
		mErr = multierror.Append(mErr, fmt.Errorf("%w: %s: %w", scene.ErrRender, m.Name(), err))
	}
	if err := restore(); err != nil {
		mErr = multierror.Append(mErr, fmt.Errorf("restoring mute flags: %w", err))
	}

	if err := mErr.ErrorOrNil(); err != nil {
		// Whatever the host managed to write is not a usable mixdown.
		if rmErr := os.Remove(m.path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			m.log.Warn().Err(rmErr).Str("path", m.path).Msg("partial mixdown not removed")
		}
		return err
	}

	m.state = Rendered
	m.log.Info().Str("object", m.Name()).Str("path", m.path).Msg("created mixdown")

	return nil
}

// Path renders the mixdown if needed and returns its location.
func (m *ObjectMix) Path(ctx context.Context) (string, error) {
	if err := m.Render(ctx); err != nil {
		return "", err
	}
	return m.path, nil
}

// Reader renders the mixdown if needed and returns its decoder, opening it
// on first use.
func (m *ObjectMix) Reader(ctx context.Context) (*Reader, error) {
	if m.reader != nil {
		return m.reader, nil
	}
	if err := m.Render(ctx); err != nil {
		return nil, err
	}

	r, err := OpenReader(m.path)
	if err != nil {
		return nil, err
	}
	m.reader = r
	m.state = Reading

	return r, nil
}

// Dispose closes the reader and removes the mixdown file. A file that is
// already gone is logged and ignored.
func (m *ObjectMix) Dispose() error {
	if m.state == Disposed {
		return nil
	}
	rendered := m.state != Unrendered
	m.state = Disposed

	var mErr *multierror.Error
	if m.reader != nil {
		if err := m.reader.Close(); err != nil {
			mErr = multierror.Append(mErr, err)
		}
		m.reader = nil
	}

	if rendered {
		err := os.Remove(m.path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			m.log.Warn().Str("path", m.path).Msg("mixdown already removed")
		case err != nil:
			mErr = multierror.Append(mErr, fmt.Errorf("%w", err))
		}
	}

	return mErr.ErrorOrNil()
}

// pathIn joins the mixdown file name of object to dir.
func pathIn(dir, sceneName, object string) string {
	return filepath.Join(dir, FileName(sceneName, object))
}
