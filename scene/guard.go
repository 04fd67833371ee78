// SPDX-License-Identifier: EPL-2.0

package scene

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"
)

// Timeline is a movable current-frame cursor.
type Timeline interface {
	CurrentFrame() int
	SetFrame(frame int)
}

// Cursor is a plain Timeline.
type Cursor struct {
	frame int
}

func (c *Cursor) CurrentFrame() int  { return c.frame }
func (c *Cursor) SetFrame(frame int) { c.frame = frame }

// WithFrame moves tl to frame while fn runs and moves it back afterwards,
// also when fn panics.
func WithFrame(tl Timeline, frame int, fn func() error) error {
	prev := tl.CurrentFrame()
	tl.SetFrame(frame)
	defer tl.SetFrame(prev)

	return fn()
}

// Solo mutes every name in all that is not in keep and unmutes the ones
// in keep. The returned function puts back the mute flags seen before the
// call; calling it more than once is a no-op. When Solo fails it has already
// restored what it changed.
func Solo(m Mixer, all []string, keep []string) (func() error, error) {
	type flag struct {
		name  string
		muted bool
	}

	var changed []flag
	restore := func() error {
		var mErr *multierror.Error
		for i := len(changed) - 1; i >= 0; i-- {
			if err := m.SetMuted(changed[i].name, changed[i].muted); err != nil {
				mErr = multierror.Append(mErr, err)
			}
		}
		changed = nil

		return mErr.ErrorOrNil()
	}

	for _, name := range all {
		was := m.Muted(name)
		want := !slices.Contains(keep, name)
		if was == want {
			continue
		}

		if err := m.SetMuted(name, want); err != nil {
			if rErr := restore(); rErr != nil {
				err = multierror.Append(err, rErr)
			}
			return nil, fmt.Errorf("solo %s: %w", name, err)
		}
		changed = append(changed, flag{name: name, muted: was})
	}

	return restore, nil
}
