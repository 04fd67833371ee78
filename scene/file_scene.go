// SPDX-License-Identifier: EPL-2.0

package scene

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ik5/soundobjects/audio"
	"github.com/ik5/soundobjects/geom"
	"github.com/ik5/soundobjects/render"
)

// FileScene is a Host over a Document. Clip paths resolve against dir.
type FileScene struct {
	doc      *Document
	dir      string
	cursor   Cursor
	registry *audio.Registry
}

var _ Host = (*FileScene)(nil)

// NewFileScene validates doc and wraps it. reg decodes clips during
// mixdowns; nil selects the bundled formats.
func NewFileScene(doc *Document, dir string, reg *audio.Registry) (*FileScene, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	fs := &FileScene{doc: doc, dir: dir, registry: reg}
	fs.cursor.SetFrame(doc.FrameStart)

	return fs, nil
}

// OpenFile loads a document and resolves its clips next to it.
func OpenFile(path string) (*FileScene, error) {
	doc, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	return NewFileScene(doc, filepath.Dir(path), nil)
}

func (fs *FileScene) Document() *Document { return fs.doc }
func (fs *FileScene) Name() string        { return fs.doc.Name }
func (fs *FileScene) FPS() int            { return fs.doc.FPS }
func (fs *FileScene) SampleRate() int     { return fs.doc.SampleRate }

func (fs *FileScene) FrameRange() geom.FrameInterval {
	return geom.FrameInterval{Start: fs.doc.FrameStart, End: fs.doc.FrameEnd}
}

func (fs *FileScene) CurrentFrame() int  { return fs.cursor.CurrentFrame() }
func (fs *FileScene) SetFrame(frame int) { fs.cursor.SetFrame(frame) }

type fileSource struct {
	name      string
	intervals []geom.FrameInterval
}

func (s fileSource) Name() string                          { return s.name }
func (s fileSource) ActiveIntervals() []geom.FrameInterval { return s.intervals }

// Sources rebuilds the source list from the document on every call.
func (fs *FileScene) Sources() []Source {
	out := make([]Source, 0, len(fs.doc.Sources))
	for _, sd := range fs.doc.Sources {
		intervals := make([]geom.FrameInterval, len(sd.Clips))
		for i, c := range sd.Clips {
			intervals[i] = c.FrameInterval
		}
		out = append(out, fileSource{name: sd.Name, intervals: intervals})
	}

	return out
}

func (fs *FileScene) TransformAt(name string, frame int) (geom.Transform, error) {
	sd, ok := fs.doc.Source(name)
	if !ok {
		return geom.Transform{}, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}

	var t geom.Transform
	err := WithFrame(fs, frame, func() error {
		t = sample(sd.Keyframes, fs.CurrentFrame())
		return nil
	})

	return t, err
}

func (fs *FileScene) CameraAt(frame int) (geom.Transform, error) {
	var t geom.Transform
	err := WithFrame(fs, frame, func() error {
		t = sample(fs.doc.Camera, fs.CurrentFrame())
		return nil
	})

	return t, err
}

func (fs *FileScene) Muted(name string) bool {
	sd, ok := fs.doc.Source(name)
	return ok && sd.Muted
}

func (fs *FileScene) SetMuted(name string, muted bool) error {
	sd, ok := fs.doc.Source(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
	sd.Muted = muted

	return nil
}

// clipPath resolves a clip file against the scene directory.
func (fs *FileScene) clipPath(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(fs.dir, file)
}

// RenderMonoMixdown bounces the clips of every unmuted source over the
// scene frame range.
func (fs *FileScene) RenderMonoMixdown(ctx context.Context, path string, bitDepth int) error {
	var clips []render.Clip
	for _, sd := range fs.doc.Sources {
		if sd.Muted {
			continue
		}
		for _, c := range sd.Clips {
			clips = append(clips, render.Clip{Path: fs.clipPath(c.File), Interval: c.FrameInterval})
		}
	}

	spec := render.Spec{
		Frames:     fs.FrameRange(),
		FPS:        fs.doc.FPS,
		SampleRate: fs.doc.SampleRate,
		BitDepth:   bitDepth,
	}

	if err := render.Mixdown(ctx, spec, clips, path, fs.registry); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
