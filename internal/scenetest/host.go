// SPDX-License-Identifier: EPL-2.0

// Package scenetest provides a synthetic scene.Host for tests.
package scenetest

import (
	"context"
	"fmt"
	"os"

	"github.com/ik5/soundobjects/formats/wav"
	"github.com/ik5/soundobjects/geom"
	"github.com/ik5/soundobjects/scene"
)

// Source is a synthetic emitter. A nil Position keeps it one unit in front
// of the world origin; Level is the constant sample value it contributes to
// mixdowns while active.
type Source struct {
	Name      string
	Intervals []geom.FrameInterval
	Position  func(frame int) geom.Vec3
	Level     float32
}

func (s Source) location(frame int) geom.Vec3 {
	if s.Position == nil {
		return geom.Vec3{Y: 1}
	}
	return s.Position(frame)
}

type source struct{ s *Source }

func (s source) Name() string                          { return s.s.Name }
func (s source) ActiveIntervals() []geom.FrameInterval { return s.s.Intervals }

// Render records one mixdown request.
type Render struct {
	Path    string
	Audible []string
}

// Host implements scene.Host over closures. The zero value is not usable;
// build one with New.
type Host struct {
	SceneName string
	Frames    geom.FrameInterval
	FrameRate int
	Rate      int
	// Camera is the camera transform per frame; nil keeps it at the origin
	// with no rotation.
	Camera func(frame int) geom.Transform
	List   []*Source

	// RenderErr fails every mixdown when set.
	RenderErr error
	// Length overrides the sample count of a mixdown.
	Length func(audible []string) int

	Renders     []Render
	MuteCalls   int
	MaxCursorAt int

	muted  map[string]bool
	cursor scene.Cursor
}

var _ scene.Host = (*Host)(nil)

func New(name string, frames geom.FrameInterval, fps, rate int, sources ...*Source) *Host {
	h := &Host{
		SceneName: name,
		Frames:    frames,
		FrameRate: fps,
		Rate:      rate,
		List:      sources,
		muted:     make(map[string]bool),
	}
	h.cursor.SetFrame(frames.Start)

	return h
}

// Interval is shorthand for a one clip schedule.
func Interval(start, end int) []geom.FrameInterval {
	return []geom.FrameInterval{{Start: start, End: end}}
}

func (h *Host) Name() string                   { return h.SceneName }
func (h *Host) FrameRange() geom.FrameInterval { return h.Frames }
func (h *Host) FPS() int                       { return h.FrameRate }
func (h *Host) SampleRate() int                { return h.Rate }
func (h *Host) CurrentFrame() int              { return h.cursor.CurrentFrame() }

func (h *Host) SetFrame(frame int) {
	h.cursor.SetFrame(frame)
	h.MaxCursorAt = max(h.MaxCursorAt, frame)
}

func (h *Host) Sources() []scene.Source {
	out := make([]scene.Source, len(h.List))
	for i, s := range h.List {
		out[i] = source{s: s}
	}

	return out
}

func (h *Host) find(name string) (*Source, error) {
	for _, s := range h.List {
		if s.Name == name {
			return s, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", scene.ErrUnknownSource, name)
}

func (h *Host) TransformAt(name string, frame int) (geom.Transform, error) {
	s, err := h.find(name)
	if err != nil {
		return geom.Transform{}, err
	}

	var t geom.Transform
	err = scene.WithFrame(h, frame, func() error {
		t = geom.Transform{Location: s.location(h.CurrentFrame()), Rotation: geom.IdentityQuat}
		return nil
	})

	return t, err
}

func (h *Host) CameraAt(frame int) (geom.Transform, error) {
	var t geom.Transform
	err := scene.WithFrame(h, frame, func() error {
		if h.Camera == nil {
			t = geom.Transform{Rotation: geom.IdentityQuat}
			return nil
		}
		t = h.Camera(h.CurrentFrame())
		return nil
	})

	return t, err
}

func (h *Host) Muted(name string) bool { return h.muted[name] }

func (h *Host) SetMuted(name string, muted bool) error {
	if _, err := h.find(name); err != nil {
		return err
	}
	h.MuteCalls++
	h.muted[name] = muted

	return nil
}

// AnyMuted reports whether a mute flag is still set.
func (h *Host) AnyMuted() bool {
	for _, m := range h.muted {
		if m {
			return true
		}
	}

	return false
}

// RenderMonoMixdown writes a WAV where each audible source holds its Level
// over its activation windows.
func (h *Host) RenderMonoMixdown(_ context.Context, path string, bitDepth int) error {
	var audible []string
	for _, s := range h.List {
		if !h.muted[s.Name] {
			audible = append(audible, s.Name)
		}
	}
	h.Renders = append(h.Renders, Render{Path: path, Audible: audible})

	if h.RenderErr != nil {
		return h.RenderErr
	}

	perFrame := h.Rate / h.FrameRate
	n := h.Frames.Len() * perFrame
	if h.Length != nil {
		n = h.Length(audible)
	}

	samples := make([]float32, n)
	for _, s := range h.List {
		if h.muted[s.Name] {
			continue
		}
		for _, fi := range s.Intervals {
			from := max(0, (fi.Start-h.Frames.Start)*perFrame)
			to := min(n, (fi.End-h.Frames.Start+1)*perFrame)
			for i := from; i < to; i++ {
				samples[i] += s.Level
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer f.Close()

	return wav.WriteMono(f, h.Rate, bitDepth, samples)
}
