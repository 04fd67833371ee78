// SPDX-License-Identifier: EPL-2.0

package scene

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/ik5/soundobjects/geom"
)

// Keyframe pins a transform to a frame. Rotation is a (w, x, y, z)
// quaternion; nil means identity.
type Keyframe struct {
	Frame    int         `yaml:"frame"`
	Location [3]float64  `yaml:"location,flow"`
	Rotation *[4]float64 `yaml:"rotation,omitempty,flow"`
}

func (k Keyframe) Transform() geom.Transform {
	t := geom.Transform{
		Location: geom.Vec3{X: k.Location[0], Y: k.Location[1], Z: k.Location[2]},
		Rotation: geom.IdentityQuat,
	}
	if k.Rotation != nil {
		r := k.Rotation
		t.Rotation = geom.Quat{W: r[0], X: r[1], Y: r[2], Z: r[3]}.Normalize()
	}

	return t
}

// Clip schedules an audio file over an inclusive frame window. Relative
// paths are resolved against the document's directory.
type Clip struct {
	File               string `yaml:"file"`
	geom.FrameInterval `yaml:",inline"`
}

type SourceDoc struct {
	Name      string     `yaml:"name"`
	Muted     bool       `yaml:"muted,omitempty"`
	Keyframes []Keyframe `yaml:"keyframes,omitempty"`
	Clips     []Clip     `yaml:"clips,omitempty"`
}

// Document is the on-disk form of a FileScene.
type Document struct {
	Name       string      `yaml:"name"`
	FPS        int         `yaml:"fps"`
	FrameStart int         `yaml:"frame_start"`
	FrameEnd   int         `yaml:"frame_end"`
	SampleRate int         `yaml:"sample_rate"`
	Camera     []Keyframe  `yaml:"camera,omitempty"`
	Sources    []SourceDoc `yaml:"sources"`
}

// Validate checks the scene settings and sorts keyframes by frame.
func (d *Document) Validate() error {
	switch {
	case d.Name == "":
		return fmt.Errorf("%w: missing name", ErrInvalidScene)
	case d.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalidScene, d.FPS)
	case d.SampleRate <= 0:
		return fmt.Errorf("%w: sample_rate %d", ErrInvalidScene, d.SampleRate)
	case d.FrameStart > d.FrameEnd:
		return fmt.Errorf("%w: frame_start %d after frame_end %d", ErrInvalidScene, d.FrameStart, d.FrameEnd)
	}

	if err := sortKeyframes("camera", d.Camera); err != nil {
		return err
	}

	seen := make(map[string]bool, len(d.Sources))
	for i := range d.Sources {
		src := &d.Sources[i]
		if src.Name == "" {
			return fmt.Errorf("%w: source %d has no name", ErrInvalidScene, i)
		}
		if seen[src.Name] {
			return fmt.Errorf("%w: duplicate source %q", ErrInvalidScene, src.Name)
		}
		seen[src.Name] = true

		if err := sortKeyframes(src.Name, src.Keyframes); err != nil {
			return err
		}
	}

	return nil
}

func sortKeyframes(owner string, keys []Keyframe) error {
	slices.SortStableFunc(keys, func(a, b Keyframe) int { return a.Frame - b.Frame })
	for i := 1; i < len(keys); i++ {
		if keys[i].Frame == keys[i-1].Frame {
			return fmt.Errorf("%w: %s has two keyframes at frame %d", ErrInvalidScene, owner, keys[i].Frame)
		}
	}

	return nil
}

// Source returns the source named name.
func (d *Document) Source(name string) (*SourceDoc, bool) {
	for i := range d.Sources {
		if d.Sources[i].Name == name {
			return &d.Sources[i], true
		}
	}

	return nil, false
}

func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidScene, path, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &doc, nil
}

func SaveFile(path string, doc *Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// sample evaluates keyframes at frame: linear between keys, held before the
// first and after the last.
func sample(keys []Keyframe, frame int) geom.Transform {
	if len(keys) == 0 {
		return geom.Transform{Rotation: geom.IdentityQuat}
	}
	if frame <= keys[0].Frame {
		return keys[0].Transform()
	}
	last := keys[len(keys)-1]
	if frame >= last.Frame {
		return last.Transform()
	}

	i, _ := slices.BinarySearchFunc(keys, frame, func(k Keyframe, f int) int { return k.Frame - f })
	if keys[i].Frame == frame {
		return keys[i].Transform()
	}

	a, b := keys[i-1].Transform(), keys[i].Transform()
	t := float64(frame-keys[i-1].Frame) / float64(keys[i].Frame-keys[i-1].Frame)

	return geom.Transform{
		Location: a.Location.Lerp(b.Location, t),
		Rotation: a.Rotation.Nlerp(b.Rotation, t),
	}
}
