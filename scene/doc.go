// SPDX-License-Identifier: EPL-2.0

// Package scene describes what the exporter needs from a 3D host: sound
// sources with activation schedules, per-frame transforms, mute flags and a
// mono mixdown command.
//
// # Capabilities
//
// Host combines three small interfaces so callers only depend on what they
// use. The partitioner and trajectory sampler see a PositionSource, the
// object mixes see a Mixer.
//
// # Shared State
//
// A host has one timeline cursor and one set of mute flags. Everything that
// changes them puts them back:
//
//	restore, err := scene.Solo(host, names, keep)
//	if err != nil {
//	    return err
//	}
//	defer restore()
//
// WithFrame does the same for the cursor.
//
// # File Scenes
//
// FileScene is a Host backed by a YAML document with keyframed transforms and
// clips. It is what the command line tool exports from:
//
//	fs, err := scene.OpenFile("forest.yaml")
package scene
