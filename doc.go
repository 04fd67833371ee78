// SPDX-License-Identifier: EPL-2.0

// Package soundobjects exports the sound sources of an animated scene as
// object based audio.
//
// Each source has a position over time and a schedule of activation
// intervals. Export packs sources that never play at the same time into a
// bounded number of objects, renders one mono mixdown per object through the
// scene host, samples each object's trajectory once per frame and writes the
// result as a broadcast wave file carrying ADM metadata.
//
// # Quick Start
//
// Any scene.Host can be exported. A YAML scene description next to its clips
// is opened with scene.OpenFile:
//
//	host, _ := scene.OpenFile("walk.yaml")
//
//	rep, err := soundobjects.Export(ctx, host, soundobjects.DefaultOptions("walk.wav"))
//
// # Objects
//
// Sources are ordered by their closest approach to the camera, nearest first,
// and assigned greedily to the first object whose members never overlap
// them. Objects past Options.MaxObjects are reported in Report.Overflow and
// not written. Sources that never play are reported in Report.Skipped.
//
// # Output
//
// The written file holds one channel per object, in object order, followed
// by these chunks:
//   - bext: scene name, room size, originator and time reference
//   - chna: track UID to track and pack format mapping
//   - axml: the ADM document with one block per stretch of equal position
//
// Mixdowns of unequal length are truncated to the shortest one. The file is
// written next to Output and renamed into place once complete, so a failed
// export never leaves a partial file behind.
//
// # Positions
//
// Positions are camera relative and normalized into the unit cube by
// Options.RoomSize using the Chebyshev (L∞) distance. Sources outside the room
// are projected onto its surface.
package soundobjects
