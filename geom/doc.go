// SPDX-License-Identifier: EPL-2.0

// Package geom provides the small amount of geometry the exporter needs.
//
// It covers three things:
//   - FrameInterval, an inclusive range of scene frames with an overlap test
//   - Vec3, Quat and Transform, enough linear algebra to express a world-space
//     location relative to the camera
//   - RoomNorm, the Chebyshev (L∞) room normalization used for ADM
//     allocentric cartesian positions
//
// # Frame Intervals
//
// Intervals are closed on both ends. Two intervals overlap when either one's start
// lies inside the other:
//
//	a := geom.FrameInterval{Start: 0, End: 10}
//	b := geom.FrameInterval{Start: 10, End: 20}
//	a.Overlaps(b) // true, frame 10 is shared
//
// # Camera Space
//
// RelativeVector maps a target transform into the camera's coordinate space. The
// camera looks down its local -Z axis; the result is rotated a quarter turn about X
// so that "straight ahead" becomes +Y, which is "front" for ADM cartesian positions.
//
// # Room Normalization
//
// The room is a cube of half-width roomSize centered on the camera. Inside the room a
// vector is scaled linearly by 1/roomSize; outside it is projected onto the walls by
// dividing by its own L∞ magnitude:
//
//	geom.RoomNorm(geom.Vec3{Y: 0.5}, 1) // {0, 0.5, 0}
//	geom.RoomNorm(geom.Vec3{Y: 2}, 1)   // {0, 1, 0}
package geom
