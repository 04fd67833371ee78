// SPDX-License-Identifier: EPL-2.0

package geom

import "math"

// cameraCorrection turns the camera's -Z viewing axis into +Y.
var cameraCorrection = Quat{W: math.Sqrt2 / 2, X: math.Sqrt2 / 2}

// RelativeVector returns the vector from camera to target in the camera's
// coordinate space, with "ahead of the lens" mapped to +Y.
func RelativeVector(camera, target Transform) Vec3 {
	rel := target.Location.Sub(camera.Location)
	rel = camera.Rotation.Normalize().Conjugate().Rotate(rel)

	return cameraCorrection.Rotate(rel)
}

// RoomNorm projects v into the room cube of half-width roomSize.
// Below roomSize (L∞) the vector scales linearly, beyond it it lands on a wall.
func RoomNorm(v Vec3, roomSize float64) Vec3 {
	chebyshev := v.Chebyshev()
	if chebyshev < roomSize {
		return v.Div(roomSize)
	}

	return v.Div(chebyshev)
}
