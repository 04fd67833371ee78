// SPDX-License-Identifier: EPL-2.0

// Package utils holds the sample level helpers shared by the decoders, the
// renderer and the muxer: float to integer PCM conversion at 16, 24 and 32
// bits, and Catmull-Rom interpolation for the resampler.
package utils
