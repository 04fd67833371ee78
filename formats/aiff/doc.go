// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF clips for the sound bank and the offline
// renderer.
//
// This package uses github.com/go-audio/aiff. Integer PCM at 16, 24 or 32
// bits is accepted with any channel count and sample rate:
//
//	src, err := aiff.Decoder{}.Decode(file)
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// The go-audio decoder needs to seek, so a reader that cannot seek is
// buffered in memory first.
//
// # Errors
//
//   - ErrNotAiffFile: the FORM/AIFF header is missing or broken
//   - ErrUnsupportedAiffLayout: the COMM chunk carries no channel layout
//   - pcmsource.ErrUnsupportedBitDepth: 8 bit or other sample sizes
package aiff
