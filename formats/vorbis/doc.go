// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis clips through
// github.com/jfreymuth/oggvorbis.
//
// Samples are produced as float32 directly by the decoder, with the channel
// count and rate declared in the Vorbis identification header.
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	samples, err := audio.ReadAll(src, 4096)
package vorbis
