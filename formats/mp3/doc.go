// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 clips through github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16 bit stereo, so every Source from this package
// reports two channels at the file's sample rate:
//
//	src, err := mp3.Decoder{}.Decode(file)
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 48000))
package mp3
