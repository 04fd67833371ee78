// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes integer PCM WAV files.
//
// Decoding and encoding both go through github.com/go-audio/wav. The decoder
// accepts 16, 24 and 32 bit PCM with any channel count; samples come out as
// float32 in [-1.0, 1.0].
//
//	src, err := wav.Decoder{}.Decode(file)
//
// WriteMono is used for per-source mixdowns:
//
//	f, _ := os.Create("Scene_Bird.wav")
//	defer f.Close()
//	err := wav.WriteMono(f, 48000, 24, samples)
//
// The writer needs an io.WriteSeeker because the RIFF and data sizes are
// patched in once all samples are written.
package wav
