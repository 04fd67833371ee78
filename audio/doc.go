// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM plumbing used to render source mixdowns and
// to inspect sound bank clips.
//
// # Source Interface
//
// Every decoder and processor implements Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// Samples are interleaved float32 values in [-1.0, 1.0]. ReadSamples may
// return data together with io.EOF on the last call.
//
// # Registry
//
// A Registry maps file extensions to decoders so a clip path can be opened
// without knowing its container:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	src, err := reg.Open("steps.wav")
//
// # Resampling and Mixing
//
// The Resampler changes the rate of a stream with Catmull-Rom interpolation,
// and the MonoMixer averages channels down to one:
//
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 48000))
//	samples, err := audio.ReadAll(mono, 4096)
//
// ResampleToMono does the same in one call.
package audio
