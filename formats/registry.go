// SPDX-License-Identifier: EPL-2.0

// Package formats wires the bundled decoders into an audio.Registry.
package formats

import (
	"github.com/ik5/soundobjects/audio"
	"github.com/ik5/soundobjects/formats/aiff"
	"github.com/ik5/soundobjects/formats/mp3"
	"github.com/ik5/soundobjects/formats/vorbis"
	"github.com/ik5/soundobjects/formats/wav"
)

// Default returns a registry that opens wav, aif, aiff, mp3 and ogg files.
func Default() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})

	return reg
}
