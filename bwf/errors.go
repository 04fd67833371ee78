// SPDX-License-Identifier: EPL-2.0

package bwf

import "errors"

var (
	ErrInvalidFormat  = errors.New("bwf: invalid output format")
	ErrInvalidChunkID = errors.New("bwf: chunk id must be four bytes")
	ErrReservedChunk  = errors.New("bwf: chunk id is written by the encoder")
	ErrClosed         = errors.New("bwf: writer is closed")
	ErrChannelCount   = errors.New("bwf: buffer channel count does not match the file")
	ErrNotWave        = errors.New("bwf: not a RIFF/WAVE file")
	ErrBextSize       = errors.New("bwf: bext chunk is shorter than 602 bytes")
	ErrNegativeOffset = errors.New("bwf: negative time reference")
)
