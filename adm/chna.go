// SPDX-License-Identifier: EPL-2.0

package adm

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	chnaHeaderSize = 4
	chnaEntrySize  = 40

	uidOff   = 2
	trackOff = uidOff + 12
	packOff  = trackOff + 14
	packEnd  = packOff + 11
)

// ChnaTrack maps one file track to its ADM track UID and formats.
type ChnaTrack struct {
	// Index is the 1-based channel number in the data chunk.
	Index       int
	UID         string
	TrackFormat string
	PackFormat  string
}

// Chna is the channel allocation chunk of a BW64 file.
type Chna struct {
	Tracks []ChnaTrack
}

// NumTracks counts distinct track indexes.
func (c *Chna) NumTracks() int {
	seen := make(map[int]bool, len(c.Tracks))
	for _, t := range c.Tracks {
		seen[t.Index] = true
	}
	return len(seen)
}

// MarshalBinary encodes the chunk payload, little endian.
func (c *Chna) MarshalBinary() ([]byte, error) {
	out := make([]byte, chnaHeaderSize+chnaEntrySize*len(c.Tracks))
	binary.LittleEndian.PutUint16(out[0:], uint16(c.NumTracks()))
	binary.LittleEndian.PutUint16(out[2:], uint16(len(c.Tracks)))

	for i, t := range c.Tracks {
		if t.Index <= 0 || t.Index > 0xffff {
			return nil, fmt.Errorf("%w: track index %d", ErrInvalidChna, t.Index)
		}
		if len(t.UID) > trackOff-uidOff || len(t.TrackFormat) > packOff-trackOff || len(t.PackFormat) > packEnd-packOff {
			return nil, fmt.Errorf("%w: oversized id in entry %d", ErrInvalidChna, i)
		}

		e := out[chnaHeaderSize+i*chnaEntrySize:]
		binary.LittleEndian.PutUint16(e, uint16(t.Index))
		copy(e[uidOff:trackOff], t.UID)
		copy(e[trackOff:packOff], t.TrackFormat)
		copy(e[packOff:packEnd], t.PackFormat)
	}

	return out, nil
}

func field(b []byte) string {
	return string(bytes.TrimRight(b, "\x00"))
}

func (c *Chna) UnmarshalBinary(data []byte) error {
	if len(data) < chnaHeaderSize {
		return fmt.Errorf("%w: %d bytes", ErrInvalidChna, len(data))
	}

	n := int(binary.LittleEndian.Uint16(data[2:]))
	if len(data) < chnaHeaderSize+n*chnaEntrySize {
		return fmt.Errorf("%w: %d entries in %d bytes", ErrInvalidChna, n, len(data))
	}

	c.Tracks = make([]ChnaTrack, n)
	for i := range c.Tracks {
		e := data[chnaHeaderSize+i*chnaEntrySize:]
		c.Tracks[i] = ChnaTrack{
			Index:       int(binary.LittleEndian.Uint16(e)),
			UID:         field(e[uidOff:trackOff]),
			TrackFormat: field(e[trackOff:packOff]),
			PackFormat:  field(e[packOff:packEnd]),
		}
	}

	return nil
}
