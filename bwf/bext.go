// SPDX-License-Identifier: EPL-2.0

package bwf

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/uuid"
)

// BextSize is the length of a version 0 bext record.
const BextSize = 256 + 32 + 32 + 10 + 8 + 8 + 2 + 64 + 190

// Bext is the broadcast audio extension record.
type Bext struct {
	Description         string
	Originator          string
	OriginatorReference string
	OriginationDate     string
	OriginationTime     string
	// TimeReference is the first sample since midnight.
	TimeReference uint64
	Version       uint16
	UMID          [64]byte
	Reserved      [190]byte
}

type bextRecord struct {
	Description         [256]byte
	Originator          [32]byte
	OriginatorReference [32]byte
	OriginationDate     [10]byte
	OriginationTime     [8]byte
	TimeReference       uint64
	Version             uint16
	UMID                [64]byte
	Reserved            [190]byte
}

// FormatFloat renders v as the shortest decimal that reads back to the same
// value, always with a fractional part or an exponent.
func FormatFloat(v float64) string {
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Description is the bext description of a scene export.
func Description(sceneName string, roomSize float64) string {
	return fmt.Sprintf("SCENE=%s;ROOM_SIZE=%s\n", sceneName, FormatFloat(roomSize))
}

// NewBext fills a record for a scene export made at now. The time reference
// is the sample offset of frameStart.
func NewBext(sceneName string, roomSize float64, originator string, frameStart, sampleRate, fps int, now time.Time) (*Bext, error) {
	if frameStart < 0 {
		return nil, fmt.Errorf("%w: frame %d", ErrNegativeOffset, frameStart)
	}
	if fps <= 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d fps, %d Hz", ErrInvalidFormat, fps, sampleRate)
	}

	ref, err := uuid.NewV1()
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &Bext{
		Description:         Description(sceneName, roomSize),
		Originator:          originator,
		OriginatorReference: hex.EncodeToString(ref.Bytes()),
		OriginationDate:     now.Format("2006-01-02"),
		OriginationTime:     now.Format("15:04:05"),
		TimeReference:       uint64(int64(frameStart) * int64(sampleRate) / int64(fps)),
	}, nil
}

// MarshalBinary packs the record. Text fields longer than their slot are
// cut.
func (b *Bext) MarshalBinary() ([]byte, error) {
	var rec bextRecord
	copy(rec.Description[:], b.Description)
	copy(rec.Originator[:], b.Originator)
	copy(rec.OriginatorReference[:], b.OriginatorReference)
	copy(rec.OriginationDate[:], b.OriginationDate)
	copy(rec.OriginationTime[:], b.OriginationTime)
	rec.TimeReference = b.TimeReference
	rec.Version = b.Version
	rec.UMID = b.UMID
	rec.Reserved = b.Reserved

	var buf bytes.Buffer
	buf.Grow(BextSize)
	if err := binary.Write(&buf, binary.LittleEndian, &rec); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return buf.Bytes(), nil
}

func text(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// UnmarshalBinary reads a record; bytes past the fixed part, such as a
// coding history, are ignored.
func (b *Bext) UnmarshalBinary(data []byte) error {
	if len(data) < BextSize {
		return fmt.Errorf("%w: %d bytes", ErrBextSize, len(data))
	}

	var rec bextRecord
	if err := binary.Read(bytes.NewReader(data[:BextSize]), binary.LittleEndian, &rec); err != nil {
		return fmt.Errorf("%w", err)
	}

	*b = Bext{
		Description:         text(rec.Description[:]),
		Originator:          text(rec.Originator[:]),
		OriginatorReference: text(rec.OriginatorReference[:]),
		OriginationDate:     text(rec.OriginationDate[:]),
		OriginationTime:     text(rec.OriginationTime[:]),
		TimeReference:       rec.TimeReference,
		Version:             rec.Version,
		UMID:                rec.UMID,
		Reserved:            rec.Reserved,
	}

	return nil
}
