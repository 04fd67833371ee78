// SPDX-License-Identifier: EPL-2.0

package adm

import (
	"fmt"
	"math/big"

	"github.com/ik5/soundobjects/geom"
	"github.com/ik5/soundobjects/trajectory"
)

const (
	firstID     = 0x1001
	lastID      = 0xffff
	contentName = "Objects"
)

// MaxObjects is the largest object count the ID scheme can number.
const MaxObjects = lastID - firstID + 1

// Scene holds what the document needs to know about the exported scene.
type Scene struct {
	Name       string
	Frames     geom.FrameInterval
	FPS        int
	SampleRate int
	BitDepth   int
}

func (sc Scene) at(frame int) *big.Rat {
	return big.NewRat(int64(frame), int64(sc.FPS))
}

// Object is one output track and its motion.
type Object struct {
	Name   string
	Blocks []trajectory.Block
}

type ids struct {
	object, pack, channel, stream, track, uid string
}

func idsFor(i int) ids {
	n := firstID + i
	return ids{
		object:  fmt.Sprintf("AO_%04X", n),
		pack:    fmt.Sprintf("AP_%s%04X", typeObjects, n),
		channel: fmt.Sprintf("AC_%s%04X", typeObjects, n),
		stream:  fmt.Sprintf("AS_%s%04X", typeObjects, n),
		track:   fmt.Sprintf("AT_%s%04X_01", typeObjects, n),
		uid:     fmt.Sprintf("ATU_%08X", i+1),
	}
}

// Build assembles the ADM document and chna table for objects, in order.
// Object i is carried by track i+1.
func Build(sc Scene, objects []Object) (*EbuCoreMain, *Chna, error) {
	if sc.FPS <= 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidFPS, sc.FPS)
	}
	if len(objects) == 0 {
		return nil, nil, ErrNoObjects
	}
	if len(objects) > MaxObjects {
		return nil, nil, fmt.Errorf("%w: %d", ErrTooManyItems, len(objects))
	}

	start, err := FormatTime(sc.at(sc.Frames.Start))
	if err != nil {
		return nil, nil, fmt.Errorf("programme start: %w", err)
	}
	end, err := FormatTime(sc.at(sc.Frames.End))
	if err != nil {
		return nil, nil, fmt.Errorf("programme end: %w", err)
	}
	duration, err := FormatTime(sc.at(sc.Frames.End - sc.Frames.Start))
	if err != nil {
		return nil, nil, fmt.Errorf("object duration: %w", err)
	}

	doc := &EbuCoreMain{Schema: "EBU_CORE_20140201.xsd"}
	afe := doc.Formats()
	content := Content{ID: fmt.Sprintf("ACO_%04X", firstID), Name: contentName}
	afe.Programmes = []Programme{{
		ID:         fmt.Sprintf("APR_%04X", firstID),
		Name:       sc.Name,
		Start:      start,
		End:        end,
		ContentIDs: []string{content.ID},
	}}

	chna := &Chna{}
	for i, obj := range objects {
		id := idsFor(i)

		blocks, err := blockFormats(sc, id.channel, obj.Blocks)
		if err != nil {
			return nil, nil, fmt.Errorf("object %s: %w", obj.Name, err)
		}

		content.ObjectIDs = append(content.ObjectIDs, id.object)
		afe.Objects = append(afe.Objects, AudioObject{
			ID:          id.object,
			Name:        obj.Name,
			Start:       start,
			Duration:    duration,
			PackFormats: []string{id.pack},
			TrackUIDs:   []string{id.uid},
		})
		afe.PackFormats = append(afe.PackFormats, PackFormat{
			ID:             id.pack,
			Name:           obj.Name,
			TypeLabel:      typeObjects,
			TypeDefinition: typeDefObjects,
			ChannelFormats: []string{id.channel},
		})
		afe.ChannelFormats = append(afe.ChannelFormats, ChannelFormat{
			ID:             id.channel,
			Name:           obj.Name,
			TypeLabel:      typeObjects,
			TypeDefinition: typeDefObjects,
			Blocks:         blocks,
		})
		afe.StreamFormats = append(afe.StreamFormats, StreamFormat{
			ID:               id.stream,
			Name:             "PCM_" + obj.Name,
			FormatLabel:      formatPCM,
			FormatDefinition: formatDefPCM,
			ChannelFormat:    id.channel,
			TrackFormat:      id.track,
		})
		afe.TrackFormats = append(afe.TrackFormats, TrackFormat{
			ID:               id.track,
			Name:             "PCM_" + obj.Name,
			FormatLabel:      formatPCM,
			FormatDefinition: formatDefPCM,
			StreamFormat:     id.stream,
		})
		afe.TrackUIDs = append(afe.TrackUIDs, TrackUID{
			UID:         id.uid,
			SampleRate:  sc.SampleRate,
			BitDepth:    sc.BitDepth,
			TrackFormat: id.track,
			PackFormat:  id.pack,
		})

		chna.Tracks = append(chna.Tracks, ChnaTrack{
			Index:       i + 1,
			UID:         id.uid,
			TrackFormat: id.track,
			PackFormat:  id.pack,
		})
	}
	afe.Contents = []Content{content}

	return doc, chna, nil
}

// blockFormats turns blocks into audioBlockFormats timed from the object
// start. Whatever lies outside the scene's frames is cut off.
func blockFormats(sc Scene, channelID string, blocks []trajectory.Block) ([]BlockFormat, error) {
	out := make([]BlockFormat, 0, len(blocks))
	end := sc.Frames.End + 1

	for _, b := range blocks {
		if b.EndFrame() <= sc.Frames.Start || b.StartFrame >= end {
			continue
		}
		if b.StartFrame < sc.Frames.Start {
			b.Frames = b.EndFrame() - sc.Frames.Start
			b.StartFrame = sc.Frames.Start
		}
		if b.EndFrame() > end {
			b.Frames = end - b.StartFrame
		}

		rtime, err := FormatTime(sc.at(b.StartFrame - sc.Frames.Start))
		if err != nil {
			return nil, err
		}
		duration, err := FormatTime(b.Duration())
		if err != nil {
			return nil, err
		}

		bf := BlockFormat{
			ID:        fmt.Sprintf("AB_%s_%08X", channelID[len("AC_"):], len(out)+1),
			RTime:     rtime,
			Duration:  duration,
			Cartesian: 1,
			Positions: []Position{
				{Coordinate: "X", Value: b.Position.X},
				{Coordinate: "Y", Value: b.Position.Y},
				{Coordinate: "Z", Value: b.Position.Z},
			},
		}
		if b.Jump {
			bf.JumpPosition = &JumpPosition{InterpolationLength: seconds(b.InterpolationLength()), Flag: 1}
		}
		out = append(out, bf)
	}

	return out, nil
}
