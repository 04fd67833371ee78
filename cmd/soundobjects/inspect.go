// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ik5/soundobjects/adm"
	"github.com/ik5/soundobjects/bwf"
	"github.com/ik5/soundobjects/utils"
)

func inspectCmd(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("inspect", "<file.wav>", stderr)
	peaks := fs.Bool("peaks", true, "Decode the audio and print the peak of every channel")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, "file")
	if err != nil {
		return err
	}

	f, err := os.Open(pos[0])
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer f.Close()

	info, err := bwf.ReadChunks(f)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s\n", pos[0])
	for _, c := range info.Chunks {
		fmt.Fprintf(stdout, "  chunk %s %d bytes\n", c.ID, len(c.Data))
	}
	fmt.Fprintf(stdout, "  chunk data %d bytes\n", info.DataSize)

	if _, ok := info.Chunk(bwf.BextID); ok {
		b, err := info.Bext()
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "bext\n  description: %q\n  originator: %s\n  reference: %s\n  date: %s %s\n  time reference: %d\n",
			b.Description, b.Originator, b.OriginatorReference, b.OriginationDate, b.OriginationTime, b.TimeReference)
	}

	if data, ok := info.Chunk(bwf.ChnaID); ok {
		var chna adm.Chna
		if err := chna.UnmarshalBinary(data); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "chna %d tracks\n", chna.NumTracks())
		for _, t := range chna.Tracks {
			fmt.Fprintf(stdout, "  %d %s %s %s\n", t.Index, t.UID, t.TrackFormat, t.PackFormat)
		}
	}

	if data, ok := info.Chunk(bwf.AxmlID); ok {
		doc, err := adm.Parse(bwf.XML(data))
		if err != nil {
			return err
		}
		afe := doc.Formats()
		fmt.Fprintf(stdout, "adm %d objects\n", len(afe.Objects))
		for i, o := range afe.Objects {
			blocks := 0
			if i < len(afe.ChannelFormats) {
				blocks = len(afe.ChannelFormats[i].Blocks)
			}
			fmt.Fprintf(stdout, "  %s %-20s start=%s duration=%s blocks=%d\n", o.ID, o.Name, o.Start, o.Duration, blocks)
		}
	}

	if !*peaks {
		return nil
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}
	pcm, err := bwf.ReadPCM(f)
	if err != nil {
		return err
	}

	channels := pcm.Format.NumChannels
	peak := make([]int, channels)
	for i, v := range pcm.Data {
		peak[i%channels] = max(peak[i%channels], v, -v)
	}
	fmt.Fprintf(stdout, "audio %d channels, %d frames at %d Hz, %d bit\n",
		channels, len(pcm.Data)/channels, pcm.Format.SampleRate, pcm.SourceBitDepth)
	for ch, p := range peak {
		fmt.Fprintf(stdout, "  channel %d peak %.4f\n", ch+1, utils.PCMToFloat(p, pcm.SourceBitDepth))
	}

	return nil
}
