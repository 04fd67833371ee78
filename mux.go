// SPDX-License-Identifier: EPL-2.0

package soundobjects

import (
	"context"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/soundobjects/bwf"
	"github.com/ik5/soundobjects/mix"
)

const muxBlock = 1024

func readFull(r *mix.Reader, dst []int) error {
	for len(dst) > 0 {
		n, err := r.Read(dst)
		dst = dst[n:]
		if errors.Is(err, io.EOF) && len(dst) > 0 {
			return io.ErrUnexpectedEOF
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}
	return nil
}

// mux interleaves the first length samples of every reader, one channel
// per reader in order, and writes them in blocks.
func mux(ctx context.Context, readers []*mix.Reader, w *bwf.Writer, length int) error {
	channels := len(readers)
	in := make([]int, muxBlock)
	data := make([]int, muxBlock*channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: readers[0].SampleRate()},
		SourceBitDepth: readers[0].BitDepth(),
	}

	for done := 0; done < length; {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w", err)
		}

		n := min(muxBlock, length-done)
		for ch, r := range readers {
			if err := readFull(r, in[:n]); err != nil {
				return fmt.Errorf("channel %d at frame %d: %w", ch+1, done, err)
			}
			for i, v := range in[:n] {
				data[i*channels+ch] = v
			}
		}

		buf.Data = data[:n*channels]
		if err := w.Write(buf); err != nil {
			return err
		}
		done += n
	}

	return nil
}
