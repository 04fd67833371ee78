// SPDX-License-Identifier: EPL-2.0

package soundobjects

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/require"

	"github.com/ik5/soundobjects/adm"
	"github.com/ik5/soundobjects/bwf"
	"github.com/ik5/soundobjects/geom"
	"github.com/ik5/soundobjects/internal/logger"
	"github.com/ik5/soundobjects/internal/metrics"
	"github.com/ik5/soundobjects/internal/scenetest"
	"github.com/ik5/soundobjects/scene"
	"github.com/ik5/soundobjects/utils"
)

var stamp = time.Date(2026, 10, 18, 14, 30, 0, 0, time.UTC)

// walkScene runs 31 frames at 10 fps and 1000 Hz, 100 samples per frame.
// s0 and s2 never overlap, s1 overlaps s0.
func walkScene() *scenetest.Host {
	at := func(v geom.Vec3) func(int) geom.Vec3 { return func(int) geom.Vec3 { return v } }

	return scenetest.New("Walk", geom.FrameInterval{Start: 0, End: 30}, 10, 1000,
		&scenetest.Source{Name: "s0", Intervals: scenetest.Interval(0, 10), Position: at(geom.Vec3{Y: 1}), Level: 0.5},
		&scenetest.Source{Name: "s1", Intervals: scenetest.Interval(5, 15), Position: at(geom.Vec3{Y: 2}), Level: 0.25},
		&scenetest.Source{Name: "s2", Intervals: scenetest.Interval(20, 30), Position: at(geom.Vec3{X: 3, Y: 3}), Level: 0.125},
	)
}

func testOptions(t *testing.T) Options {
	t.Helper()

	opts := DefaultOptions(filepath.Join(t.TempDir(), "walk.wav"))
	opts.Logger = logger.Nop()
	opts.Now = func() time.Time { return stamp }
	return opts
}

func readOutput(t *testing.T, path string) (*bwf.Info, *adm.EbuCoreMain, [][]int) {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	info, err := bwf.ReadChunks(f)
	require.NoError(t, err)

	axml, ok := info.Chunk(bwf.AxmlID)
	require.True(t, ok)
	doc, err := adm.Parse(bwf.XML(axml))
	require.NoError(t, err)

	_, err = f.Seek(0, 0)
	require.NoError(t, err)
	pcm, err := bwf.ReadPCM(f)
	require.NoError(t, err)

	channels := make([][]int, pcm.Format.NumChannels)
	for i, v := range pcm.Data {
		ch := i % len(channels)
		channels[ch] = append(channels[ch], v)
	}

	return info, doc, channels
}

func TestExport(t *testing.T) {
	t.Parallel()

	h := walkScene()
	opts := testOptions(t)

	rep, err := Export(context.Background(), h, opts)
	require.NoError(t, err)

	require.Equal(t, []ObjectReport{
		{Name: "s0", Members: []string{"s0", "s2"}, Blocks: 2},
		{Name: "s1", Members: []string{"s1"}, Blocks: 1},
	}, rep.Objects)
	require.Empty(t, rep.Overflow)
	require.Empty(t, rep.Skipped)
	require.Equal(t, 3100, rep.Frames)
	require.Equal(t, 1000, rep.SampleRate)
	require.Equal(t, 24, rep.BitDepth)

	require.False(t, h.AnyMuted(), "mute flags not restored")
	require.Equal(t, 0, h.CurrentFrame(), "cursor not restored")
	require.Len(t, h.Renders, 2)

	entries, err := os.ReadDir(filepath.Dir(opts.Output))
	require.NoError(t, err)
	for _, e := range entries {
		require.Contains(t, []string{"walk.wav", "walk.wav.lock"}, e.Name(), "left behind")
	}

	info, doc, channels := readOutput(t, opts.Output)

	b, err := info.Bext()
	require.NoError(t, err)
	require.Equal(t, "SCENE=Walk;ROOM_SIZE=1.0\n", b.Description)
	require.Equal(t, DefaultOriginator, b.Originator)
	require.Equal(t, "2026-10-18", b.OriginationDate)
	require.Equal(t, "14:30:00", b.OriginationTime)
	require.Zero(t, b.TimeReference)

	chnaData, ok := info.Chunk(bwf.ChnaID)
	require.True(t, ok)
	var chna adm.Chna
	require.NoError(t, chna.UnmarshalBinary(chnaData))
	require.Equal(t, 2, chna.NumTracks())

	afe := doc.Formats()
	require.Len(t, afe.Objects, 2)
	require.Equal(t, "s0", afe.Objects[0].Name)
	require.Equal(t, "s1", afe.Objects[1].Name)
	require.Equal(t, "00:00:03.00000", afe.Objects[0].Duration)
	blocks := afe.ChannelFormats[0].Blocks
	require.Len(t, blocks, 2)
	require.Equal(t, "00:00:02.00000", blocks[0].Duration)
	require.Equal(t, "00:00:02.00000", blocks[1].RTime)
	require.Equal(t, "00:00:01.10000", blocks[1].Duration)
	x, _ := blocks[1].Position("X")
	require.InDelta(t, 1, x, 1e-12)

	require.Len(t, channels, 2)
	require.Len(t, channels[0], 3100)
	half, quarter, eighth := utils.FloatToPCM(0.5, 24), utils.FloatToPCM(0.25, 24), utils.FloatToPCM(0.125, 24)
	require.Equal(t, half, channels[0][0])
	require.Equal(t, half, channels[0][1099])
	require.Zero(t, channels[0][1100])
	require.Equal(t, eighth, channels[0][2000])
	require.Equal(t, eighth, channels[0][3099])
	require.Zero(t, channels[1][499])
	require.Equal(t, quarter, channels[1][500])
	require.Equal(t, quarter, channels[1][1599])
	require.Zero(t, channels[1][1600])
}

func TestExport_Overflow(t *testing.T) {
	t.Parallel()

	opts := testOptions(t)
	opts.MaxObjects = 1

	rep, err := Export(context.Background(), walkScene(), opts)
	require.NoError(t, err)
	require.Len(t, rep.Objects, 1)
	require.Equal(t, [][]string{{"s1"}}, rep.Overflow)

	_, doc, channels := readOutput(t, opts.Output)
	require.Len(t, channels, 1)
	require.Len(t, doc.Formats().Objects, 1)
}

func TestExport_NoSources(t *testing.T) {
	t.Parallel()

	h := scenetest.New("Empty", geom.FrameInterval{Start: 0, End: 10}, 24, 48000,
		&scenetest.Source{Name: "silent"})
	opts := testOptions(t)

	rep, err := Export(context.Background(), h, opts)
	require.NoError(t, err)
	require.Empty(t, rep.Objects)
	require.Equal(t, []string{"silent"}, rep.Skipped)
	require.NoFileExists(t, opts.Output)
	require.Empty(t, h.Renders)
}

func TestExport_OutputNamedLikeMixdown(t *testing.T) {
	t.Parallel()

	opts := testOptions(t)
	opts.Output = filepath.Join(filepath.Dir(opts.Output), "Walk_s1.wav")

	rep, err := Export(context.Background(), walkScene(), opts)
	require.NoError(t, err)
	require.FileExists(t, opts.Output)

	_, _, channels := readOutput(t, opts.Output)
	require.Len(t, channels, 2)
	require.Len(t, channels[0], rep.Frames)
}

func TestExport_KeepsUnrelatedFiles(t *testing.T) {
	t.Parallel()

	opts := testOptions(t)
	dir := filepath.Dir(opts.Output)
	user := filepath.Join(dir, "Walk_s0.wav")
	require.NoError(t, os.WriteFile(user, []byte("user data"), 0o644))

	_, err := Export(context.Background(), walkScene(), opts)
	require.NoError(t, err)

	got, err := os.ReadFile(user)
	require.NoError(t, err)
	require.Equal(t, "user data", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	require.ElementsMatch(t, []string{"Walk_s0.wav", "walk.wav", "walk.wav.lock"}, names)
}

func TestExport_RenderFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("mixdown crashed")
	h := walkScene()
	h.RenderErr = boom
	opts := testOptions(t)

	_, err := Export(context.Background(), h, opts)
	require.ErrorIs(t, err, scene.ErrRender)
	require.ErrorIs(t, err, boom)
	require.False(t, h.AnyMuted())
	require.NoFileExists(t, opts.Output)

	entries, err := os.ReadDir(filepath.Dir(opts.Output))
	require.NoError(t, err)
	for _, e := range entries {
		require.False(t, strings.HasSuffix(e.Name(), ".wav"), "%s left behind", e.Name())
	}
}

func TestExport_TruncatesToShortestTrack(t *testing.T) {
	t.Parallel()

	h := walkScene()
	h.Length = func(audible []string) int {
		if audible[0] == "s1" {
			return 2500
		}
		return 3100
	}
	opts := testOptions(t)

	rep, err := Export(context.Background(), h, opts)
	require.NoError(t, err)
	require.Equal(t, 2500, rep.Frames)

	_, _, channels := readOutput(t, opts.Output)
	require.Len(t, channels[0], 2500)
	require.Len(t, channels[1], 2500)
}

func TestExport_Locked(t *testing.T) {
	t.Parallel()

	opts := testOptions(t)
	other := flock.New(opts.Output + ".lock")
	locked, err := other.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	t.Cleanup(func() { other.Unlock() })

	_, err = Export(context.Background(), walkScene(), opts)
	require.ErrorIs(t, err, ErrLocked)
}

func TestExport_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := walkScene()
	_, err := Export(ctx, h, testOptions(t))
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, h.Renders)
}

func TestExport_Metrics(t *testing.T) {
	t.Parallel()

	opts := testOptions(t)
	opts.Metrics = metrics.New()

	_, err := Export(context.Background(), walkScene(), opts)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "export.prom")
	require.NoError(t, opts.Metrics.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `soundobjects_exports_total{result="ok"} 1`)
	require.Contains(t, string(data), "soundobjects_mixdowns_total 2")
	require.Contains(t, string(data), "soundobjects_samples_written_total 3100")
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	base := DefaultOptions("out.wav")
	tests := []struct {
		name   string
		modify func(*Options)
		ok     bool
	}{
		{name: "defaults", modify: func(*Options) {}, ok: true},
		{name: "no output", modify: func(o *Options) { o.Output = "" }},
		{name: "tiny room", modify: func(o *Options) { o.RoomSize = 0.0001 }},
		{name: "smallest room", modify: func(o *Options) { o.RoomSize = MinRoomSize }, ok: true},
		{name: "negative objects", modify: func(o *Options) { o.MaxObjects = -1 }},
		{name: "no objects", modify: func(o *Options) { o.MaxObjects = 0 }, ok: true},
		{name: "channel limit", modify: func(o *Options) { o.MaxObjects = MaxObjects + 1 }},
		{name: "negative tolerance", modify: func(o *Options) { o.Tolerance = -0.1 }},
		{name: "8 bit", modify: func(o *Options) { o.BitDepth = 8 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o := base
			tt.modify(&o)
			err := o.Validate()
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidOptions)
		})
	}
}
