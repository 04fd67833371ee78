// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ik5/soundobjects/geom"
	"github.com/ik5/soundobjects/internal/logger"
	"github.com/ik5/soundobjects/internal/scenetest"
	"github.com/ik5/soundobjects/partition"
	"github.com/ik5/soundobjects/scene"
	"github.com/ik5/soundobjects/utils"
)

// newHost has ten frames at 10 fps and 1000 Hz, so one frame is 100 samples.
func newHost() *scenetest.Host {
	return scenetest.New("Forest Walk", geom.FrameInterval{Start: 0, End: 9}, 10, 1000,
		&scenetest.Source{Name: "bird", Intervals: scenetest.Interval(0, 3), Level: 0.5},
		&scenetest.Source{Name: "creek", Intervals: scenetest.Interval(2, 9), Level: 0.25},
		&scenetest.Source{Name: "wind", Intervals: scenetest.Interval(5, 9), Level: 0.125},
	)
}

func group(names ...string) partition.Group {
	var g partition.Group
	for _, n := range names {
		g.Members = append(g.Members, partition.Candidate{Name: n})
	}
	return g
}

func readAll(t *testing.T, r *Reader) []int {
	t.Helper()

	var out []int
	buf := make([]int, 64)
	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
	}
}

func TestCleanName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{in: "Scene", want: "Scene"},
		{in: "Forest Walk", want: "Forest_Walk"},
		{in: "Speaker.001", want: "Speaker_001"},
		{in: "a/b\\c:d", want: "a_b_c_d"},
		{in: "café", want: "caf_"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		if got := CleanName(tt.in); got != tt.want {
			t.Errorf("CleanName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if got := FileName("Forest Walk", "bird.001"); got != "Forest_Walk_bird_001.wav" {
		t.Errorf("FileName() = %q", got)
	}
}

func TestObjectMix_Lifecycle(t *testing.T) {
	t.Parallel()

	h := newHost()
	path := filepath.Join(t.TempDir(), FileName(h.Name(), "bird"))
	m, err := New(h, group("bird", "wind"), path, 24, logger.Nop())
	require.NoError(t, err)
	require.Equal(t, Unrendered, m.State())
	require.Equal(t, "bird", m.Name())

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)

	got, err := m.Path(context.Background())
	require.NoError(t, err)
	require.Equal(t, path, got)
	require.Equal(t, Rendered, m.State())
	require.FileExists(t, path)

	require.Len(t, h.Renders, 1)
	require.Equal(t, []string{"bird", "wind"}, h.Renders[0].Audible)
	require.False(t, h.AnyMuted(), "mute flags not restored")

	r, err := m.Reader(context.Background())
	require.NoError(t, err)
	require.Equal(t, Reading, m.State())
	require.Equal(t, 1000, r.Len())
	require.Equal(t, 1000, r.SampleRate())
	require.Equal(t, 24, r.BitDepth())

	again, err := m.Reader(context.Background())
	require.NoError(t, err)
	require.Same(t, r, again)
	require.Len(t, h.Renders, 1, "rendered more than once")

	samples := readAll(t, r)
	require.Len(t, samples, 1000)
	half, eighth := utils.FloatToPCM(0.5, 24), utils.FloatToPCM(0.125, 24)
	require.Equal(t, half, samples[0])
	require.Equal(t, half, samples[399])
	require.Equal(t, 0, samples[400])
	require.Equal(t, 0, samples[499])
	require.Equal(t, eighth, samples[500])
	require.Equal(t, eighth, samples[999])

	require.NoError(t, m.Dispose())
	require.Equal(t, Disposed, m.State())
	require.NoFileExists(t, path)
	require.NoError(t, m.Dispose())

	_, err = m.Path(context.Background())
	require.ErrorIs(t, err, ErrDisposed)
}

func TestObjectMix_KeepsEarlierMuteFlags(t *testing.T) {
	t.Parallel()

	h := newHost()
	require.NoError(t, h.SetMuted("wind", true))

	m, err := New(h, group("wind"), filepath.Join(t.TempDir(), "wind.wav"), 16, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Render(context.Background()))
	t.Cleanup(func() { m.Dispose() })

	require.Equal(t, []string{"wind"}, h.Renders[0].Audible)
	require.True(t, h.Muted("wind"))
	require.False(t, h.Muted("bird"))
	require.False(t, h.Muted("creek"))
}

func TestObjectMix_RenderFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("bounce failed")
	h := newHost()
	h.RenderErr = boom

	m, err := New(h, group("creek"), filepath.Join(t.TempDir(), "creek.wav"), 24, logger.Nop())
	require.NoError(t, err)

	_, err = m.Reader(context.Background())
	require.ErrorIs(t, err, scene.ErrRender)
	require.ErrorIs(t, err, boom)
	require.Equal(t, Unrendered, m.State())
	require.False(t, h.AnyMuted(), "mute flags not restored after failure")

	require.NoError(t, m.Dispose())
	require.Equal(t, Disposed, m.State())
}

func TestObjectMix_Dispose(t *testing.T) {
	t.Parallel()

	t.Run("never rendered", func(t *testing.T) {
		t.Parallel()

		m, err := New(newHost(), group("bird"), filepath.Join(t.TempDir(), "bird.wav"), 24, logger.Nop())
		require.NoError(t, err)
		require.NoError(t, m.Dispose())
		require.NoError(t, m.Dispose())
	})

	t.Run("file already gone", func(t *testing.T) {
		t.Parallel()

		h := newHost()
		path := filepath.Join(t.TempDir(), "bird.wav")
		m, err := New(h, group("bird"), path, 24, logger.Nop())
		require.NoError(t, err)
		require.NoError(t, m.Render(context.Background()))
		require.NoError(t, os.Remove(path))

		require.NoError(t, m.Dispose())
		require.Equal(t, Disposed, m.State())
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		h := newHost()
		m, err := New(h, group("bird"), filepath.Join(t.TempDir(), "bird.wav"), 24, logger.Nop())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.ErrorIs(t, m.Render(ctx), context.Canceled)
		require.Empty(t, h.Renders)
	})
}

func TestObjectMix_RefusesExistingFile(t *testing.T) {
	t.Parallel()

	h := newHost()
	path := filepath.Join(t.TempDir(), "bird.wav")
	require.NoError(t, os.WriteFile(path, []byte("user data"), 0o644))

	m, err := New(h, group("bird"), path, 24, logger.Nop())
	require.NoError(t, err)

	require.ErrorIs(t, m.Render(context.Background()), ErrPathExists)
	require.Empty(t, h.Renders)
	require.NoError(t, m.Dispose())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "user data", string(got))
}

func TestNew_EmptyGroup(t *testing.T) {
	t.Parallel()

	_, err := New(newHost(), partition.Group{}, "x.wav", 24, nil)
	require.ErrorIs(t, err, ErrEmptyGroup)
}
