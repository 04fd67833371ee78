// SPDX-License-Identifier: EPL-2.0

package soundobjects_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/soundobjects"
	"github.com/ik5/soundobjects/geom"
	"github.com/ik5/soundobjects/internal/logger"
	"github.com/ik5/soundobjects/internal/scenetest"
)

func Example() {
	dir, err := os.MkdirTemp("", "soundobjects")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	host := scenetest.New("Street", geom.FrameInterval{Start: 0, End: 47}, 24, 48000,
		&scenetest.Source{Name: "bell", Intervals: scenetest.Interval(0, 11), Level: 0.5},
		&scenetest.Source{Name: "car", Intervals: scenetest.Interval(6, 40), Level: 0.5},
		&scenetest.Source{Name: "dog", Intervals: scenetest.Interval(20, 30), Level: 0.5},
	)

	opts := soundobjects.DefaultOptions(filepath.Join(dir, "street.wav"))
	opts.Logger = logger.Nop()

	rep, err := soundobjects.Export(context.Background(), host, opts)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, o := range rep.Objects {
		fmt.Println(o.Name, o.Members)
	}
	fmt.Println(rep.Frames, "frames at", rep.SampleRate, "Hz")

	// Output:
	// bell [bell dog]
	// car [car]
	// 96000 frames at 48000 Hz
}
