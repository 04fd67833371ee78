// SPDX-License-Identifier: EPL-2.0

package adm

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ik5/soundobjects/geom"
	"github.com/ik5/soundobjects/trajectory"
)

func testScene() Scene {
	return Scene{
		Name:       "Test",
		Frames:     geom.FrameInterval{Start: 24, End: 72},
		FPS:        24,
		SampleRate: 48000,
		BitDepth:   24,
	}
}

func block(start, frames int, pos geom.Vec3) trajectory.Block {
	return trajectory.Block{Position: pos, StartFrame: start, Frames: frames, FPS: 24, Jump: true}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	objects := []Object{
		{Name: "bird", Blocks: []trajectory.Block{
			block(24, 12, geom.Vec3{X: 0.5, Y: 1}),
			block(36, 13, geom.Vec3{X: -0.25, Y: 1, Z: 0.125}),
		}},
		{Name: "creek", Blocks: []trajectory.Block{block(30, 43, geom.Vec3{Y: -1})}},
	}

	doc, chna, err := Build(testScene(), objects)
	if err != nil {
		t.Fatal(err)
	}
	afe := doc.Formats()

	if len(afe.Programmes) != 1 || afe.Programmes[0].ID != "APR_1001" || afe.Programmes[0].Name != "Test" {
		t.Errorf("programme = %+v", afe.Programmes)
	}
	if p := afe.Programmes[0]; p.Start != "00:00:01.00000" || p.End != "00:00:03.00000" {
		t.Errorf("programme timing = %s..%s", p.Start, p.End)
	}
	if len(afe.Contents) != 1 || afe.Contents[0].ID != "ACO_1001" || afe.Contents[0].Name != "Objects" {
		t.Errorf("content = %+v", afe.Contents)
	}
	if got := strings.Join(afe.Contents[0].ObjectIDs, ","); got != "AO_1001,AO_1002" {
		t.Errorf("content objects = %s", got)
	}

	o := afe.Objects[1]
	if o.ID != "AO_1002" || o.Name != "creek" || o.Start != "00:00:01.00000" || o.Duration != "00:00:02.00000" {
		t.Errorf("object = %+v", o)
	}
	if o.PackFormats[0] != "AP_00031002" || o.TrackUIDs[0] != "ATU_00000002" {
		t.Errorf("object refs = %v %v", o.PackFormats, o.TrackUIDs)
	}
	if ch := afe.ChannelFormats[1]; ch.ID != "AC_00031002" || ch.TypeLabel != "0003" || ch.TypeDefinition != "Objects" {
		t.Errorf("channel = %+v", ch)
	}
	if sf := afe.StreamFormats[0]; sf.ID != "AS_00031001" || sf.TrackFormat != "AT_00031001_01" || sf.ChannelFormat != "AC_00031001" {
		t.Errorf("stream = %+v", sf)
	}
	if tf := afe.TrackFormats[0]; tf.ID != "AT_00031001_01" || tf.StreamFormat != "AS_00031001" || tf.FormatDefinition != "PCM" {
		t.Errorf("track format = %+v", tf)
	}
	if uid := afe.TrackUIDs[0]; uid.UID != "ATU_00000001" || uid.SampleRate != 48000 || uid.BitDepth != 24 || uid.PackFormat != "AP_00031001" {
		t.Errorf("track uid = %+v", uid)
	}

	blocks := afe.ChannelFormats[0].Blocks
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if b := blocks[0]; b.ID != "AB_00031001_00000001" || b.RTime != "00:00:00.00000" || b.Duration != "00:00:00.50000" {
		t.Errorf("first block = %+v", b)
	}
	if b := blocks[1]; b.ID != "AB_00031001_00000002" || b.RTime != "00:00:00.50000" || b.Duration != "00:00:00.00013S00024" {
		t.Errorf("second block = %+v", b)
	}
	if z, ok := blocks[1].Position("Z"); !ok || z != 0.125 {
		t.Errorf("Z = %v, %v", z, ok)
	}
	jp := blocks[1].JumpPosition
	if jp == nil || jp.Flag != 1 || jp.InterpolationLength != seconds(big.NewRat(1, 48)) {
		t.Errorf("jump = %+v", jp)
	}
	if b := afe.ChannelFormats[1].Blocks[0]; b.RTime != "00:00:00.25000" {
		t.Errorf("creek rtime = %s", b.RTime)
	}

	if chna.NumTracks() != 2 || chna.Tracks[1].Index != 2 || chna.Tracks[1].UID != "ATU_00000002" {
		t.Errorf("chna = %+v", chna)
	}
}

func TestBuild_CutsBeforeSceneStart(t *testing.T) {
	t.Parallel()

	sc := testScene()
	sc.Frames = geom.FrameInterval{Start: 0, End: 48}
	objects := []Object{{Name: "early", Blocks: []trajectory.Block{
		block(-10, 4, geom.Vec3{X: 1}),
		block(-6, 12, geom.Vec3{X: 0.5}),
		block(6, 10, geom.Vec3{}),
	}}}

	doc, _, err := Build(sc, objects)
	if err != nil {
		t.Fatal(err)
	}

	blocks := doc.Formats().ChannelFormats[0].Blocks
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].RTime != "00:00:00.00000" || blocks[0].Duration != "00:00:00.25000" {
		t.Errorf("first block = %s + %s", blocks[0].RTime, blocks[0].Duration)
	}
	if blocks[0].ID != "AB_00031001_00000001" || blocks[1].ID != "AB_00031001_00000002" {
		t.Errorf("block ids = %s %s", blocks[0].ID, blocks[1].ID)
	}
}

func TestBuild_CutsAfterSceneEnd(t *testing.T) {
	t.Parallel()

	sc := testScene()
	sc.Frames = geom.FrameInterval{Start: 0, End: 47}
	objects := []Object{{Name: "late", Blocks: []trajectory.Block{
		block(0, 42, geom.Vec3{X: 1}),
		block(42, 12, geom.Vec3{X: 0.5}),
		block(54, 4, geom.Vec3{}),
	}}}

	doc, _, err := Build(sc, objects)
	if err != nil {
		t.Fatal(err)
	}

	blocks := doc.Formats().ChannelFormats[0].Blocks
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].Duration != "00:00:01.75000" {
		t.Errorf("first block duration = %s", blocks[0].Duration)
	}
	if blocks[1].RTime != "00:00:01.75000" || blocks[1].Duration != "00:00:00.25000" {
		t.Errorf("last block = %s + %s", blocks[1].RTime, blocks[1].Duration)
	}
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	one := []Object{{Name: "a", Blocks: []trajectory.Block{block(24, 1, geom.Vec3{})}}}
	noFPS := testScene()
	noFPS.FPS = 0
	negative := testScene()
	negative.Frames.Start = -24

	tests := []struct {
		name    string
		scene   Scene
		objects []Object
		want    error
	}{
		{name: "no objects", scene: testScene(), want: ErrNoObjects},
		{name: "zero fps", scene: noFPS, objects: one, want: ErrInvalidFPS},
		{name: "negative start", scene: negative, objects: one, want: ErrNegativeTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, _, err := Build(tt.scene, tt.objects); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMarshalParse(t *testing.T) {
	t.Parallel()

	doc, _, err := Build(testScene(), []Object{
		{Name: "bird & co", Blocks: []trajectory.Block{block(24, 49, geom.Vec3{X: 0.5, Y: 0.75})}},
	})
	if err != nil {
		t.Fatal(err)
	}

	data, err := doc.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<ebuCoreMain xmlns="urn:ebu:metadata-schema:ebuCore_2014"`,
		`audioObjectName="bird &amp; co"`,
		`<position coordinate="X">0.5</position>`,
		`<cartesian>1</cartesian>`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("document lacks %s", want)
		}
	}

	back, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	afe := back.Formats()
	if len(afe.Objects) != 1 || afe.Objects[0].Name != "bird & co" {
		t.Fatalf("objects = %+v", afe.Objects)
	}
	if y, _ := afe.ChannelFormats[0].Blocks[0].Position("Y"); y != 0.75 {
		t.Errorf("Y = %v", y)
	}
	if afe.TrackUIDs[0].SampleRate != 48000 {
		t.Errorf("track uid = %+v", afe.TrackUIDs[0])
	}
}
