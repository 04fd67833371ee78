// SPDX-License-Identifier: EPL-2.0

package adm

import (
	"encoding/xml"
	"fmt"
)

const (
	// Namespace of the EBU Core document wrapping the ADM.
	Namespace = "urn:ebu:metadata-schema:ebuCore_2014"

	typeObjects    = "0003"
	typeDefObjects = "Objects"
	formatPCM      = "0001"
	formatDefPCM   = "PCM"
)

type EbuCoreMain struct {
	XMLName      xml.Name     `xml:"urn:ebu:metadata-schema:ebuCore_2014 ebuCoreMain"`
	Schema       string       `xml:"schema,attr,omitempty"`
	CoreMetadata CoreMetadata `xml:"coreMetadata"`
}

type CoreMetadata struct {
	Format Format `xml:"format"`
}

type Format struct {
	AudioFormatExtended AudioFormatExtended `xml:"audioFormatExtended"`
}

type AudioFormatExtended struct {
	Programmes     []Programme     `xml:"audioProgramme"`
	Contents       []Content       `xml:"audioContent"`
	Objects        []AudioObject   `xml:"audioObject"`
	PackFormats    []PackFormat    `xml:"audioPackFormat"`
	ChannelFormats []ChannelFormat `xml:"audioChannelFormat"`
	StreamFormats  []StreamFormat  `xml:"audioStreamFormat"`
	TrackFormats   []TrackFormat   `xml:"audioTrackFormat"`
	TrackUIDs      []TrackUID      `xml:"audioTrackUID"`
}

type Programme struct {
	ID         string   `xml:"audioProgrammeID,attr"`
	Name       string   `xml:"audioProgrammeName,attr"`
	Start      string   `xml:"start,attr,omitempty"`
	End        string   `xml:"end,attr,omitempty"`
	ContentIDs []string `xml:"audioContentIDRef"`
}

type Content struct {
	ID        string   `xml:"audioContentID,attr"`
	Name      string   `xml:"audioContentName,attr"`
	ObjectIDs []string `xml:"audioObjectIDRef"`
}

type AudioObject struct {
	ID          string   `xml:"audioObjectID,attr"`
	Name        string   `xml:"audioObjectName,attr"`
	Start       string   `xml:"start,attr,omitempty"`
	Duration    string   `xml:"duration,attr,omitempty"`
	PackFormats []string `xml:"audioPackFormatIDRef"`
	TrackUIDs   []string `xml:"audioTrackUIDRef"`
}

type PackFormat struct {
	ID             string   `xml:"audioPackFormatID,attr"`
	Name           string   `xml:"audioPackFormatName,attr"`
	TypeLabel      string   `xml:"typeLabel,attr"`
	TypeDefinition string   `xml:"typeDefinition,attr"`
	ChannelFormats []string `xml:"audioChannelFormatIDRef"`
}

type ChannelFormat struct {
	ID             string        `xml:"audioChannelFormatID,attr"`
	Name           string        `xml:"audioChannelFormatName,attr"`
	TypeLabel      string        `xml:"typeLabel,attr"`
	TypeDefinition string        `xml:"typeDefinition,attr"`
	Blocks         []BlockFormat `xml:"audioBlockFormat"`
}

type BlockFormat struct {
	ID           string        `xml:"audioBlockFormatID,attr"`
	RTime        string        `xml:"rtime,attr"`
	Duration     string        `xml:"duration,attr"`
	Cartesian    int           `xml:"cartesian"`
	Positions    []Position    `xml:"position"`
	JumpPosition *JumpPosition `xml:"jumpPosition,omitempty"`
}

type Position struct {
	Coordinate string  `xml:"coordinate,attr"`
	Value      float64 `xml:",chardata"`
}

type JumpPosition struct {
	InterpolationLength string `xml:"interpolationLength,attr,omitempty"`
	Flag                int    `xml:",chardata"`
}

type StreamFormat struct {
	ID               string `xml:"audioStreamFormatID,attr"`
	Name             string `xml:"audioStreamFormatName,attr"`
	FormatLabel      string `xml:"formatLabel,attr"`
	FormatDefinition string `xml:"formatDefinition,attr"`
	ChannelFormat    string `xml:"audioChannelFormatIDRef"`
	TrackFormat      string `xml:"audioTrackFormatIDRef"`
}

type TrackFormat struct {
	ID               string `xml:"audioTrackFormatID,attr"`
	Name             string `xml:"audioTrackFormatName,attr"`
	FormatLabel      string `xml:"formatLabel,attr"`
	FormatDefinition string `xml:"formatDefinition,attr"`
	StreamFormat     string `xml:"audioStreamFormatIDRef"`
}

type TrackUID struct {
	UID         string `xml:"UID,attr"`
	SampleRate  int    `xml:"sampleRate,attr,omitempty"`
	BitDepth    int    `xml:"bitDepth,attr,omitempty"`
	TrackFormat string `xml:"audioTrackFormatIDRef"`
	PackFormat  string `xml:"audioPackFormatIDRef"`
}

// Position returns the value of one coordinate.
func (b BlockFormat) Position(coordinate string) (float64, bool) {
	for _, p := range b.Positions {
		if p.Coordinate == coordinate {
			return p.Value, true
		}
	}
	return 0, false
}

// Formats returns the extended format section.
func (d *EbuCoreMain) Formats() *AudioFormatExtended {
	return &d.CoreMetadata.Format.AudioFormatExtended
}

// Marshal returns the indented document with an XML declaration.
func (d *EbuCoreMain) Marshal() ([]byte, error) {
	out, err := xml.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// Parse reads an axml payload.
func Parse(data []byte) (*EbuCoreMain, error) {
	var d EbuCoreMain
	if err := xml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &d, nil
}
