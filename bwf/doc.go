// SPDX-License-Identifier: EPL-2.0

// Package bwf writes and reads the broadcast wave files produced by an
// export.
//
// Writer lays down interleaved integer PCM through the go-audio encoder and
// appends extra chunks (bext, axml, chna) after the data chunk, each padded
// to an even size, before the RIFF sizes are patched. ReadChunks walks a
// file with the go-audio riff parser and returns every chunk except the
// sample data.
//
// The bext chunk is the fixed 602 byte EBU Tech 3285 record.
package bwf
