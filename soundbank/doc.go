// SPDX-License-Identifier: EPL-2.0

// Package soundbank picks clips for spotting from a directory of audio
// files.
//
// A Bank lists the decodable files under a directory whose names start with
// a prefix. Info reports where a clip peaks and how long it runs, both in
// scene frames, so that a clip can be lined up with an event in the scene:
//
//	bank := soundbank.New("sfx", "door_", nil)
//	path, _ := bank.Random(rng)
//	info, _ := bank.Info(path, 24)
//	// info.PeakFrame frames into the clip is its loudest sample.
//
// Info results are cached per path and frame rate for the life of the Bank.
package soundbank
