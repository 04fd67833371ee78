// SPDX-License-Identifier: EPL-2.0

// Package spot places sound clips on scene sources.
//
// NewEnvelope scans a source's distance to the camera and records when it comes
// within range, when it is closest and when it leaves. Place turns a trigger
// mode, the envelope and the clip's peak and length into the frame window the
// clip plays over:
//
//   - START_FRAME: the clip starts with the scene
//   - MIN_DISTANCE: the clip starts when the source is closest to the camera
//   - RANDOM: uniformly inside the scene range
//   - RANDOM_GAUSSIAN: normally distributed around the middle of the scene
//
// With peak sync the start moves back so the clip's loudest frame lands on
// the trigger. Starts never go below frame 0.
//
// Spot does all of this for the sources of a FileScene, drawing clips from a
// soundbank.Bank.
package spot
