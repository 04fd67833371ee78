// SPDX-License-Identifier: EPL-2.0

package mix

import "errors"

var (
	ErrDisposed   = errors.New("mix: object mix already disposed")
	ErrNotMono    = errors.New("mix: mixdown is not mono")
	ErrNotPCM     = errors.New("mix: mixdown is not integer PCM")
	ErrEmptyGroup = errors.New("mix: object group has no members")
	ErrShortRead  = errors.New("mix: mixdown ended before its declared length")
	ErrPathExists = errors.New("mix: mixdown path already exists")
)
