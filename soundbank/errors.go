// SPDX-License-Identifier: EPL-2.0

package soundbank

import "errors"

var (
	ErrEmpty      = errors.New("soundbank: no sounds match the prefix")
	ErrInvalidFPS = errors.New("soundbank: fps must be positive")
	ErrSilent     = errors.New("soundbank: sound has no samples")
)
