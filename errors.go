// SPDX-License-Identifier: EPL-2.0

package soundobjects

import "errors"

var (
	ErrInvalidOptions = errors.New("soundobjects: invalid export options")
	ErrLocked         = errors.New("soundobjects: output is locked by another export")
	ErrFormatMismatch = errors.New("soundobjects: object mixdowns differ in format")
)
