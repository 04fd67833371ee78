// SPDX-License-Identifier: EPL-2.0

package adm

import "errors"

var (
	ErrNegativeTime = errors.New("adm: negative time")
	ErrInvalidTime  = errors.New("adm: malformed time")
	ErrNoObjects    = errors.New("adm: document has no objects")
	ErrInvalidFPS   = errors.New("adm: frame rate must be positive")
	ErrTooManyItems = errors.New("adm: too many objects")
	ErrInvalidChna  = errors.New("adm: malformed chna chunk")
)
