// SPDX-License-Identifier: EPL-2.0

package scene

import "errors"

var (
	ErrNoActivation  = errors.New("scene: source has no scheduled activation")
	ErrUnknownSource = errors.New("scene: unknown source")
	ErrRender        = errors.New("scene: mixdown render failed")
	ErrInvalidScene  = errors.New("scene: invalid scene document")
)
