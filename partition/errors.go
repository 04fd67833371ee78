// SPDX-License-Identifier: EPL-2.0

package partition

import "errors"

var (
	ErrNegativeMax = errors.New("partition: max groups must not be negative")
	ErrEmptyScene  = errors.New("partition: scene frame range is empty")
)
