// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile         = errors.New("not a WAV file")
	ErrUnsupportedFormat  = errors.New("only integer PCM WAV is supported")
	ErrPCMNotFound        = errors.New("WAV data chunk not found")
	ErrInvalidWriteParams = errors.New("invalid WAV write parameters")
)
