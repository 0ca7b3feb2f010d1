// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrUnsupportedFormat    = errors.New("unsupported WAV sample format")
	ErrUnsupportedBitDepth  = errors.New("unsupported WAV bit depth")
	ErrMissingDataChunk     = errors.New("WAV file has no data chunk")
)
