// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

var (
	// ErrNotVorbisFile is returned when the stream is not Ogg Vorbis.
	ErrNotVorbisFile = errors.New("not an Ogg Vorbis file")

	// ErrNoChannels is returned for a stream that reports zero channels.
	ErrNoChannels = errors.New("vorbis stream has no channels")
)
