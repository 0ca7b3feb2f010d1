// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF audio with github.com/go-audio/aiff.
//
// Integer samples of 8, 16, 24 and 32 bits are scaled to float32 in
// [-1, 1). go-audio needs to seek between chunks, so a reader that is not
// an io.ReadSeeker is buffered in memory first.
//
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrUnsupportedBitDepth) {
//	    // compressed or odd-width file
//	}
package aiff
