// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// maxEmptyReads bounds how many (0, nil) reads ReadAll tolerates in a row;
// some decoders report an empty read before they report EOF.
const maxEmptyReads = 8

// ReadAll drains src into a Buffer. bufferSize is rounded down to a whole
// number of frames (at least one).
func ReadAll(src Source, bufferSize int) (*Buffer, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrNoChannels
	}

	size := (bufferSize / channels) * channels
	if size == 0 {
		size = channels
	}
	buf := make([]float32, size)

	var samples []float32
	empty := 0
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
			empty = 0
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				break
			}
		}
	}

	return FromInterleaved(src.SampleRate(), channels, samples), nil
}
