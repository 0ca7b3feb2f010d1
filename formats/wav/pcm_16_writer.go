// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WritePCM16 writes interleaved int16 samples as a 16-bit PCM WAV.
func WritePCM16(w io.Writer, sampleRate, channels int, samples []int16) error {
	header := make([]byte, HeaderSize)
	putHeader(header, FormatPCM, sampleRate, channels, 16, len(samples)*2)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	const chunkSize = 8192
	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSize)*2)
	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		out := buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:j*2+2], uint16(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}
