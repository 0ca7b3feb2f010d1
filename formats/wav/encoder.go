// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/sktapes/audio"
)

// Encode renders buf as the canonical device file: RIFF/WAVE, IEEE float,
// 32 bits, 2 channels, 48000 Hz, interleaved little-endian L,R frames.
//
// Callers pass 48kHz audio; the header always states the canonical rate.
// A mono buffer is written with its channel duplicated to both sides and
// only the first two channels of a wider buffer are kept.
func Encode(buf *audio.Buffer) []byte {
	frames := buf.Frames()
	samples := make([]float32, frames*Channels)

	if buf.Channels() > 0 {
		left := buf.Data[0]
		right := left
		if buf.Channels() > 1 {
			right = buf.Data[1]
		}
		for f := range frames {
			samples[2*f] = left[f]
			samples[2*f+1] = right[f]
		}
	}

	out := new(bytes.Buffer)
	out.Grow(HeaderSize + len(samples)*4)
	// writes to a bytes.Buffer do not fail
	_ = WriteFloat32(out, SampleRate, Channels, samples)
	return out.Bytes()
}

// WriteFloat32 writes interleaved float32 samples as an IEEE float WAV.
func WriteFloat32(w io.Writer, sampleRate, channels int, samples []float32) error {
	header := make([]byte, HeaderSize)
	putHeader(header, FormatIEEEFloat, sampleRate, channels, 32, len(samples)*4)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	const chunkSize = 8192
	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSize)*4)
	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		out := buf[:len(chunk)*4]

		for j, s := range chunk {
			binary.LittleEndian.PutUint32(out[j*4:j*4+4], math.Float32bits(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}
