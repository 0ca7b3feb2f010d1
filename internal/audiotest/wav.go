// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
)

// PCM16WAV builds a canonical 44-byte-header 16-bit PCM WAV file from
// interleaved samples.
func PCM16WAV(sampleRate, channels int, samples []int16) []byte {
	buf := new(bytes.Buffer)
	writeHeader(buf, 1, sampleRate, channels, 16, len(samples)*2)
	for _, s := range samples {
		binary.Write(buf, binary.LittleEndian, s)
	}
	return buf.Bytes()
}

// Float32WAV builds an IEEE float WAV file from interleaved samples.
func Float32WAV(sampleRate, channels int, samples []float32) []byte {
	buf := new(bytes.Buffer)
	writeHeader(buf, 3, sampleRate, channels, 32, len(samples)*4)
	for _, s := range samples {
		binary.Write(buf, binary.LittleEndian, math.Float32bits(s))
	}
	return buf.Bytes()
}

// SineWAV16 renders a sine tone of the given length as 16-bit PCM WAV.
func SineWAV16(sampleRate, channels, frames int, frequency float64) []byte {
	wave := Sine(sampleRate, frequency, 0.5)
	samples := make([]int16, 0, frames*channels)
	for f := range frames {
		for c := range channels {
			samples = append(samples, int16(wave(f, c)*32767))
		}
	}
	return PCM16WAV(sampleRate, channels, samples)
}

func writeHeader(buf *bytes.Buffer, format uint16, sampleRate, channels, bits, dataSize int) {
	blockAlign := channels * bits / 8

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, format)
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(bits))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataSize))
}
