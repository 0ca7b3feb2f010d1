// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
)

// Canonical output format.
const (
	SampleRate    = 48000
	Channels      = 2
	BitsPerSample = 32
	HeaderSize    = 44
)

// WAVE format tags.
const (
	FormatPCM        = 1
	FormatIEEEFloat  = 3
	formatExtensible = 0xFFFE
)

// Header describes the fmt and data chunks of a WAV file.
type Header struct {
	ChunkSize     uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataSize      uint32

	dataOffset int
}

// ParseHeader walks the RIFF chunks of data until it has seen both "fmt "
// and "data". Unknown chunks are skipped. For WAVE_FORMAT_EXTENSIBLE the
// sub-format tag is reported as AudioFormat.
func ParseHeader(data []byte) (Header, error) {
	var h Header

	if len(data) < 12 || !bytes.Equal(data[:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return h, ErrNotWavFile
	}
	h.ChunkSize = binary.LittleEndian.Uint32(data[4:8])

	haveFmt, haveData := false, false
	pos := 12
	for pos+8 <= len(data) && !(haveFmt && haveData) {
		id := data[pos : pos+4]
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		end := min(body+size, len(data))

		switch string(id) {
		case "fmt ":
			if end-body < 16 {
				return h, ErrUnsupportedWavLayout
			}
			f := data[body:end]
			h.AudioFormat = binary.LittleEndian.Uint16(f[0:2])
			h.NumChannels = binary.LittleEndian.Uint16(f[2:4])
			h.SampleRate = binary.LittleEndian.Uint32(f[4:8])
			h.ByteRate = binary.LittleEndian.Uint32(f[8:12])
			h.BlockAlign = binary.LittleEndian.Uint16(f[12:14])
			h.BitsPerSample = binary.LittleEndian.Uint16(f[14:16])
			if h.AudioFormat == formatExtensible && len(f) >= 26 {
				h.AudioFormat = binary.LittleEndian.Uint16(f[24:26])
			}
			haveFmt = true
		case "data":
			h.dataOffset = body
			h.DataSize = uint32(end - body)
			haveData = true
		}

		// chunks are word aligned
		pos = body + size + size&1
	}

	if !haveFmt {
		return h, ErrUnsupportedWavLayout
	}
	if !haveData {
		return h, ErrMissingDataChunk
	}
	return h, nil
}

// Frames is the number of whole frames in the data chunk.
func (h Header) Frames() int {
	if h.BlockAlign == 0 {
		return 0
	}
	return int(h.DataSize) / int(h.BlockAlign)
}

// Sniff reports whether b starts like a RIFF/WAVE file.
func Sniff(b []byte) bool {
	return len(b) >= 12 && bytes.Equal(b[:4], []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WAVE"))
}

func putHeader(header []byte, format uint16, sampleRate, channels, bitsPerSample, dataSize int) {
	blockAlign := channels * bitsPerSample / 8

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], format)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], uint16(bitsPerSample))

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))
}
