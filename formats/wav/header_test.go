// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/ik5/sktapes/internal/audiotest"
)

func TestParseHeader_Canonical(t *testing.T) {
	t.Parallel()

	data := audiotest.PCM16WAV(44100, 2, []int16{1, 2, 3, 4, 5, 6})
	h, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}

	if h.AudioFormat != FormatPCM || h.NumChannels != 2 || h.SampleRate != 44100 || h.BitsPerSample != 16 {
		t.Errorf("header = %+v", h)
	}
	if h.DataSize != 12 || h.Frames() != 3 {
		t.Errorf("DataSize = %d, Frames() = %d, want 12 / 3", h.DataSize, h.Frames())
	}
}

func TestParseHeader_SkipsUnknownChunks(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(0))
	buf.WriteString("WAVE")

	// odd sized chunk exercises the pad byte
	buf.WriteString("LIST")
	binary.Write(buf, binary.LittleEndian, uint32(3))
	buf.Write([]byte{1, 2, 3, 0})

	canonical := audiotest.Float32WAV(48000, 2, []float32{0.5, -0.5})
	buf.Write(canonical[12:])

	h, err := ParseHeader(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	if h.AudioFormat != FormatIEEEFloat || h.Frames() != 1 {
		t.Errorf("header = %+v", h)
	}
}

func TestParseHeader_Extensible(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(0))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(40))
	binary.Write(buf, binary.LittleEndian, uint16(formatExtensible))
	binary.Write(buf, binary.LittleEndian, uint16(2))
	binary.Write(buf, binary.LittleEndian, uint32(48000))
	binary.Write(buf, binary.LittleEndian, uint32(384000))
	binary.Write(buf, binary.LittleEndian, uint16(8))
	binary.Write(buf, binary.LittleEndian, uint16(32))
	binary.Write(buf, binary.LittleEndian, uint16(22))
	binary.Write(buf, binary.LittleEndian, uint16(32))
	binary.Write(buf, binary.LittleEndian, uint32(3))
	binary.Write(buf, binary.LittleEndian, uint16(FormatIEEEFloat))
	buf.Write(make([]byte, 14))
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(0))

	h, err := ParseHeader(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	if h.AudioFormat != FormatIEEEFloat {
		t.Errorf("AudioFormat = %d, want %d", h.AudioFormat, FormatIEEEFloat)
	}
}

func TestParseHeader_Errors(t *testing.T) {
	t.Parallel()

	noData := audiotest.PCM16WAV(8000, 1, nil)[:36]
	noFmt := append([]byte("RIFF\x00\x00\x00\x00WAVEdata\x00\x00\x00\x00"), 0)
	shortFmt := []byte("RIFF\x00\x00\x00\x00WAVEfmt \x04\x00\x00\x00\x01\x00\x01\x00")

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrNotWavFile},
		{"not riff", []byte("NOT A WAV FILE DATA"), ErrNotWavFile},
		{"not wave", []byte("RIFF\x24\x00\x00\x00NOPE"), ErrNotWavFile},
		{"missing data", noData, ErrMissingDataChunk},
		{"missing fmt", noFmt, ErrUnsupportedWavLayout},
		{"short fmt", shortFmt, ErrUnsupportedWavLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseHeader(tt.data); err != tt.want {
				t.Errorf("ParseHeader() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSniff(t *testing.T) {
	t.Parallel()

	if !Sniff(audiotest.PCM16WAV(8000, 1, []int16{0})) {
		t.Error("Sniff() = false for a WAV file")
	}
	for _, b := range [][]byte{nil, []byte("RIFF"), []byte("OggS\x00\x02\x00\x00\x00\x00\x00\x00"), []byte("RIFF\x00\x00\x00\x00AVI ")} {
		if Sniff(b) {
			t.Errorf("Sniff(%q) = true", b)
		}
	}
}
