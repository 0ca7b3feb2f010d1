// SPDX-License-Identifier: EPL-2.0

// Package wav is the WAV codec of the module.
//
// # Canonical output
//
// Every stored version and every exported file is a 48000 Hz, 2 channel,
// 32-bit IEEE float RIFF/WAVE file with a 44 byte header:
//
//	data := wav.Encode(buf) // buf is an *audio.Buffer at 48kHz
//
// Header fields follow the usual formulas: ChunkSize = 36 + data length,
// ByteRate = 48000 * 2 * 4, BlockAlign = 8. Mono buffers are written with
// the channel duplicated, not with a silent right side.
//
// # Decoding
//
// Decoder accepts integer PCM (8, 16, 24, 32 bit, decoded through
// github.com/go-audio/wav) and IEEE float (32 and 64 bit) files of any
// rate and channel count:
//
//	src, err := wav.Decoder{}.Decode(r)
//	buf, err := audio.ReadAll(src, 4096)
//
// ParseHeader exposes the fmt and data chunk fields without decoding, and
// Sniff recognises a RIFF/WAVE prefix.
//
// # Writing other layouts
//
// WriteFloat32 and WritePCM16 stream interleaved samples at any rate and
// channel count. They write in 8K sample chunks to bound allocations.
package wav
