// SPDX-License-Identifier: EPL-2.0

// Package sktapes prepares audio samples for a six-tape hardware looper.
//
// Every file the device plays must be a 48 kHz, 2 channel, 32-bit IEEE
// float WAV. The root package exposes the rendering step that gets any
// decoded source into that shape; the sub-packages carry the rest of the
// pipeline:
//
//   - audio: Source/Decoder interfaces, Buffer, Resampler, StereoMixer
//   - formats/wav, formats/mp3, formats/vorbis, formats/aiff: decoders
//   - dsp: trim, fades, crossfade loop and peak normalization
//   - ingest: format detection and conversion of raw uploads
//   - project: tapes, slots, version history and the assignment engine
//   - export, backup: device folder layout and project archives
//
// # Quick Start
//
//	src, _ := wav.Decoder{}.Decode(file)
//	buf, err := sktapes.Canonicalize(src, 4096)
//	if err != nil {
//	    return err
//	}
//	artifact := wav.Encode(buf) // ready for SK/<letter>/<slot>.WAV
//
// Canonicalize reads the whole source before rendering, so the output
// length is known up front: ceil(frames * 48000 / rate).
package sktapes
