// SPDX-License-Identifier: EPL-2.0

// Package ingest converts uploaded audio files into the canonical device
// artifact: a 48 kHz, stereo, 32-bit float WAV.
//
// The format is detected from the file content first and the extension
// second. Whatever the source rate and layout, the decoded audio is
// rendered offline through audio.Resampler and audio.StereoMixer and
// fitted to ceil(frames*48000/rate) frames.
//
//	eng := ingest.New(ingest.WithLogger(log), ingest.WithWorkers(4))
//	res, err := eng.Process(ctx, ingest.RawFile{Name: "kick.wav", Data: data})
//	var decErr *ingest.DecodeError
//	if errors.As(err, &decErr) {
//	    // skip this file
//	}
//
// The engine never touches project state, so abandoning a call midway is
// always safe.
package ingest
