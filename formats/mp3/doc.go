// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG Layer III audio with github.com/hajimehoshi/go-mp3.
//
// The returned audio.Source is always stereo at the stream's own sample
// rate, with float32 samples in [-1, 1]. Ingestion resamples it to the
// device format:
//
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	buf, err := audio.ReadAll(src, 4096)
//
// Sniff recognises an ID3v2 tag or a bare frame sync so files can be routed
// by content when the extension is missing or wrong.
package mp3
