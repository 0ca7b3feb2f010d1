// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming and in-memory audio primitives the
// rest of the module is built on.
//
//   - Source / Decoder interfaces and a Registry of decoders by format and extension
//   - Buffer, fully decoded planar float32 audio, and BufferSource to stream it back
//   - Resampler for sample rate conversion (Catmull-Rom cubic interpolation)
//   - StereoMixer to remix any channel layout to two channels
//   - ReadAll to drain a Source into a Buffer
//
// # Offline rendering
//
// Ingestion renders decoded audio to the canonical rate and layout by
// chaining a Resampler and a StereoMixer over a BufferSource:
//
//	src := decoded.Source()
//	chain := audio.NewStereoMixer(audio.NewResampler(src, 48000))
//	out, err := audio.ReadAll(chain, 4096)
//
// # Sample Format
//
// Samples are float32, nominally in [-1.0, 1.0]. Values outside that range
// are preserved; only 16-bit output clamps.
//
// # Error Handling
//
// Sources return io.EOF when no more data is available, possibly together
// with the final samples:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
