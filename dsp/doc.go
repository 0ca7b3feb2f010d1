// SPDX-License-Identifier: EPL-2.0

// Package dsp holds the offline edits applied to decoded sample buffers:
// trim, linear fades, crossfade looping and peak normalization.
//
// Every function returns a new buffer or, where a guard applies, the input
// itself. Inputs are never written to. Sample rate and channel count are
// preserved.
package dsp
