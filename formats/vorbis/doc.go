// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio with github.com/jfreymuth/oggvorbis.
//
// The source keeps the stream's native rate and channel layout and only
// ever returns whole frames. Sniff checks for the "OggS" capture pattern.
package vorbis
