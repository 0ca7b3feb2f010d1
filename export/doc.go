// SPDX-License-Identifier: EPL-2.0

// Package export lays a project out the way the looper reads it from its
// card:
//
//	SK/B/1.WAV ... SK/Y/6.WAV   one file per occupied slot
//	SK/EXTRAS/<name>.WAV        every file not placed on a tape
//
// Each file is the current version of its record, already in the canonical
// 48 kHz stereo float format. Layout builds the entries; WriteDir and
// WriteZip put them on disk or into an archive.
package export
