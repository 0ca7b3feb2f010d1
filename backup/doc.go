// SPDX-License-Identifier: EPL-2.0

// Package backup saves a whole project, history included, as one ZIP:
//
//	project.json       manifest of files, versions and tapes
//	<versionId>.wav    one canonical WAV per version
//
// Versions reference their audio by blobRef instead of embedding it.
// Loading tolerates damage: versions whose blob is missing are dropped,
// then the project is reconciled.
package backup
