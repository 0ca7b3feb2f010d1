// SPDX-License-Identifier: EPL-2.0

package backup

import "errors"

var (
	ErrMissingManifest    = errors.New("backup has no " + ManifestName)
	ErrUnsupportedVersion = errors.New("unsupported backup format version")
)
