// SPDX-License-Identifier: EPL-2.0

package project

import (
	"errors"
	"fmt"
)

var (
	ErrFileNotFound    = errors.New("file not found")
	ErrVersionNotFound = errors.New("version not found")
	ErrInvalidLocation = errors.New("invalid tape location")
	ErrNotPlacedHere   = errors.New("file is not in that slot")
	ErrInvalidName     = errors.New("display name must not be empty")
	ErrEmptyArtifact   = errors.New("edit has no audio")
)

// CapacityError is returned when a tape has no room and the operation does
// not allow dropping files.
type CapacityError struct {
	Color Color
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("tape %s has no free slot", e.Color)
}

// Integrity problems found and repaired by Reconcile. Loaders such as
// package backup report IntegrityMissingArtifact for versions they drop.
const (
	IntegrityDanglingSlot    = "dangling slot"
	IntegrityDanglingCurrent = "dangling current version"
	IntegrityNoVersions      = "file without versions"
	IntegrityMissingArtifact = "missing artifact"
)

// IntegrityError describes one inconsistency that Reconcile repaired.
// It is logged, never returned by an operation.
type IntegrityError struct {
	Kind      string
	FileID    string
	VersionID string
	Location  Location
}

func (e *IntegrityError) Error() string {
	switch e.Kind {
	case IntegrityDanglingSlot:
		return fmt.Sprintf("%s: slot %s references missing file %s", e.Kind, e.Location, e.FileID)
	case IntegrityDanglingCurrent:
		return fmt.Sprintf("%s: file %s points at missing version %s", e.Kind, e.FileID, e.VersionID)
	case IntegrityMissingArtifact:
		return fmt.Sprintf("%s: version %s of file %s has no audio", e.Kind, e.VersionID, e.FileID)
	default:
		return fmt.Sprintf("%s: file %s", e.Kind, e.FileID)
	}
}
