// SPDX-License-Identifier: EPL-2.0

package export

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CheckEnvironment verifies that root can be created and written to.
func CheckEnvironment(root string) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return &UnsupportedEnvironmentError{Root: root, Err: err}
	}

	tmp, err := os.CreateTemp(root, ".sktapes-check-*")
	if err != nil {
		return &UnsupportedEnvironmentError{Root: root, Err: err}
	}
	name := tmp.Name()
	_, werr := tmp.Write([]byte{0})
	cerr := tmp.Close()
	os.Remove(name)

	if werr != nil {
		return &UnsupportedEnvironmentError{Root: root, Err: werr}
	}
	if cerr != nil {
		return &UnsupportedEnvironmentError{Root: root, Err: cerr}
	}
	return nil
}

// WriteDir writes entries below root after replacing any existing SK
// folder there. Nothing is written when CheckEnvironment fails.
func WriteDir(root string, entries []Entry) error {
	if err := CheckEnvironment(root); err != nil {
		return err
	}

	if err := os.RemoveAll(filepath.Join(root, RootDir)); err != nil {
		return fmt.Errorf("clearing previous export: %w", err)
	}

	for _, e := range entries {
		dst := filepath.Join(root, filepath.FromSlash(e.Path))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
		}
		if err := os.WriteFile(dst, e.Data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", e.Path, err)
		}
	}

	return nil
}

// WriteZip streams entries into a ZIP archive, stored uncompressed.
func WriteZip(w io.Writer, entries []Entry) error {
	zw := zip.NewWriter(w)

	for _, e := range entries {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: e.Path, Method: zip.Store})
		if err != nil {
			return fmt.Errorf("adding %s: %w", e.Path, err)
		}
		if _, err := fw.Write(e.Data); err != nil {
			return fmt.Errorf("writing %s: %w", e.Path, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing archive: %w", err)
	}
	return nil
}
