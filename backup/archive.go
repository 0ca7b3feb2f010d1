// SPDX-License-Identifier: EPL-2.0

package backup

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/ik5/sktapes/project"
)

// Write stores st as a backup archive. The manifest comes first, then the
// blobs in name order.
func Write(w io.Writer, st *project.State) error {
	m, blobs := NewManifest(st, time.Now())

	doc, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	zw := zip.NewWriter(w)
	if err := writeEntry(zw, ManifestName, zip.Deflate, doc); err != nil {
		return err
	}

	refs := make([]string, 0, len(blobs))
	for ref := range blobs {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	for _, ref := range refs {
		if err := writeEntry(zw, ref, zip.Store, blobs[ref]); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing backup: %w", err)
	}
	return nil
}

func writeEntry(zw *zip.Writer, name string, method uint16, data []byte) error {
	fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
	if err != nil {
		return fmt.Errorf("adding %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// WriteFile writes a backup of st to name.
func WriteFile(name string, st *project.State) error {
	var buf bytes.Buffer
	if err := Write(&buf, st); err != nil {
		return err
	}
	if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("saving backup: %w", err)
	}
	return nil
}

// Read loads a backup archive. The returned repairs list what was dropped
// or fixed on the way in; they are not errors.
func Read(r io.ReaderAt, size int64) (*project.State, []*project.IntegrityError, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, nil, fmt.Errorf("opening backup: %w", err)
	}

	var m *Manifest
	blobs := make(map[string][]byte)
	for _, f := range zr.File {
		name := path.Clean(f.Name)
		switch {
		case name == ManifestName:
			data, err := readZipFile(f)
			if err != nil {
				return nil, nil, err
			}
			m = new(Manifest)
			if err := json.Unmarshal(data, m); err != nil {
				return nil, nil, fmt.Errorf("decoding %s: %w", ManifestName, err)
			}
		case strings.HasSuffix(strings.ToLower(name), blobExt):
			data, err := readZipFile(f)
			if err != nil {
				return nil, nil, err
			}
			blobs[name] = data
		}
	}

	if m == nil {
		return nil, nil, ErrMissingManifest
	}
	if m.Format != FormatVersion {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, m.Format)
	}

	st, repairs := FromManifest(m, blobs)
	return st, repairs, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Name, err)
	}
	return data, nil
}

// ReadFile loads the backup stored in name.
func ReadFile(name string) (*project.State, []*project.IntegrityError, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, nil, fmt.Errorf("loading backup: %w", err)
	}
	return Read(bytes.NewReader(data), int64(len(data)))
}
