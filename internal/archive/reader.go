package archive

import (
	"archive/zip"
	"io"
)

// Reader opens an atlas container (a zip archive of named entries) and
// offers named-entry random-access reads without extracting to disk,
// the same zip.OpenReader/zip.File-by-name pattern the teacher uses for
// its own chart containers.
type Reader struct {
	zr    *zip.ReadCloser
	byName map[string]*zip.File
}

// OpenReader verifies path is a well-formed zip archive and indexes its
// entries by name. It loads no entry contents.
func OpenReader(path string) (*Reader, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &ErrCorruptArchive{Reason: err.Error()}
	}
	byName := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		byName[f.Name] = f
	}
	return &Reader{zr: zr, byName: byName}, nil
}

// Load returns the raw bytes of the named entry. Fails with
// ErrEntryMissing if absent, ErrCorruptArchive on a read error.
func (r *Reader) Load(name string) ([]byte, error) {
	f, ok := r.byName[name]
	if !ok {
		return nil, &ErrEntryMissing{Name: name}
	}
	rc, err := f.Open()
	if err != nil {
		return nil, &ErrCorruptArchive{Name: name, Reason: err.Error()}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &ErrCorruptArchive{Name: name, Reason: err.Error()}
	}
	return data, nil
}

// Has reports whether the named entry exists in the archive.
func (r *Reader) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Close releases the underlying zip file handle.
func (r *Reader) Close() error {
	return r.zr.Close()
}
