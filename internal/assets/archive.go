package assets

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

// ArchiveEntry is one file inside an uploaded ZIP bundle.
type ArchiveEntry struct {
	Name        string
	ContentType string
	file        *zip.File
}

// Data decompresses and returns the entry's content.
func (e *ArchiveEntry) Data() ([]byte, error) {
	rc, err := e.file.Open()
	if err != nil {
		return nil, fmt.Errorf("open zip entry %q: %w", e.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read zip entry %q: %w", e.Name, err)
	}
	return data, nil
}

// ReadArchive parses raw ZIP bytes and returns its file entries with derived
// content types. Directory entries are skipped. Contents are decompressed
// lazily through Data, so concurrent uploaders read independently.
func ReadArchive(data []byte) ([]ArchiveEntry, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip archive: %w", err)
	}

	entries := make([]ArchiveEntry, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, ArchiveEntry{
			Name:        f.Name,
			ContentType: ContentTypeByName(f.Name),
			file:        f,
		})
	}
	return entries, nil
}
