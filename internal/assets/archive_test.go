package assets

import (
	"archive/zip"
	"bytes"
	"testing"
)

// makeZip builds an in-memory ZIP with the given name→content entries.
// Names ending in "/" become directory entries.
func makeZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry %q: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write entry %q: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestReadArchive(t *testing.T) {
	data := makeZip(t, map[string]string{
		"index.html":          "<html></html>",
		"static/":             "",
		"static/css/main.css": "body{}",
		"static/app.js":       "console.log(1)",
		"logo.unknownext":     "bytes",
	})

	entries, err := ReadArchive(data)
	if err != nil {
		t.Fatalf("ReadArchive: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4 (directories skipped)", len(entries))
	}

	byName := make(map[string]ArchiveEntry, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}

	wantTypes := map[string]string{
		"index.html":          "text/html",
		"static/css/main.css": "text/css",
		"static/app.js":       "application/javascript",
		"logo.unknownext":     "application/octet-stream",
	}
	for name, want := range wantTypes {
		entry, ok := byName[name]
		if !ok {
			t.Errorf("entry %q missing", name)
			continue
		}
		if entry.ContentType != want {
			t.Errorf("content type of %q = %q, want %q", name, entry.ContentType, want)
		}
	}

	cssEntry := byName["static/css/main.css"]
	got, err := cssEntry.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if string(got) != "body{}" {
		t.Errorf("entry content = %q, want %q", got, "body{}")
	}
}

func TestReadArchive_RejectsGarbage(t *testing.T) {
	if _, err := ReadArchive([]byte("not a zip file")); err == nil {
		t.Fatal("expected error for non-zip input")
	}
}
