package zip

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestArchiveAssets(t *testing.T) {
	data := ArchiveAssets([]Asset{
		{Filename: "headline.png", MIME: "image/png", Data: []byte("png-1")},
		{Filename: "clip.mp4", MIME: "video/mp4", Data: []byte("mp4-1")},
	})
	if len(data) == 0 {
		t.Fatal("archive is empty")
	}
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(reader.File) != 2 {
		t.Fatalf("file count = %d, want 2", len(reader.File))
	}
	contents := map[string]string{}
	for _, f := range reader.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		body, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		contents[f.Name] = string(body)
	}
	if contents["headline.png"] != "png-1" || contents["clip.mp4"] != "mp4-1" {
		t.Fatalf("contents = %v", contents)
	}
}

func TestArchiveAssetsEmpty(t *testing.T) {
	data := ArchiveAssets(nil)
	if _, err := zip.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
		t.Fatalf("empty archive should still be readable: %v", err)
	}
}
