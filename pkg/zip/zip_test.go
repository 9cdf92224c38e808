package zip

import (
	stdzip "archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestArchiveAssets(t *testing.T) {
	assets := []Asset{
		{Filename: "front", MIME: "image/png", Data: []byte("png-bytes")},
		{Filename: "side", MIME: "image/jpeg", Data: []byte("jpg-bytes")},
		{Filename: "named.png", MIME: "image/jpeg", Data: []byte("keep-name")},
	}
	payload, err := ArchiveAssets(assets)
	if err != nil {
		t.Fatalf("ArchiveAssets returned error: %v", err)
	}

	reader, err := stdzip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		t.Fatalf("payload is not a zip archive: %v", err)
	}
	wantNames := []string{"front.png", "side.jpg", "named.png"}
	if len(reader.File) != len(wantNames) {
		t.Fatalf("archive holds %d entries, want %d", len(reader.File), len(wantNames))
	}
	for i, f := range reader.File {
		if f.Name != wantNames[i] {
			t.Fatalf("entry %d = %q, want %q", i, f.Name, wantNames[i])
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %q: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("read entry %q: %v", f.Name, err)
		}
		if !bytes.Equal(data, assets[i].Data) {
			t.Fatalf("entry %q payload mismatch", f.Name)
		}
	}
}

func TestArchiveAssetsEmpty(t *testing.T) {
	payload, err := ArchiveAssets(nil)
	if err != nil {
		t.Fatalf("ArchiveAssets returned error: %v", err)
	}
	reader, err := stdzip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		t.Fatalf("empty archive must still be valid: %v", err)
	}
	if len(reader.File) != 0 {
		t.Fatalf("archive holds %d entries, want none", len(reader.File))
	}
}
