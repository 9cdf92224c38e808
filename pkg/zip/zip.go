package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

// Asset is one exported image destined for the archive.
type Asset struct {
	Filename string
	MIME     string
	Data     []byte
}

// ArchiveAssets bundles rendered exports into a single zip payload. File
// extensions are derived from the mime type when the name has none.
func ArchiveAssets(assets []Asset) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, asset := range assets {
		w, err := zw.Create(withExtension(asset.Filename, asset.MIME))
		if err != nil {
			return nil, fmt.Errorf("zip: create entry %s: %w", asset.Filename, err)
		}
		if _, err := w.Write(asset.Data); err != nil {
			return nil, fmt.Errorf("zip: write entry %s: %w", asset.Filename, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

func withExtension(name, mime string) string {
	if strings.Contains(name, ".") {
		return name
	}
	switch mime {
	case "image/jpeg":
		return name + ".jpg"
	default:
		return name + ".png"
	}
}
