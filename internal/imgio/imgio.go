// Package imgio converts uploaded files to and from the base64 payloads the
// provider API expects.
package imgio

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"server/internal/domain"
)

// File is an in-memory uploaded asset.
type File struct {
	Name string
	MIME string
	Data []byte
}

// Encode reads r fully and returns the std-encoded base64 payload together
// with the detected mime type. Read failures surface as domain.ErrIO.
func Encode(r io.Reader) (string, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", "", fmt.Errorf("%w: read upload: %v", domain.ErrIO, err)
	}
	b64, mime := EncodeBytes(data)
	return b64, mime, nil
}

// EncodeBytes encodes in-memory data and detects its mime type.
func EncodeBytes(data []byte) (b64, mime string) {
	return base64.StdEncoding.EncodeToString(data), http.DetectContentType(data)
}

// Decode reconstructs a file-like object from a base64 payload. A data-URL
// prefix is tolerated and stripped. Malformed base64 surfaces the platform
// decoder error wrapped in domain.ErrIO.
func Decode(b64, filename, mime string) (*File, error) {
	data, err := base64.StdEncoding.DecodeString(StripDataURL(b64))
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %v", domain.ErrIO, err)
	}
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	return &File{Name: filename, MIME: mime, Data: data}, nil
}

// StripDataURL removes a "data:<mime>;base64," prefix when present.
func StripDataURL(b64 string) string {
	if !strings.HasPrefix(b64, "data:") {
		return b64
	}
	if idx := strings.Index(b64, ","); idx >= 0 {
		return b64[idx+1:]
	}
	return b64
}
