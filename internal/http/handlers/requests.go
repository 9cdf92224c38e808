package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"server/internal/domain"
	"server/internal/imgio"
)

// formImage reads a single required file field from a multipart request.
func (a *App) formImage(r *http.Request, field string) (imgio.File, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return imgio.File{}, fmt.Errorf("%w: missing file field %q", domain.ErrIO, field)
	}
	defer func() {
		_ = file.Close()
	}()
	return readUpload(file, header)
}

// formImages reads an optional repeated file field, capped at max entries.
func (a *App) formImages(r *http.Request, field string, max int) ([]imgio.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) > max {
		return nil, fmt.Errorf("%w: at most %d %q files allowed, got %d", domain.ErrInvalidSelection, max, field, len(headers))
	}
	files := make([]imgio.File, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open upload %q: %v", domain.ErrIO, header.Filename, err)
		}
		upload, err := readUpload(f, header)
		_ = f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, upload)
	}
	return files, nil
}

func readUpload(f multipart.File, header *multipart.FileHeader) (imgio.File, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return imgio.File{}, fmt.Errorf("%w: read upload %q: %v", domain.ErrIO, header.Filename, err)
	}
	mime := header.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		_, mime = imgio.EncodeBytes(data)
	}
	return imgio.File{Name: header.Filename, MIME: mime, Data: data}, nil
}

func formBool(r *http.Request, field string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(r.FormValue(field)))
	return err == nil && v
}

func (a *App) parseUpload(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseMultipartForm(a.Config.MaxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return false
	}
	return true
}
