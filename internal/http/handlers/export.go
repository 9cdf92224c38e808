package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"server/internal/domain"
	"server/internal/export"
	"server/pkg/zip"
)

type exportRequest struct {
	Image       string `json:"image"`
	Filename    string `json:"filename,omitempty"`
	Quality     string `json:"quality"`
	AspectRatio string `json:"aspect_ratio"`
	Format      string `json:"format"`
}

// ExportRender rasterizes a generated image at the requested quality tier
// and serves it as a file download.
func (a *App) ExportRender(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Image) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "image payload is required")
		return
	}
	format := export.NormalizeFormat(req.Format)
	data, err := export.Render(req.Image, export.Options{
		Quality: export.NormalizeQuality(req.Quality),
		Aspect:  domain.NormalizeAspectRatio(req.AspectRatio),
		Format:  format,
	})
	if err != nil {
		a.taskError(w, r, err)
		return
	}

	filename := exportFilename(req.Filename, format)
	w.Header().Set("Content-Type", export.MIME(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type exportZipRequest struct {
	Items []struct {
		Image    string `json:"image"`
		Filename string `json:"filename,omitempty"`
	} `json:"items"`
	Quality     string `json:"quality"`
	AspectRatio string `json:"aspect_ratio"`
	Format      string `json:"format"`
}

// ExportZip renders several images with shared settings and bundles them
// into one archive download.
func (a *App) ExportZip(w http.ResponseWriter, r *http.Request) {
	var req exportZipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Items) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "at least one image is required")
		return
	}
	format := export.NormalizeFormat(req.Format)
	opts := export.Options{
		Quality: export.NormalizeQuality(req.Quality),
		Aspect:  domain.NormalizeAspectRatio(req.AspectRatio),
		Format:  format,
	}

	assets := make([]zip.Asset, 0, len(req.Items))
	for i, item := range req.Items {
		data, err := export.Render(item.Image, opts)
		if err != nil {
			a.taskError(w, r, err)
			return
		}
		name := strings.TrimSpace(item.Filename)
		if name == "" {
			name = fmt.Sprintf("export-%02d", i+1)
		}
		assets = append(assets, zip.Asset{Filename: name, MIME: export.MIME(format), Data: data})
	}
	archive, err := zip.ArchiveAssets(assets)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=studio-export-%s.zip", uuid.NewString()[:8]))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

func exportFilename(requested string, format export.Format) string {
	name := strings.TrimSpace(requested)
	if name == "" {
		name = "studio-export-" + uuid.NewString()[:8]
	}
	ext := ".png"
	if format == export.FormatJPEG {
		ext = ".jpg"
	}
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}
	return name
}
