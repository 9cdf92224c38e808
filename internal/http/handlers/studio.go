package handlers

import (
	"net/http"
	"strings"

	"server/internal/domain"
	"server/internal/studio"
)

// StudioComposite stages an uploaded product photo in a generated scene.
// Multipart fields: image (file), background_text, transparent, aspect_ratio.
func (a *App) StudioComposite(w http.ResponseWriter, r *http.Request) {
	if !a.parseUpload(w, r) {
		return
	}
	image, err := a.formImage(r, "image")
	if err != nil {
		a.taskError(w, r, err)
		return
	}
	transparent := formBool(r, "transparent")
	backgroundText := strings.TrimSpace(r.FormValue("background_text"))
	if !transparent && backgroundText == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "background_text is required for non-transparent output")
		return
	}
	aspect := domain.NormalizeAspectRatio(r.FormValue("aspect_ratio"))

	res, err := a.Studio.CompositeProduct(r.Context(), image, backgroundText, transparent, aspect)
	if err != nil {
		a.taskError(w, r, err)
		return
	}
	a.imageResult(w, r, res)
}

// StudioCompositeBackground composites the product onto a user-supplied
// background image. Multipart fields: image (file), background (file),
// copy_product_style, sources (0..5 files).
func (a *App) StudioCompositeBackground(w http.ResponseWriter, r *http.Request) {
	if !a.parseUpload(w, r) {
		return
	}
	image, err := a.formImage(r, "image")
	if err != nil {
		a.taskError(w, r, err)
		return
	}
	background, err := a.formImage(r, "background")
	if err != nil {
		a.taskError(w, r, err)
		return
	}
	sources, err := a.formImages(r, "sources", 5)
	if err != nil {
		a.taskError(w, r, err)
		return
	}

	res, err := a.Studio.CompositeOntoBackground(r.Context(), image, background, studio.CompositeOptions{
		CopyProductStyle:  formBool(r, "copy_product_style"),
		SourceStyleImages: sources,
	})
	if err != nil {
		a.taskError(w, r, err)
		return
	}
	a.imageResult(w, r, res)
}
