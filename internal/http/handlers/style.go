package handlers

import (
	"net/http"

	"server/internal/studio"
)

// StyleCopy transfers photographic style from reference shots to a target.
// Multipart fields: sources (1..5 files), target (file), copy_product_style,
// copy_background_style, transparent, prompt.
func (a *App) StyleCopy(w http.ResponseWriter, r *http.Request) {
	if !a.parseUpload(w, r) {
		return
	}
	target, err := a.formImage(r, "target")
	if err != nil {
		a.taskError(w, r, err)
		return
	}
	sources, err := a.formImages(r, "sources", 5)
	if err != nil {
		a.taskError(w, r, err)
		return
	}

	res, err := a.Studio.CopyStyle(r.Context(), sources, target, studio.CopyStyleOptions{
		CopyProductStyle:    formBool(r, "copy_product_style"),
		CopyBackgroundStyle: formBool(r, "copy_background_style"),
		Transparent:         formBool(r, "transparent"),
		Prompt:              r.FormValue("prompt"),
	})
	if err != nil {
		a.taskError(w, r, err)
		return
	}
	a.imageResult(w, r, res)
}

// StyleBackground generates a fresh background blending the style of the
// reference shots. Multipart fields: sources (1..5 files), instructions.
func (a *App) StyleBackground(w http.ResponseWriter, r *http.Request) {
	if !a.parseUpload(w, r) {
		return
	}
	sources, err := a.formImages(r, "sources", 5)
	if err != nil {
		a.taskError(w, r, err)
		return
	}

	res, err := a.Studio.GenerateStyledBackground(r.Context(), sources, r.FormValue("instructions"))
	if err != nil {
		a.taskError(w, r, err)
		return
	}
	a.imageResult(w, r, res)
}
