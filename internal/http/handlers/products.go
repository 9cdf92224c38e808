package handlers

import (
	"net/http"
)

// ProductsDescribe extracts the structured seven-field product description
// from an uploaded photo. Multipart fields: image (file).
func (a *App) ProductsDescribe(w http.ResponseWriter, r *http.Request) {
	if !a.parseUpload(w, r) {
		return
	}
	image, err := a.formImage(r, "image")
	if err != nil {
		a.taskError(w, r, err)
		return
	}

	details, err := a.Studio.DescribeProduct(r.Context(), image)
	if err != nil {
		a.taskError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"details": details})
}
