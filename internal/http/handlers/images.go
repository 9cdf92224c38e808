package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"server/internal/domain"
	"server/internal/studio"
)

// ImagesEdit applies a free-form instruction to an uploaded image.
// Multipart fields: image (file), instruction.
func (a *App) ImagesEdit(w http.ResponseWriter, r *http.Request) {
	if !a.parseUpload(w, r) {
		return
	}
	image, err := a.formImage(r, "image")
	if err != nil {
		a.taskError(w, r, err)
		return
	}
	instruction := strings.TrimSpace(r.FormValue("instruction"))
	if instruction == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "instruction is required")
		return
	}

	res, err := a.Studio.EditImage(r.Context(), image, instruction)
	if err != nil {
		a.taskError(w, r, err)
		return
	}
	a.imageResult(w, r, res)
}

type imageGenerateRequest struct {
	Prompt         string `json:"prompt"`
	AspectRatio    string `json:"aspect_ratio"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	Seed           *int64 `json:"seed,omitempty"`
}

// ImagesGenerate produces an image from a complete text prompt.
func (a *App) ImagesGenerate(w http.ResponseWriter, r *http.Request) {
	var req imageGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "prompt is required")
		return
	}

	res, err := a.Studio.GenerateImage(r.Context(), req.Prompt, domain.NormalizeAspectRatio(req.AspectRatio), studio.GenerateOptions{
		NegativePrompt: req.NegativePrompt,
		Seed:           req.Seed,
	})
	if err != nil {
		a.taskError(w, r, err)
		return
	}
	a.imageResult(w, r, res)
}
