package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

type presetRequest struct {
	Text string `json:"text"`
}

// PresetsList returns the built-in presets followed by the user's own.
func (a *App) PresetsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.Presets.List(r.Context())
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load presets")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// PresetsAdd saves a background description. Duplicates are a no-op.
func (a *App) PresetsAdd(w http.ResponseWriter, r *http.Request) {
	var req presetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "text is required")
		return
	}
	added, err := a.Presets.Add(r.Context(), req.Text)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to save preset")
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	a.json(w, status, map[string]any{"added": added})
}

// PresetsRemove deletes a user preset. Built-ins cannot be removed.
func (a *App) PresetsRemove(w http.ResponseWriter, r *http.Request) {
	var req presetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "text is required")
		return
	}
	removed, err := a.Presets.Remove(r.Context(), req.Text)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to remove preset")
		return
	}
	if !removed {
		a.error(w, http.StatusNotFound, "not_found", "preset not found")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"removed": true})
}
