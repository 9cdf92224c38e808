package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/imgio"
	"server/internal/infra"
	"server/internal/middleware"
	"server/internal/presets"
	"server/internal/studio"
)

// Studio is the task surface the handlers depend on. The concrete
// implementation is studio.Service; tests inject stubs.
type Studio interface {
	CompositeProduct(ctx context.Context, image imgio.File, backgroundText string, transparent bool, aspect domain.AspectRatio) (*studio.Result, error)
	EditImage(ctx context.Context, image imgio.File, instruction string) (*studio.Result, error)
	GenerateImage(ctx context.Context, prompt string, aspect domain.AspectRatio, opts studio.GenerateOptions) (*studio.Result, error)
	CopyStyle(ctx context.Context, sources []imgio.File, target imgio.File, opts studio.CopyStyleOptions) (*studio.Result, error)
	GenerateStyledBackground(ctx context.Context, sources []imgio.File, addendum string) (*studio.Result, error)
	CompositeOntoBackground(ctx context.Context, target, background imgio.File, opts studio.CompositeOptions) (*studio.Result, error)
	DescribeProduct(ctx context.Context, image imgio.File) (*domain.ProductDetails, error)
}

// App is the handler container holding all request-scoped dependencies.
type App struct {
	Config  *infra.Config
	Logger  zerolog.Logger
	Studio  Studio
	Presets *presets.Store
}

func NewApp(cfg *infra.Config, logger zerolog.Logger, st Studio, ps *presets.Store) *App {
	return &App{Config: cfg, Logger: logger, Studio: st, Presets: ps}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{"error": map[string]string{"code": code, "message": message}})
}

// taskError translates the error taxonomy into user-facing responses. The
// provider refusing to return an image is deliberately distinguishable from
// transport failures so the caller can explain a likely safety rejection.
func (a *App) taskError(w http.ResponseWriter, r *http.Request, err error) {
	logEvt := a.Logger.Warn().Err(err).Str("request_id", middleware.RequestIDFromContext(r.Context()))
	switch {
	case errors.Is(err, domain.ErrInvalidSelection):
		logEvt.Msg("rejected selection")
		a.error(w, http.StatusUnprocessableEntity, "invalid_selection", err.Error())
	case errors.Is(err, domain.ErrNoImage):
		logEvt.Msg("provider returned no image")
		a.error(w, http.StatusBadGateway, "no_image_returned",
			"the provider returned no image; the request may have been rejected by its content safety filters")
	case errors.Is(err, domain.ErrMalformedResponse):
		logEvt.Msg("provider returned malformed payload")
		a.error(w, http.StatusBadGateway, "malformed_response", "the provider returned an unparseable description")
	case errors.Is(err, domain.ErrIO), errors.Is(err, domain.ErrDecode):
		logEvt.Msg("bad upload")
		a.error(w, http.StatusBadRequest, "bad_image", err.Error())
	case errors.Is(err, domain.ErrRender):
		logEvt.Msg("export render failed")
		a.error(w, http.StatusInternalServerError, "render_failed", err.Error())
	default:
		logEvt.Msg("provider call failed")
		a.error(w, http.StatusBadGateway, "provider_error", "image provider request failed")
	}
}

type imageResponse struct {
	Image     string `json:"image"`
	MIME      string `json:"mime"`
	RequestID string `json:"request_id,omitempty"`
}

func (a *App) imageResult(w http.ResponseWriter, r *http.Request, res *studio.Result) {
	a.json(w, http.StatusOK, imageResponse{
		Image:     res.Data,
		MIME:      res.MIME,
		RequestID: middleware.RequestIDFromContext(r.Context()),
	})
}
