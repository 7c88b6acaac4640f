package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/listenupapp/beatmap-server/internal/errors"
)

func (s *Server) registerOverlayRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getOverlay",
		Method:      http.MethodGet,
		Path:        "/api/v1/overlay",
		Summary:     "Get overlay",
		Description: "Returns the beatmap set currently on the overlay",
		Tags:        []string{"Overlay"},
	}, s.handleGetOverlay)

	huma.Register(s.api, huma.Operation{
		OperationID: "hideOverlay",
		Method:      http.MethodDelete,
		Path:        "/api/v1/overlay",
		Summary:     "Hide overlay",
		Description: "Clears the overlay",
		Tags:        []string{"Overlay"},
	}, s.handleHideOverlay)
}

// OverlayResponse describes the overlay state.
type OverlayResponse struct {
	Version    uint64             `json:"version" doc:"Increments on every overlay change"`
	BeatmapSet BeatmapSetResponse `json:"beatmap_set" doc:"Set on display"`
}

// OverlayOutput wraps the overlay state for Huma.
type OverlayOutput struct {
	Body OverlayResponse
}

// HideOverlayResponse reports the result of hiding the overlay.
type HideOverlayResponse struct {
	WasShowing bool   `json:"was_showing" doc:"Whether a set was on display"`
	Version    uint64 `json:"version" doc:"Overlay version after hiding"`
}

// HideOverlayOutput wraps the hide result for Huma.
type HideOverlayOutput struct {
	Body HideOverlayResponse
}

func (s *Server) handleGetOverlay(_ context.Context, _ *struct{}) (*OverlayOutput, error) {
	if s.presenter == nil {
		return nil, domainerrors.Unsupportedf("no overlay configured")
	}

	set, ok := s.presenter.Current()
	if !ok {
		return nil, domainerrors.NotFound("nothing is on the overlay")
	}

	return &OverlayOutput{
		Body: OverlayResponse{
			Version:    s.presenter.Version(),
			BeatmapSet: toBeatmapSetResponse(set),
		},
	}, nil
}

func (s *Server) handleHideOverlay(_ context.Context, _ *struct{}) (*HideOverlayOutput, error) {
	if s.presenter == nil {
		return nil, domainerrors.Unsupportedf("no overlay configured")
	}

	wasShowing := s.presenter.Hide()
	if wasShowing {
		s.logger.Info("overlay hidden")
	}

	return &HideOverlayOutput{
		Body: HideOverlayResponse{
			WasShowing: wasShowing,
			Version:    s.presenter.Version(),
		},
	}, nil
}
