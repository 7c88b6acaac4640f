package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/beatmap-server/internal/domain"
	domainerrors "github.com/listenupapp/beatmap-server/internal/errors"
)

func (s *Server) registerLibraryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listLibrary",
		Method:      http.MethodGet,
		Path:        "/api/v1/library",
		Summary:     "List library",
		Description: "Returns the saved beatmap sets ordered by id, optionally filtered by status",
		Tags:        []string{"Library"},
	}, s.handleListLibrary)

	huma.Register(s.api, huma.Operation{
		OperationID: "getLibraryEntry",
		Method:      http.MethodGet,
		Path:        "/api/v1/library/{id}",
		Summary:     "Get library entry",
		Description: "Returns a saved beatmap set without contacting the online service",
		Tags:        []string{"Library"},
	}, s.handleGetLibraryEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteLibraryEntry",
		Method:      http.MethodDelete,
		Path:        "/api/v1/library/{id}",
		Summary:     "Delete library entry",
		Description: "Removes a saved beatmap set from the library",
		Tags:        []string{"Library"},
	}, s.handleDeleteLibraryEntry)
}

// ListLibraryInput contains list filters.
type ListLibraryInput struct {
	Status string `query:"status" enum:"none,graveyard,wip,pending,ranked,approved,qualified,loved" doc:"Only return sets with this status"`
}

// ListLibraryResponse contains library entries.
type ListLibraryResponse struct {
	BeatmapSets []SavedBeatmapSetResponse `json:"beatmap_sets"`
	Total       int                       `json:"total"`
}

// ListLibraryOutput wraps library entries for Huma.
type ListLibraryOutput struct {
	Body ListLibraryResponse
}

// MessageResponse contains a confirmation message.
type MessageResponse struct {
	Message string `json:"message" doc:"Confirmation message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// LibraryEntryOutput wraps one library entry for Huma.
type LibraryEntryOutput struct {
	Body SavedBeatmapSetResponse
}

func (s *Server) handleListLibrary(ctx context.Context, input *ListLibraryInput) (*ListLibraryOutput, error) {
	var status *domain.BeatmapSetOnlineStatus
	if input.Status != "" {
		parsed, ok := domain.ParseBeatmapSetOnlineStatus(input.Status)
		if !ok {
			return nil, domainerrors.Validationf("unknown status %q", input.Status)
		}
		status = &parsed
	}

	saved, err := s.beatmapSets.ListSaved(ctx, status)
	if err != nil {
		return nil, err
	}

	entries := make([]SavedBeatmapSetResponse, 0, len(saved))
	for _, entry := range saved {
		entries = append(entries, toSavedResponse(entry))
	}

	return &ListLibraryOutput{
		Body: ListLibraryResponse{
			BeatmapSets: entries,
			Total:       len(entries),
		},
	}, nil
}

func (s *Server) handleGetLibraryEntry(ctx context.Context, input *BeatmapSetIDInput) (*LibraryEntryOutput, error) {
	saved, err := s.beatmapSets.Saved(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &LibraryEntryOutput{Body: toSavedResponse(saved)}, nil
}

func (s *Server) handleDeleteLibraryEntry(ctx context.Context, input *BeatmapSetIDInput) (*MessageOutput, error) {
	if err := s.beatmapSets.Forget(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Beatmap set removed from library"}}, nil
}
