package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/beatmap-server/internal/online"
)

func (s *Server) registerBeatmapSetRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchBeatmapSets",
		Method:      http.MethodGet,
		Path:        "/api/v1/beatmapsets/search",
		Summary:     "Search beatmap sets",
		Description: "Searches the online catalog and returns the converted results",
		Tags:        []string{"Beatmap Sets"},
	}, s.handleSearchBeatmapSets)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBeatmapSet",
		Method:      http.MethodGet,
		Path:        "/api/v1/beatmapsets/{id}",
		Summary:     "Get beatmap set",
		Description: "Fetches a beatmap set from the online service, converts it and saves it to the library",
		Tags:        []string{"Beatmap Sets"},
	}, s.handleGetBeatmapSet)

	huma.Register(s.api, huma.Operation{
		OperationID: "showBeatmapSet",
		Method:      http.MethodPost,
		Path:        "/api/v1/beatmapsets/{id}/show",
		Summary:     "Show beatmap set",
		Description: "Fetches a beatmap set and puts it on the overlay",
		Tags:        []string{"Beatmap Sets", "Overlay"},
	}, s.handleShowBeatmapSet)
}

// BeatmapSetIDInput identifies a beatmap set by its online id.
type BeatmapSetIDInput struct {
	ID int `path:"id" minimum:"1" doc:"Online beatmap set id"`
}

// BeatmapSetOutput wraps a converted beatmap set for Huma.
type BeatmapSetOutput struct {
	Body BeatmapSetResponse
}

// SearchBeatmapSetsInput contains search parameters.
type SearchBeatmapSetsInput struct {
	Query  string `query:"q" maxLength:"200" doc:"Free text matched against title, artist, mapper and tags"`
	Status string `query:"status" enum:"graveyard,wip,pending,ranked,approved,qualified,loved" doc:"Only return sets with this status"`
	Limit  int    `query:"limit" minimum:"0" maximum:"50" default:"25" doc:"Maximum number of results"`
}

// SearchBeatmapSetsResponse contains search results.
type SearchBeatmapSetsResponse struct {
	BeatmapSets []BeatmapSetResponse `json:"beatmap_sets" doc:"Converted results in service order"`
	Total       int                  `json:"total" doc:"Number of results returned"`
}

// SearchBeatmapSetsOutput wraps search results for Huma.
type SearchBeatmapSetsOutput struct {
	Body SearchBeatmapSetsResponse
}

func (s *Server) handleGetBeatmapSet(ctx context.Context, input *BeatmapSetIDInput) (*BeatmapSetOutput, error) {
	set, err := s.beatmapSets.Fetch(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BeatmapSetOutput{Body: toBeatmapSetResponse(set)}, nil
}

func (s *Server) handleShowBeatmapSet(ctx context.Context, input *BeatmapSetIDInput) (*BeatmapSetOutput, error) {
	set, err := s.beatmapSets.Show(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BeatmapSetOutput{Body: toBeatmapSetResponse(set)}, nil
}

func (s *Server) handleSearchBeatmapSets(ctx context.Context, input *SearchBeatmapSetsInput) (*SearchBeatmapSetsOutput, error) {
	sets, err := s.beatmapSets.Search(ctx, online.SearchParams{
		Query:  input.Query,
		Status: input.Status,
		Limit:  input.Limit,
	})
	if err != nil {
		return nil, err
	}

	results := make([]BeatmapSetResponse, 0, len(sets))
	for _, set := range sets {
		results = append(results, toBeatmapSetResponse(set))
	}

	return &SearchBeatmapSetsOutput{
		Body: SearchBeatmapSetsResponse{
			BeatmapSets: results,
			Total:       len(results),
		},
	}, nil
}
