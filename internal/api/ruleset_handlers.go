package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/listenupapp/beatmap-server/internal/errors"
)

func (s *Server) registerRulesetRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listRulesets",
		Method:      http.MethodGet,
		Path:        "/api/v1/rulesets",
		Summary:     "List rulesets",
		Description: "Returns the known rulesets ordered by id",
		Tags:        []string{"Rulesets"},
	}, s.handleListRulesets)

	huma.Register(s.api, huma.Operation{
		OperationID: "reloadRulesets",
		Method:      http.MethodPost,
		Path:        "/api/v1/rulesets/reload",
		Summary:     "Reload rulesets",
		Description: "Reloads the ruleset catalog from its database",
		Tags:        []string{"Rulesets"},
	}, s.handleReloadRulesets)
}

// ListRulesetsResponse contains the ruleset catalog.
type ListRulesetsResponse struct {
	Rulesets []RulesetResponse `json:"rulesets"`
}

// ListRulesetsOutput wraps the catalog for Huma.
type ListRulesetsOutput struct {
	Body ListRulesetsResponse
}

func (s *Server) handleListRulesets(_ context.Context, _ *struct{}) (*ListRulesetsOutput, error) {
	return &ListRulesetsOutput{Body: s.rulesetCatalog()}, nil
}

func (s *Server) handleReloadRulesets(ctx context.Context, _ *struct{}) (*ListRulesetsOutput, error) {
	if err := s.rulesets.Reload(ctx); err != nil {
		return nil, domainerrors.Internal("failed to reload rulesets").WithCause(err)
	}
	return &ListRulesetsOutput{Body: s.rulesetCatalog()}, nil
}

func (s *Server) rulesetCatalog() ListRulesetsResponse {
	all := s.rulesets.All()
	resp := ListRulesetsResponse{Rulesets: make([]RulesetResponse, 0, len(all))}
	for _, r := range all {
		resp.Rulesets = append(resp.Rulesets, toRulesetResponse(r))
	}
	return resp
}
