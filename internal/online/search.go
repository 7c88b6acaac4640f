package online

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
)

const (
	defaultSearchLimit = 25
	maxSearchLimit     = 50
)

// SearchParams defines parameters for a beatmap set search.
type SearchParams struct {
	Query  string // Free text: title, artist, mapper, tags
	Status string // Optional status filter: "ranked", "loved", ...
	Limit  int    // Max results (default 25, max 50)
}

// SearchBeatmapSets searches the online catalog.
// Entries are decoded one at a time; null or malformed entries are logged and
// skipped. Every returned set is validated like GetBeatmapSet.
func (c *Client) SearchBeatmapSets(ctx context.Context, params SearchParams) ([]*BeatmapSet, error) {
	query := url.Values{}
	if params.Query != "" {
		query.Set("q", params.Query)
	}
	if params.Status != "" {
		query.Set("s", params.Status)
	}

	body, err := c.doRequest(ctx, "/api/v2/beatmapsets/search", query)
	if err != nil {
		return nil, wrapError("search", 0, err)
	}

	var resp struct {
		BeatmapSets []json.RawMessage `json:"beatmapsets"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("search", 0, asMalformed(err))
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	limit = min(limit, maxSearchLimit)

	results := make([]*BeatmapSet, 0, min(limit, len(resp.BeatmapSets)))
	for i, raw := range resp.BeatmapSets {
		if len(results) == limit {
			break
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			c.logger.Warn("skipping null search result", "index", i)
			continue
		}
		set, err := Decode(raw)
		if err != nil {
			c.logger.Warn("skipping malformed search result",
				"index", i,
				"error", err,
			)
			continue
		}
		results = append(results, set)
	}

	c.logger.Debug("online search",
		"query", params.Query,
		"results", len(results),
	)

	return results, nil
}
