package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBeatmapSet_NoBeatmapsOmitsMaxStars(t *testing.T) {
	ts := setupTestServer(t)
	ts.fetcher.sets[9] = `{"id": 9, "title": "Empty", "status": "pending",
		"submitted_date": "2021-01-01T00:00:00Z", "beatmaps": []}`

	resp := ts.api.Get("/api/v1/beatmapsets/9")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decode[BeatmapSetResponse](t, resp)
	assert.Nil(t, env.Data.MaxStarDifficulty)
	assert.Empty(t, env.Data.Beatmaps)
	assert.NotContains(t, resp.Body.String(), "max_star_difficulty")
}

func TestGetBeatmapSet_Success(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/beatmapsets/415886")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decode[BeatmapSetResponse](t, resp)
	assert.Equal(t, EnvelopeVersion, env.Version)
	assert.True(t, env.Success)

	set := env.Data
	assert.Equal(t, 415886, set.OnlineID)
	assert.Equal(t, "Genryuu Kaiko", set.Title)
	assert.Equal(t, "原流回帰", set.TitleUnicode)
	assert.Equal(t, UserResponse{ID: 3984370, Username: "Fresh Chicken"}, set.Author)
	assert.Equal(t, "ranked", set.Status)
	assert.Equal(t, []string{"sdvx", "sound", "voltex"}, set.Tags)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, set.Ratings)
	require.NotNil(t, set.MaxStarDifficulty)
	assert.InDelta(t, 5.6, *set.MaxStarDifficulty, 1e-9)

	require.NotNil(t, set.OnlineInfo)
	assert.Equal(t, 1200, set.OnlineInfo.PlayCount)
	assert.Equal(t, "Video Game", set.OnlineInfo.Genre)

	require.Len(t, set.Beatmaps, 5)
	versions := make([]string, 0, len(set.Beatmaps))
	for _, b := range set.Beatmaps {
		versions = append(versions, b.Version)
		assert.Equal(t, "mania", b.Ruleset.ShortName)
		assert.InDelta(t, 7, b.CircleSize, 1e-6)
	}
	assert.Equal(t, []string{"BASIC", "NOVICE", "ADVANCED", "EXHAUST", "GRAVITY"}, versions)
}

func TestGetBeatmapSet_SavesToLibrary(t *testing.T) {
	ts := setupTestServer(t)

	require.Equal(t, http.StatusOK, ts.api.Get("/api/v1/beatmapsets/415886").Code)

	resp := ts.api.Get("/api/v1/library/415886")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 415886, decode[SavedBeatmapSetResponse](t, resp).Data.BeatmapSet.OnlineID)
}

func TestGetBeatmapSet_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"not found online", "/api/v1/beatmapsets/404", http.StatusNotFound, "NOT_FOUND"},
		{"unknown ruleset", "/api/v1/beatmapsets/2", http.StatusUnprocessableEntity, "RULESET_NOT_FOUND"},
		{"zero id", "/api/v1/beatmapsets/0", http.StatusUnprocessableEntity, "VALIDATION"},
		{"non numeric id", "/api/v1/beatmapsets/abc", http.StatusUnprocessableEntity, "VALIDATION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := setupTestServer(t)

			resp := ts.api.Get(tt.path)
			assert.Equal(t, tt.status, resp.Code, resp.Body.String())

			env := decode[any](t, resp)
			assert.False(t, env.Success)
			assert.Equal(t, EnvelopeVersion, env.Version)
			assert.Equal(t, tt.code, env.Code)
			assert.NotEmpty(t, env.Message)
		})
	}
}

func TestGetBeatmapSet_UnknownRulesetDetails(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/beatmapsets/2")
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	env := decode[any](t, resp)
	assert.Equal(t, map[string]any{"beatmap_id": float64(20), "ruleset_id": float64(42)}, env.Details)

	// Nothing was saved.
	assert.Equal(t, http.StatusNotFound, ts.api.Get("/api/v1/library/2").Code)
}

func TestSearchBeatmapSets(t *testing.T) {
	ts := setupTestServer(t)
	ts.fetcher.search = []string{genryuuPayload, unknownRulesetPayload, lovedPayload}

	resp := ts.api.Get("/api/v1/beatmapsets/search?q=yuyoyuppe&status=ranked&limit=10")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	assert.Equal(t, "yuyoyuppe", ts.fetcher.lastSearch.Query)
	assert.Equal(t, "ranked", ts.fetcher.lastSearch.Status)
	assert.Equal(t, 10, ts.fetcher.lastSearch.Limit)

	// The set with an unknown ruleset is left out.
	body := decode[SearchBeatmapSetsResponse](t, resp).Data
	assert.Equal(t, 2, body.Total)
	require.Len(t, body.BeatmapSets, 2)
	assert.Equal(t, 415886, body.BeatmapSets[0].OnlineID)
	assert.Equal(t, 7, body.BeatmapSets[1].OnlineID)
}

func TestSearchBeatmapSets_DefaultsAndEmpty(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/beatmapsets/search")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	assert.Equal(t, 25, ts.fetcher.lastSearch.Limit)
	body := decode[SearchBeatmapSetsResponse](t, resp).Data
	assert.Equal(t, 0, body.Total)
	assert.NotNil(t, body.BeatmapSets)
}

func TestSearchBeatmapSets_InvalidParams(t *testing.T) {
	ts := setupTestServer(t)

	for _, path := range []string{
		"/api/v1/beatmapsets/search?status=famous",
		"/api/v1/beatmapsets/search?limit=500",
	} {
		resp := ts.api.Get(path)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code, path)
		assert.Equal(t, "VALIDATION", decode[any](t, resp).Code, path)
	}
}

func TestShowBeatmapSet(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/beatmapsets/415886/show")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, 415886, decode[BeatmapSetResponse](t, resp).Data.OnlineID)

	current, ok := ts.presenter.Current()
	require.True(t, ok)
	assert.Equal(t, 415886, current.OnlineID)
	assert.NoError(t, current.CheckLinks())
}

func TestShowBeatmapSet_FailureKeepsOverlay(t *testing.T) {
	ts := setupTestServer(t)

	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/beatmapsets/7/show").Code)

	resp := ts.api.Post("/api/v1/beatmapsets/2/show")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	current, ok := ts.presenter.Current()
	require.True(t, ok)
	assert.Equal(t, 7, current.OnlineID)
}
