package online

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/listenupapp/beatmap-server/internal/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(ClientConfig{
		BaseURL:           server.URL,
		AccessToken:       "secret",
		RequestsPerSecond: 100,
		Burst:             10,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return client
}

func TestClient_GetBeatmapSet(t *testing.T) {
	fixture := loadFixture(t, "beatmapset_415886.json")

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/beatmapsets/415886", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(fixture)
	})

	set, err := client.GetBeatmapSet(context.Background(), 415886)
	require.NoError(t, err)

	assert.Equal(t, 415886, set.OnlineID)
	assert.Equal(t, "Fresh Chicken", set.AuthorString())
	assert.Len(t, set.Beatmaps, 5)
}

func TestClient_GetBeatmapSet_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "not found", status: http.StatusNotFound, want: ErrNotFound},
		{name: "rate limited", status: http.StatusTooManyRequests, want: ErrRateLimited},
		{name: "bad request", status: http.StatusBadRequest, want: ErrBadRequest},
		{name: "server error", status: http.StatusBadGateway, want: ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})

			set, err := client.GetBeatmapSet(context.Background(), 1)
			assert.Nil(t, set)
			assert.ErrorIs(t, err, tt.want)

			var opErr *Error
			require.ErrorAs(t, err, &opErr)
			assert.Equal(t, "getBeatmapSet", opErr.Op)
			assert.Equal(t, 1, opErr.ID)
		})
	}
}

func TestClient_GetBeatmapSet_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"title": "no id"}`))
	})

	_, err := client.GetBeatmapSet(context.Background(), 1)
	assert.ErrorIs(t, err, domainerrors.ErrMalformedPayload)
}

func TestClient_GetBeatmapSet_InvalidID(t *testing.T) {
	client := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.GetBeatmapSet(context.Background(), 0)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestClient_SearchBeatmapSets(t *testing.T) {
	fixture := loadFixture(t, "search_response.json")

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/beatmapsets/search", r.URL.Path)
		assert.Equal(t, "genryuu", r.URL.Query().Get("q"))
		assert.Equal(t, "ranked", r.URL.Query().Get("s"))
		_, _ = w.Write(fixture)
	})

	sets, err := client.SearchBeatmapSets(context.Background(), SearchParams{
		Query:  "genryuu",
		Status: "ranked",
		Limit:  2,
	})
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, 1, sets[0].OnlineID)
	assert.Equal(t, "m2", sets[1].AuthorString())
}

func TestClient_SearchBeatmapSets_DefaultLimit(t *testing.T) {
	fixture := loadFixture(t, "search_response.json")

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("s"))
		_, _ = w.Write(fixture)
	})

	sets, err := client.SearchBeatmapSets(context.Background(), SearchParams{Query: "x"})
	require.NoError(t, err)
	assert.Len(t, sets, 3)
	assert.NotNil(t, sets[2].Beatmaps)
}

func TestClient_SearchBeatmapSets_Empty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"beatmapsets": null}`))
	})

	sets, err := client.SearchBeatmapSets(context.Background(), SearchParams{})
	require.NoError(t, err)
	assert.NotNil(t, sets)
	assert.Empty(t, sets)
}

func TestClient_SearchBeatmapSets_SkipsBadEntries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"beatmapsets": [
			null,
			{"id": 5, "title": "no submitted date"},
			{"id": 6, "title": "Kept", "submitted_date": "2020-01-01T00:00:00Z"},
			{"id": 7, "title": "Over limit", "submitted_date": "2020-01-01T00:00:00Z"}
		]}`))
	})

	sets, err := client.SearchBeatmapSets(context.Background(), SearchParams{Limit: 1})
	require.NoError(t, err)
	require.Len(t, sets, 1)
	require.NotNil(t, sets[0])
	assert.Equal(t, 6, sets[0].OnlineID)
	assert.Equal(t, "Kept", sets[0].Title)
}

func TestClient_SearchBeatmapSets_OnlyNull(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"beatmapsets":[null]}`))
	})

	sets, err := client.SearchBeatmapSets(context.Background(), SearchParams{})
	require.NoError(t, err)
	assert.NotNil(t, sets)
	assert.Empty(t, sets)
}

func TestNew_RejectsRelativeBaseURL(t *testing.T) {
	_, err := New(ClientConfig{BaseURL: "/relative"}, slog.Default())
	assert.Error(t, err)
}
