package online

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/beatmap-server/internal/domain"
	domainerrors "github.com/listenupapp/beatmap-server/internal/errors"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err, "failed to load fixture %s", name)
	return data
}

func TestDecode_FullPayload(t *testing.T) {
	set, err := Decode(loadFixture(t, "beatmapset_415886.json"))
	require.NoError(t, err)

	assert.Equal(t, 415886, set.OnlineID)
	assert.Equal(t, "Genryuu Kaiko", set.Title)
	assert.Equal(t, "源流回帰", set.TitleUnicode)
	assert.Equal(t, "Yuyoyuppe", set.Artist)
	assert.Equal(t, domain.StatusRanked, set.Status)
	assert.Equal(t, 3984370, set.AuthorID())
	assert.Equal(t, "Fresh Chicken", set.AuthorString())
	assert.Equal(t, []int{0, 1, 0, 2, 3, 2, 5, 8, 13, 21, 34}, set.Ratings)

	assert.Equal(t, time.Date(2016, 3, 12, 10, 15, 0, 0, time.UTC), set.Submitted)
	require.NotNil(t, set.Ranked)
	assert.Equal(t, time.Date(2016, 5, 1, 8, 0, 0, 0, time.UTC), *set.Ranked)
	assert.Nil(t, set.TrackID)
	assert.Equal(t, "Video Game", set.Genre.Name)
	assert.Equal(t, "Japanese", set.Language.Name)
	assert.Equal(t, "https://assets.ppy.sh/beatmaps/415886/covers/card@2x.jpg", set.Covers.Card2x)
	assert.True(t, set.HasStoryboard)

	require.Len(t, set.Beatmaps, 5)
	assert.Equal(t, "BASIC", set.Beatmaps[0].DifficultyName)
	assert.Equal(t, 3, set.Beatmaps[0].RulesetID)
	assert.InDelta(t, 5.6, set.Beatmaps[4].StarRating, 1e-9)
	require.NotNil(t, set.Beatmaps[4].MaxCombo)
	assert.Equal(t, 2048, *set.Beatmaps[4].MaxCombo)
	assert.Nil(t, set.Beatmaps[0].MaxCombo)
}

func TestDecode_AuthorFields(t *testing.T) {
	tests := []struct {
		name         string
		authorFields string
		wantID       int
		wantUsername string
		wantAuthor   bool
	}{
		{
			name:       "neither field",
			wantAuthor: false,
		},
		{
			name:         "user id only",
			authorFields: `"user_id": 3984370,`,
			wantID:       3984370,
			wantAuthor:   true,
		},
		{
			name:         "creator only",
			authorFields: `"creator": "Fresh Chicken",`,
			wantUsername: "Fresh Chicken",
			wantAuthor:   true,
		},
		{
			name:         "creator before user id",
			authorFields: `"creator": "Fresh Chicken", "user_id": 3984370,`,
			wantID:       3984370,
			wantUsername: "Fresh Chicken",
			wantAuthor:   true,
		},
		{
			name:         "user id before creator",
			authorFields: `"user_id": 3984370, "creator": "Fresh Chicken",`,
			wantID:       3984370,
			wantUsername: "Fresh Chicken",
			wantAuthor:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := `{"id": 7, ` + tt.authorFields + ` "submitted_date": "2020-01-01T00:00:00Z"}`

			set, err := Decode([]byte(payload))
			require.NoError(t, err)

			assert.Equal(t, tt.wantAuthor, set.Author != nil)
			assert.Equal(t, tt.wantID, set.AuthorID())
			assert.Equal(t, tt.wantUsername, set.AuthorString())
		})
	}
}

func TestDecode_Defaults(t *testing.T) {
	set, err := Decode([]byte(`{"id": 1, "submitted_date": "2020-01-01T00:00:00Z"}`))
	require.NoError(t, err)

	assert.NotNil(t, set.Ratings)
	assert.Empty(t, set.Ratings)
	assert.NotNil(t, set.Beatmaps)
	assert.Empty(t, set.Beatmaps)
	assert.Equal(t, domain.StatusPending, set.Status)
	assert.Nil(t, set.Ranked)
	assert.Nil(t, set.LastUpdated)
	assert.Nil(t, set.TrackID)
}

func TestDecode_StatusEncodings(t *testing.T) {
	for payload, want := range map[string]domain.BeatmapSetOnlineStatus{
		`"loved"`:     domain.StatusLoved,
		`-2`:          domain.StatusGraveyard,
		`"qualified"`: domain.StatusQualified,
		`null`:        domain.StatusPending,
	} {
		set, err := Decode([]byte(`{"id": 1, "submitted_date": "2020-01-01T00:00:00Z", "status": ` + payload + `}`))
		require.NoError(t, err, payload)
		assert.Equal(t, want, set.Status, payload)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantMsg string
	}{
		{
			name:    "missing id",
			payload: `{"submitted_date": "2020-01-01T00:00:00Z"}`,
			wantMsg: "malformed payload: id",
		},
		{
			name:    "missing submitted date",
			payload: `{"id": 1}`,
			wantMsg: "malformed payload: submitted_date",
		},
		{
			name:    "missing both",
			payload: `{"title": "x"}`,
			wantMsg: "malformed payload: id, submitted_date",
		},
		{
			name:    "null id",
			payload: `{"id": null, "submitted_date": "2020-01-01T00:00:00Z"}`,
			wantMsg: "malformed payload: id",
		},
		{
			name:    "wrong id type",
			payload: `{"id": "abc", "submitted_date": "2020-01-01T00:00:00Z"}`,
		},
		{
			name:    "bad timestamp",
			payload: `{"id": 1, "submitted_date": "yesterday"}`,
		},
		{
			name:    "unknown status",
			payload: `{"id": 1, "submitted_date": "2020-01-01T00:00:00Z", "status": "deleted"}`,
		},
		{
			name:    "not an object",
			payload: `[1, 2, 3]`,
		},
		{
			name:    "truncated",
			payload: `{"id": 1,`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Decode([]byte(tt.payload))
			require.Error(t, err)
			assert.Nil(t, set)
			assert.ErrorIs(t, err, domainerrors.ErrMalformedPayload)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
}

func TestDecode_NestedInArray(t *testing.T) {
	var sets []*BeatmapSet
	err := json.Unmarshal([]byte(`[
		{"id": 1, "creator": "a", "submitted_date": "2020-01-01T00:00:00Z"},
		{"id": 2, "user_id": 5, "submitted_date": "2020-01-01T00:00:00Z"}
	]`), &sets)
	require.NoError(t, err)
	require.Len(t, sets, 2)

	assert.Equal(t, "a", sets[0].AuthorString())
	assert.Equal(t, 0, sets[0].AuthorID())
	assert.Equal(t, 5, sets[1].AuthorID())
	assert.Equal(t, "", sets[1].AuthorString())
}

func TestBeatmapSet_AuthorAccessors(t *testing.T) {
	var s BeatmapSet
	assert.Equal(t, 0, s.AuthorID())
	assert.Equal(t, "", s.AuthorString())
	assert.Nil(t, s.Author, "reads must not create an author")

	s.SetAuthorString("Fresh Chicken")
	author := s.Author
	require.NotNil(t, author)

	s.SetAuthorID(3984370)
	assert.Same(t, author, s.Author, "both accessors share one author")
	assert.Equal(t, domain.User{ID: 3984370, Username: "Fresh Chicken"}, *s.Author)
}

func TestBeatmapSet_MetadataIsFreshAndPure(t *testing.T) {
	s := BeatmapSet{
		Title:  "Genryuu Kaiko",
		Artist: "Yuyoyuppe",
		Tags:   "sdvx mania",
		Source: "SOUND VOLTEX",
	}
	s.SetAuthorID(3984370)
	s.SetAuthorString("Fresh Chicken")

	first := s.Metadata()
	second := s.Metadata()

	assert.NotSame(t, first, second)
	assert.Equal(t, first, second)
	assert.Equal(t, domain.User{ID: 3984370, Username: "Fresh Chicken"}, first.Author)

	first.Author.Username = "changed"
	assert.Equal(t, "Fresh Chicken", s.AuthorString(), "metadata must not alias the wire author")
}

func TestBeatmapSet_MetadataWithoutAuthor(t *testing.T) {
	s := BeatmapSet{Title: "t"}
	md := s.Metadata()
	assert.Equal(t, domain.User{}, md.Author)
	assert.Nil(t, s.Author)
}
