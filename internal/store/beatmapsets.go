package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/listenupapp/beatmap-server/internal/domain"
	domainerrors "github.com/listenupapp/beatmap-server/internal/errors"
)

const (
	beatmapSetPrefix    = "beatmapset:"
	beatmapSetStatusIdx = "idx:beatmapset:status:"

	recordVersion = 1
)

// SavedBeatmapSet is a beatmap set read back from the store.
type SavedBeatmapSet struct {
	Set     *domain.BeatmapSet
	SavedAt time.Time
}

// beatmapSetRecord is the stored form of a beatmap set. Links between the set,
// its metadata and its beatmaps are rebuilt on read.
type beatmapSetRecord struct {
	Version    int                           `json:"v"`
	OnlineID   int                           `json:"online_id"`
	Metadata   domain.Metadata               `json:"metadata"`
	Status     domain.BeatmapSetOnlineStatus `json:"status"`
	Ratings    []int                         `json:"ratings"`
	OnlineInfo *domain.BeatmapSetOnlineInfo  `json:"online_info,omitempty"`
	Beatmaps   []beatmapRecord               `json:"beatmaps"`
	SavedAt    time.Time                     `json:"saved_at"`
}

type beatmapRecord struct {
	OnlineID       int               `json:"online_id"`
	StarDifficulty float64           `json:"star_difficulty"`
	Version        string            `json:"version"`
	Ruleset        domain.Ruleset    `json:"ruleset"`
	Difficulty     domain.Difficulty `json:"difficulty"`
}

func beatmapSetKey(id int) []byte {
	return []byte(beatmapSetPrefix + strconv.Itoa(id))
}

func statusIndexKey(status domain.BeatmapSetOnlineStatus, id int) []byte {
	return []byte(beatmapSetStatusIdx + status.String() + ":" + strconv.Itoa(id))
}

// SaveBeatmapSet stores a converted set, replacing any previous copy.
// The set must be fully linked (see domain.BeatmapSet.CheckLinks).
func (s *Store) SaveBeatmapSet(ctx context.Context, set *domain.BeatmapSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := set.CheckLinks(); err != nil {
		return err
	}

	rec := toRecord(set, time.Now().UTC())
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal beatmap set %d: %w", set.OnlineID, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		prev, err := getRecord(txn, set.OnlineID)
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if prev != nil && prev.Status != rec.Status {
			if err := txn.Delete(statusIndexKey(prev.Status, prev.OnlineID)); err != nil {
				return fmt.Errorf("delete status index: %w", err)
			}
		}

		if err := txn.Set(beatmapSetKey(set.OnlineID), data); err != nil {
			return fmt.Errorf("set beatmap set: %w", err)
		}
		return txn.Set(statusIndexKey(rec.Status, rec.OnlineID), []byte{})
	})
	if err != nil {
		return fmt.Errorf("save beatmap set %d: %w", set.OnlineID, err)
	}

	if s.logger != nil {
		s.logger.Debug("beatmap set saved", "id", set.OnlineID, "beatmaps", len(set.Beatmaps))
	}
	return nil
}

// GetBeatmapSet returns a stored set with its links rebuilt.
// Returns an errors.ErrNotFound-coded error if the set is not stored.
func (s *Store) GetBeatmapSet(ctx context.Context, id int) (*SavedBeatmapSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rec *beatmapSetRecord
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = getRecord(txn, id)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domainerrors.NotFoundf("beatmap set %d is not in the library", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get beatmap set %d: %w", id, err)
	}

	return s.fromRecord(rec), nil
}

// ListBeatmapSets returns every stored set ordered by online id.
func (s *Store) ListBeatmapSets(ctx context.Context) ([]*SavedBeatmapSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []*beatmapSetRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(beatmapSetPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec beatmapSetRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			records = append(records, &rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list beatmap sets: %w", err)
	}

	return s.fromRecords(records), nil
}

// ListBeatmapSetsByStatus returns the stored sets with the given status,
// ordered by online id.
func (s *Store) ListBeatmapSetsByStatus(ctx context.Context, status domain.BeatmapSetOnlineStatus) ([]*SavedBeatmapSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(beatmapSetStatusIdx + status.String() + ":")

	var records []*beatmapSetRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			id, err := strconv.Atoi(string(bytes.TrimPrefix(it.Item().Key(), prefix)))
			if err != nil {
				return fmt.Errorf("parse index key %s: %w", it.Item().Key(), err)
			}
			rec, err := getRecord(txn, id)
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue // Stale index entry
			}
			if err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list beatmap sets by status %s: %w", status, err)
	}

	return s.fromRecords(records), nil
}

// DeleteBeatmapSet removes a stored set.
// Returns an errors.ErrNotFound-coded error if the set is not stored.
func (s *Store) DeleteBeatmapSet(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		rec, err := getRecord(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(statusIndexKey(rec.Status, id)); err != nil {
			return err
		}
		return txn.Delete(beatmapSetKey(id))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domainerrors.NotFoundf("beatmap set %d is not in the library", id)
	}
	if err != nil {
		return fmt.Errorf("delete beatmap set %d: %w", id, err)
	}

	if s.logger != nil {
		s.logger.Debug("beatmap set deleted", "id", id)
	}
	return nil
}

func getRecord(txn *badger.Txn, id int) (*beatmapSetRecord, error) {
	item, err := txn.Get(beatmapSetKey(id))
	if err != nil {
		return nil, err
	}

	var rec beatmapSetRecord
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	}); err != nil {
		return nil, fmt.Errorf("decode beatmap set %d: %w", id, err)
	}
	return &rec, nil
}

func toRecord(set *domain.BeatmapSet, savedAt time.Time) *beatmapSetRecord {
	rec := &beatmapSetRecord{
		Version:  recordVersion,
		OnlineID: set.OnlineID,
		Metadata: *set.Metadata,
		Status:   set.Status,
		Ratings:  []int{},
		Beatmaps: make([]beatmapRecord, 0, len(set.Beatmaps)),
		SavedAt:  savedAt,
	}
	if set.Metrics != nil {
		rec.Ratings = append(rec.Ratings, set.Metrics.Ratings...)
	}
	if set.OnlineInfo != nil {
		info := *set.OnlineInfo
		rec.OnlineInfo = &info
	}

	for _, b := range set.Beatmaps {
		br := beatmapRecord{
			OnlineID:       b.OnlineID,
			StarDifficulty: b.StarDifficulty,
			Version:        b.Version,
			Difficulty:     b.Difficulty,
		}
		if b.Ruleset != nil {
			br.Ruleset = *b.Ruleset
		}
		rec.Beatmaps = append(rec.Beatmaps, br)
	}
	return rec
}

func (s *Store) fromRecord(rec *beatmapSetRecord) *SavedBeatmapSet {
	metadata := rec.Metadata
	ratings := rec.Ratings
	if ratings == nil {
		ratings = []int{}
	}

	set := &domain.BeatmapSet{
		OnlineID:   rec.OnlineID,
		Metadata:   &metadata,
		Status:     rec.Status,
		Metrics:    &domain.BeatmapSetMetrics{Ratings: ratings},
		OnlineInfo: rec.OnlineInfo,
	}

	beatmaps := make([]*domain.Beatmap, 0, len(rec.Beatmaps))
	for _, br := range rec.Beatmaps {
		beatmaps = append(beatmaps, &domain.Beatmap{
			OnlineID:       br.OnlineID,
			StarDifficulty: br.StarDifficulty,
			Version:        br.Version,
			Ruleset:        s.resolveRuleset(br.Ruleset),
			Difficulty:     br.Difficulty,
		})
	}
	set.AttachBeatmaps(beatmaps)

	return &SavedBeatmapSet{Set: set, SavedAt: rec.SavedAt}
}

func (s *Store) fromRecords(records []*beatmapSetRecord) []*SavedBeatmapSet {
	slices.SortFunc(records, func(a, b *beatmapSetRecord) int { return a.OnlineID - b.OnlineID })

	out := make([]*SavedBeatmapSet, 0, len(records))
	for _, rec := range records {
		out = append(out, s.fromRecord(rec))
	}
	return out
}

// resolveRuleset prefers the live ruleset over the saved snapshot.
func (s *Store) resolveRuleset(snapshot domain.Ruleset) *domain.Ruleset {
	if s.rulesets != nil {
		if r, ok := s.rulesets.GetRuleset(snapshot.ID); ok {
			return r
		}
	}
	return &snapshot
}
