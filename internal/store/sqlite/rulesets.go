package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/listenupapp/beatmap-server/internal/domain"
	domainerrors "github.com/listenupapp/beatmap-server/internal/errors"
)

// rulesetColumns must match the scan order in scanRuleset.
const rulesetColumns = `id, short_name, name, available`

func scanRuleset(scanner interface{ Scan(dest ...any) error }) (*domain.Ruleset, error) {
	var (
		r         domain.Ruleset
		available int
	)
	if err := scanner.Scan(&r.ID, &r.ShortName, &r.Name, &available); err != nil {
		return nil, err
	}
	r.Available = available != 0
	return &r, nil
}

// ListRulesets returns all rulesets ordered by id.
func (s *Store) ListRulesets(ctx context.Context) ([]*domain.Ruleset, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+rulesetColumns+` FROM rulesets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list rulesets: %w", err)
	}
	defer rows.Close()

	var rulesets []*domain.Ruleset
	for rows.Next() {
		r, err := scanRuleset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ruleset: %w", err)
		}
		rulesets = append(rulesets, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rulesets: %w", err)
	}
	return rulesets, nil
}

// GetRuleset returns the ruleset with the given id.
// Returns an errors.ErrRulesetNotFound-coded error if it does not exist.
func (s *Store) GetRuleset(ctx context.Context, id int) (*domain.Ruleset, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+rulesetColumns+` FROM rulesets WHERE id = ?`, id)
	r, err := scanRuleset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainerrors.RulesetNotFoundf("ruleset %d does not exist", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get ruleset %d: %w", id, err)
	}
	return r, nil
}

// UpsertRuleset inserts a ruleset or updates the existing one with the same id.
func (s *Store) UpsertRuleset(ctx context.Context, r *domain.Ruleset) error {
	if r.ShortName == "" || r.Name == "" {
		return domainerrors.Validationf("ruleset %d needs a short name and a name", r.ID)
	}

	now := formatTime(time.Now())
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rulesets (id, short_name, name, available, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			short_name = excluded.short_name,
			name       = excluded.name,
			available  = excluded.available,
			updated_at = excluded.updated_at`,
		r.ID, r.ShortName, r.Name, boolToInt(r.Available), now, now,
	)
	if err != nil {
		return fmt.Errorf("upsert ruleset %d: %w", r.ID, err)
	}

	s.logger.Debug("ruleset saved", "id", r.ID, "short_name", r.ShortName)
	return nil
}

// DeleteRuleset removes a ruleset.
// Returns an errors.ErrRulesetNotFound-coded error if it does not exist.
func (s *Store) DeleteRuleset(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM rulesets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete ruleset %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete ruleset %d: %w", id, err)
	}
	if n == 0 {
		return domainerrors.RulesetNotFoundf("ruleset %d does not exist", id)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
