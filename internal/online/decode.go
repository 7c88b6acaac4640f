package online

import (
	"encoding/json"
	"time"

	domainerrors "github.com/listenupapp/beatmap-server/internal/errors"
	"github.com/listenupapp/beatmap-server/internal/validation"
)

var payloadValidator = validation.New()

// requiredFields lists the set fields a payload must carry.
type requiredFields struct {
	ID        *int       `json:"id" validate:"required"`
	Submitted *time.Time `json:"submitted_date" validate:"required"`
}

// Decode parses a single beatmap set payload.
// Missing required fields or a wrongly shaped payload yield an
// errors.ErrMalformedPayload-coded error.
func Decode(data []byte) (*BeatmapSet, error) {
	var s BeatmapSet
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, asMalformed(err)
	}
	return &s, nil
}

// UnmarshalJSON decodes the wire representation, routing user_id and creator
// through the shared Author and filling defaults for absent sequences.
func (s *BeatmapSet) UnmarshalJSON(data []byte) error {
	type plain BeatmapSet

	aux := struct {
		*plain
		ID        *int       `json:"id"`
		Submitted *time.Time `json:"submitted_date"`
		UserID    *int       `json:"user_id"`
		Creator   *string    `json:"creator"`
	}{plain: (*plain)(s)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return asMalformed(err)
	}

	if err := payloadValidator.ValidatePayload(requiredFields{ID: aux.ID, Submitted: aux.Submitted}); err != nil {
		return err
	}
	s.OnlineID = *aux.ID
	s.Submitted = *aux.Submitted

	if aux.UserID != nil {
		s.SetAuthorID(*aux.UserID)
	}
	if aux.Creator != nil {
		s.SetAuthorString(*aux.Creator)
	}

	if s.Ratings == nil {
		s.Ratings = []int{}
	}
	if s.Beatmaps == nil {
		s.Beatmaps = []Beatmap{}
	}

	return nil
}

// asMalformed tags a decoding failure as a malformed payload unless it already
// carries a domain code.
func asMalformed(err error) error {
	var domainErr *domainerrors.Error
	if domainerrors.As(err, &domainErr) {
		return err
	}
	return domainerrors.Wrap(err, domainerrors.CodeMalformedPayload, "malformed payload")
}
