package online

import (
	"fmt"

	domainerrors "github.com/listenupapp/beatmap-server/internal/errors"
)

// Sentinel errors for online API operations.
// They carry domain codes so the HTTP layer can map them to statuses.
var (
	ErrNotFound    = domainerrors.NotFound("online: not found")
	ErrRateLimited = domainerrors.RateLimited("online: rate limited by server")
	ErrBadRequest  = domainerrors.Validation("online: bad request")
	ErrServer      = domainerrors.Upstream("online: server error")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op  string // Operation: "getBeatmapSet", "search"
	ID  int    // Beatmap set id, if applicable
	Err error
}

func (e *Error) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("online %s [%d]: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("online %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op string, id int, err error) error {
	return &Error{
		Op:  op,
		ID:  id,
		Err: err,
	}
}
