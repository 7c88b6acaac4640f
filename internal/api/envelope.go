package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/beatmap-server/internal/http/response"
)

// EnvelopeVersion is the envelope format version sent as "v".
const EnvelopeVersion = response.Version

// APIEnvelope wraps successful responses and uncoded errors.
type APIEnvelope = response.Envelope //nolint:revive // API prefix is intentional for clarity

// APIErrorEnvelope wraps coded errors.
type APIErrorEnvelope = response.ErrorEnvelope //nolint:revive // API prefix is intentional for clarity

// EnvelopeTransformer wraps every huma response body in the standard envelope.
// It is registered as a huma.Transformer.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	code, _ := strconv.Atoi(status)

	switch body := v.(type) {
	case *APIError:
		return APIErrorEnvelope{
			Version: EnvelopeVersion,
			Code:    body.Code,
			Message: body.Message,
			Details: body.Details,
		}, nil
	case error:
		return APIEnvelope{
			Version: EnvelopeVersion,
			Error:   body.Error(),
		}, nil
	}

	return APIEnvelope{
		Version: EnvelopeVersion,
		Success: code < 400,
		Data:    v,
	}, nil
}
