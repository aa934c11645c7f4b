package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	respond "github.com/bloomworks/bloom-practice/internal/api/respond"
	"github.com/bloomworks/bloom-practice/internal/model"
)

// writeServiceError maps service-layer sentinel errors to HTTP statuses:
// NotFound→404, Validation→400, Conflict→409, Unauthorized→403. Anything
// else is an unexpected store failure: logged and surfaced as a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrConflict):
		respond.WriteConflict(w, err.Error())
	case errors.Is(err, model.ErrUnauthorized):
		respond.WriteForbidden(w, err.Error())
	default:
		log.Error().Stack().Err(err).Msg("unexpected service error")
		respond.WriteInternalError(w, "internal error")
	}
}
