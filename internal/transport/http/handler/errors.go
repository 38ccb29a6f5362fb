package handler

import (
	"errors"
	"net/http"

	"github.com/search-team-api/internal/domain"
	"github.com/search-team-api/internal/logger"
)

var errTrailingData = errors.New("unexpected data after JSON body")

// httpError maps a service error onto a status code. Unknown errors are
// logged and answered with a generic message.
func httpError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusUnprocessableEntity, MessageEnvelope{Error: ve.Error(), Kind: string(ve.Kind)})
		return
	}
	var ce *domain.CredentialError
	if errors.As(err, &ce) {
		status := http.StatusUnauthorized
		if ce.Kind == domain.AccountNotFound || ce.Kind == domain.CodeNotFound {
			status = http.StatusNotFound
		}
		writeJSON(w, status, MessageEnvelope{Error: ce.Error(), Kind: string(ce.Kind)})
		return
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		logger.Log.WithError(err).Error("unhandled service error")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
