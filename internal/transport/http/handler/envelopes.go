package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/search-team-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper. Kind carries the
// machine-readable failure kind for validation and credential errors.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

// CodeEnvelope answers a code request. ExpiresAt is omitted when the
// account is concealed.
type CodeEnvelope struct {
	Message   string     `json:"message"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Warning   string     `json:"warning,omitempty"`
}

// PaginatedUsersEnvelope wraps cursor-paginated user list responses.
type PaginatedUsersEnvelope struct {
	Data       []domain.User `json:"data"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

type TeamsEnvelope struct {
	Data []domain.TeamSummary `json:"data"`
}

type UsersEnvelope struct {
	Data []domain.User `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// decode reads a JSON body into dst and rejects trailing garbage.
func decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errTrailingData
	}
	return nil
}

// decodeOptional is decode for endpoints where an empty body means defaults.
func decodeOptional(r *http.Request, dst interface{}) error {
	if err := decode(r, dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
