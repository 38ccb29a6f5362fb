package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/search-team-api/internal/application/auth"
	"github.com/search-team-api/internal/pkg/validate"
)

// PasswordResetHandler handles the reset-code flow.
type PasswordResetHandler struct {
	svc auth.Service
}

func NewPasswordResetHandler(svc auth.Service) *PasswordResetHandler {
	return &PasswordResetHandler{svc: svc}
}

func (h *PasswordResetHandler) Action(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "action") {
	case "request":
		var req auth.CodeRequest
		if err := decode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		res, err := h.svc.RequestPasswordReset(r.Context(), req.Login)
		if err != nil {
			httpError(w, err)
			return
		}
		writeIssued(w, res)
	case "confirm":
		var req auth.ResetPasswordRequest
		if err := decode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validate.Struct(&req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if _, err := h.svc.ResetPassword(r.Context(), req); err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "password updated"})
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}

// writeIssued renders a code request result. Concealed results look the
// same whether or not the account exists.
func writeIssued(w http.ResponseWriter, res *auth.IssueResult) {
	if res.Concealed {
		writeJSON(w, http.StatusAccepted, CodeEnvelope{Message: "if the account exists, a verification code has been sent"})
		return
	}
	env := CodeEnvelope{Message: "verification code sent", ExpiresAt: res.ExpiresAt}
	if res.Warning != nil {
		env.Message = "verification code issued"
		env.Warning = res.Warning.Error()
	}
	writeJSON(w, http.StatusAccepted, env)
}
