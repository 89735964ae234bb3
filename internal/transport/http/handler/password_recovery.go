package handler

import (
	"encoding/json"
	"net/http"

	"github.com/edustack/accounts-api/internal/application/auth"
	"github.com/edustack/accounts-api/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
)

// PasswordRecoveryHandler handles the passcode flow endpoints.
type PasswordRecoveryHandler struct {
	svc auth.Service
}

func NewPasswordRecoveryHandler(svc auth.Service) *PasswordRecoveryHandler {
	return &PasswordRecoveryHandler{svc: svc}
}

func (h *PasswordRecoveryHandler) Action(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "action") {
	case "request":
		var req auth.RequestResetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := h.svc.RequestReset(r.Context(), req.Email); err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "passcode sent to email"})
	case "verify-passcode":
		var req auth.VerifyPasscodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := h.svc.VerifyPasscode(r.Context(), req.Email, req.Passcode); err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "passcode verified"})
	case "reset":
		var req auth.ResetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validate.Struct(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := h.svc.ResetPassword(r.Context(), req); err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "password reset successful"})
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}
