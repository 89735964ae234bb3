package handler

import (
	"encoding/json"
	"net/http"

	"github.com/edustack/accounts-api/internal/application/auth"
	"github.com/edustack/accounts-api/internal/application/user"
	"github.com/edustack/accounts-api/internal/domain"
	"github.com/edustack/accounts-api/internal/pkg/validate"
)

// AccountHandler handles signup and login endpoints.
type AccountHandler struct {
	userSvc user.Service
	authSvc auth.Service
}

func NewAccountHandler(userSvc user.Service, authSvc auth.Service) *AccountHandler {
	return &AccountHandler{userSvc: userSvc, authSvc: authSvc}
}

func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.userSvc.Signup(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageEnvelope{Message: "signup successful"})
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.authSvc.Login(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "login successful"})
}
