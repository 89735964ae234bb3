package handler

import (
	"encoding/json"
	"net/http"

	"github.com/edustack/accounts-api/internal/application/user"
	"github.com/edustack/accounts-api/internal/domain"
	"github.com/edustack/accounts-api/internal/pkg/validate"
)

// ProfileHandler handles profile view and edit endpoints.
type ProfileHandler struct {
	svc user.Service
}

func NewProfileHandler(svc user.Service) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.GetProfile(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.UpdateProfile(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "profile updated successfully"})
}
