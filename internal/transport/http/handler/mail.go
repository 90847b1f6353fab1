package handler

import (
	"encoding/json"
	"net/http"

	"github.com/daeseda/laundry-api/internal/application/verification"
	"github.com/daeseda/laundry-api/internal/domain"
	"github.com/daeseda/laundry-api/internal/pkg/validate"
)

// MailHandler handles the email verification endpoints that gate signup.
type MailHandler struct {
	svc verification.Service
}

func NewMailHandler(svc verification.Service) *MailHandler { return &MailHandler{svc: svc} }

// RequestCode issues a one-time code for an unregistered email and mails it.
// The code is echoed in the response as well.
func (h *MailHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req domain.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	code, err := h.svc.RequestCode(r.Context(), req.Email)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CodeEnvelope{Code: code})
}

// ConfirmCode consumes a pending code. A mismatch is a conflict, a missing or
// expired code a not-found.
func (h *MailHandler) ConfirmCode(w http.ResponseWriter, r *http.Request) {
	var req domain.EmailConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.ConfirmCode(r.Context(), req.Email, req.Code); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "ok"})
}
