package httpapi

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/LiamF-2261667/fruckr-sub001/internal/domain"
	"github.com/LiamF-2261667/fruckr-sub001/internal/invitation"
)

// StaffHandler covers the worker invitation lifecycle and membership
// removal.
type StaffHandler struct {
	svc         *invitation.Service
	logger      *log.Logger
	development bool
}

func NewStaffHandler(svc *invitation.Service, logger *log.Logger, development bool) *StaffHandler {
	return &StaffHandler{svc: svc, logger: logger, development: development}
}

func (h *StaffHandler) AddWorker(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())
	foodtruckID := chi.URLParam(r, "foodtruckId")

	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, h.logger, h.development, domain.InvalidInput("invalid json body"))
		return
	}

	res, err := h.svc.Create(r.Context(), identity, foodtruckID, body.Email)
	if err != nil {
		writeError(w, h.logger, h.development, err)
		return
	}

	payload := map[string]any{"email": res.Invitation.InvitedEmail}
	if res.DeliveryFailed {
		// surface the link so the owner can pass it along manually
		payload["deliveryFailed"] = true
		payload["invitationLink"] = res.Link
	}
	writeSuccess(w, http.StatusCreated, payload)
}

func (h *StaffHandler) RemoveWorker(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())
	foodtruckID := chi.URLParam(r, "foodtruckId")
	uid := chi.URLParam(r, "uid")

	if err := h.svc.RemoveWorker(r.Context(), identity, foodtruckID, uid); err != nil {
		writeError(w, h.logger, h.development, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"uid": uid})
}

func (h *StaffHandler) GetInvitation(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.Get(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, h.logger, h.development, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"invitation": inv})
}

func (h *StaffHandler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())

	inv, err := h.svc.Accept(r.Context(), identity, chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, h.logger, h.development, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"status": inv.Status, "foodtruckId": inv.FoodtruckID})
}

func (h *StaffHandler) DeclineInvitation(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())

	inv, err := h.svc.Decline(r.Context(), identity, chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, h.logger, h.development, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"status": inv.Status})
}
