package httpapi

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/LiamF-2261667/fruckr-sub001/internal/domain"
	"github.com/LiamF-2261667/fruckr-sub001/internal/order"
)

type OrderHandler struct {
	svc         *order.Service
	logger      *log.Logger
	development bool
}

func NewOrderHandler(svc *order.Service, logger *log.Logger, development bool) *OrderHandler {
	return &OrderHandler{svc: svc, logger: logger, development: development}
}

type createOrderRequest struct {
	CardNumber     string `json:"cardNumber"`
	ExpirationDate string `json:"expirationDate"`
	CardHolder     string `json:"cardHolder"`
	City           string `json:"city"`
	Street         string `json:"street"`
	Postal         string `json:"postal"`
	HouseNr        string `json:"houseNr"`
	Bus            string `json:"bus"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())
	if identity.UID == "" {
		writeError(w, h.logger, h.development, domain.Authorization("you are not signed in"))
		return
	}

	var body createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, h.logger, h.development, domain.InvalidInput("invalid json body"))
		return
	}

	o, err := h.svc.Checkout(r.Context(), identity,
		order.Address{
			City:    body.City,
			Street:  body.Street,
			Postal:  body.Postal,
			HouseNr: body.HouseNr,
			Bus:     body.Bus,
		},
		order.Card{
			Number:         body.CardNumber,
			ExpirationDate: body.ExpirationDate,
			Holder:         body.CardHolder,
		})
	if err != nil {
		writeError(w, h.logger, h.development, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{"orderId": o.ID})
}

func (h *OrderHandler) SetReady(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())
	orderID := chi.URLParam(r, "orderId")

	o, err := h.svc.SetReady(r.Context(), identity, orderID)
	if err != nil {
		writeError(w, h.logger, h.development, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"orderId": o.ID, "ready": true})
}

func (h *OrderHandler) SetReceived(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())
	orderID := chi.URLParam(r, "orderId")

	o, err := h.svc.ConfirmCollected(r.Context(), identity, orderID)
	if err != nil {
		writeError(w, h.logger, h.development, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"orderId": o.ID, "received": true})
}

func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())
	if identity.UID == "" {
		writeError(w, h.logger, h.development, domain.Authorization("you are not signed in"))
		return
	}

	orders, err := h.svc.ListForClient(r.Context(), identity)
	if err != nil {
		writeError(w, h.logger, h.development, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *OrderHandler) ListForFoodtruck(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())
	foodtruckID := chi.URLParam(r, "foodtruckId")

	orders, err := h.svc.ListForFoodtruck(r.Context(), identity, foodtruckID)
	if err != nil {
		writeError(w, h.logger, h.development, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"orders": orders})
}
