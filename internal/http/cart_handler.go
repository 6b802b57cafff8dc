package httpapi

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/LiamF-2261667/fruckr-sub001/internal/cart"
	"github.com/LiamF-2261667/fruckr-sub001/internal/domain"
	"github.com/LiamF-2261667/fruckr-sub001/internal/foodtruck"
	"github.com/LiamF-2261667/fruckr-sub001/internal/session"
)

// CartHandler mutates the caller's session cart. Menu lookups go through the
// foodtruck repository so the cart only ever holds real menu items at their
// current price.
type CartHandler struct {
	trucks      foodtruck.Repository
	sessions    session.Store
	logger      *log.Logger
	development bool
}

func NewCartHandler(trucks foodtruck.Repository, sessions session.Store, logger *log.Logger, development bool) *CartHandler {
	return &CartHandler{trucks: trucks, sessions: sessions, logger: logger, development: development}
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())
	if identity.UID == "" {
		writeError(w, h.logger, h.development, domain.Authorization("you are not signed in"))
		return
	}
	foodtruckID := chi.URLParam(r, "foodtruckId")

	var body struct {
		FoodName string `json:"foodName"`
		Amount   int    `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, h.logger, h.development, domain.InvalidInput("invalid json body"))
		return
	}

	item, err := h.trucks.GetMenuItem(r.Context(), foodtruckID, body.FoodName)
	if err != nil {
		writeError(w, h.logger, h.development, err)
		return
	}

	c, err := h.loadCart(r, identity.UID)
	if err != nil {
		writeError(w, h.logger, h.development, err)
		return
	}
	err = c.AddItem(foodtruckID, cart.Item{Name: item.Name, Quantity: body.Amount, Price: item.Price})
	if err != nil {
		writeError(w, h.logger, h.development, err)
		return
	}
	if err := h.sessions.SaveCart(r.Context(), identity.UID, c); err != nil {
		writeError(w, h.logger, h.development, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"foodItemName": item.Name,
		"amount":       body.Amount,
	})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())
	if identity.UID == "" {
		writeError(w, h.logger, h.development, domain.Authorization("you are not signed in"))
		return
	}

	var body struct {
		CartItemName string `json:"cartItemName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, h.logger, h.development, domain.InvalidInput("invalid json body"))
		return
	}

	c, err := h.loadCart(r, identity.UID)
	if err != nil {
		writeError(w, h.logger, h.development, err)
		return
	}
	if err := c.RemoveItem(body.CartItemName); err != nil {
		writeError(w, h.logger, h.development, err)
		return
	}
	if err := h.sessions.SaveCart(r.Context(), identity.UID, c); err != nil {
		writeError(w, h.logger, h.development, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"cartItemName":   body.CartItemName,
		"totalPrice":     c.TotalPrice(),
		"totalItemCount": c.TotalItemCount(),
	})
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())
	if identity.UID == "" {
		writeError(w, h.logger, h.development, domain.Authorization("you are not signed in"))
		return
	}

	c, err := h.loadCart(r, identity.UID)
	if err != nil {
		writeError(w, h.logger, h.development, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"foodtruckId":    c.FoodtruckID,
		"items":          c.Items,
		"totalPrice":     c.TotalPrice(),
		"totalItemCount": c.TotalItemCount(),
		"formattedTotal": c.FormattedTotal(),
	})
}

func (h *CartHandler) loadCart(r *http.Request, uid string) (*cart.Cart, error) {
	c, err := h.sessions.LoadCart(r.Context(), uid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = cart.New()
	}
	return c, nil
}
