package httpapi

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/LiamF-2261667/fruckr-sub001/internal/foodtruck"
)

// FoodtruckHandler serves the public foodtruck page data.
type FoodtruckHandler struct {
	trucks      foodtruck.Repository
	logger      *log.Logger
	development bool
}

func NewFoodtruckHandler(trucks foodtruck.Repository, logger *log.Logger, development bool) *FoodtruckHandler {
	return &FoodtruckHandler{trucks: trucks, logger: logger, development: development}
}

func (h *FoodtruckHandler) Get(w http.ResponseWriter, r *http.Request) {
	foodtruckID := chi.URLParam(r, "foodtruckId")

	ft, err := h.trucks.GetFoodtruck(r.Context(), foodtruckID)
	if err != nil {
		writeError(w, h.logger, h.development, err)
		return
	}
	menu, err := h.trucks.ListMenu(r.Context(), foodtruckID)
	if err != nil {
		writeError(w, h.logger, h.development, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"foodtruck": ft,
		"menu":      menu,
	})
}
