package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Foodtruck *FoodtruckHandler
	Cart      *CartHandler
	Order     *OrderHandler
	Staff     *StaffHandler
}

func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(WithIdentity)

	r.Get("/health", health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/foodtrucks/{foodtruckId}", func(r chi.Router) {
			r.Get("/", h.Foodtruck.Get)
			r.Post("/cart/items", h.Cart.AddItem)
			r.Get("/orders", h.Order.ListForFoodtruck)
			r.Post("/workers", h.Staff.AddWorker)
			r.Delete("/workers/{uid}", h.Staff.RemoveWorker)
		})

		r.Get("/cart", h.Cart.GetCart)
		r.Delete("/cart/items", h.Cart.RemoveItem)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.Order.Create)
			r.Get("/", h.Order.ListMine)
			r.Post("/{orderId}/ready", h.Order.SetReady)
			r.Post("/{orderId}/received", h.Order.SetReceived)
		})

		r.Route("/invitations/{token}", func(r chi.Router) {
			r.Get("/", h.Staff.GetInvitation)
			r.Post("/accept", h.Staff.AcceptInvitation)
			r.Post("/decline", h.Staff.DeclineInvitation)
		})
	})

	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "fruckr-api"})
}
