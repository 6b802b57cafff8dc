package order

import (
	"context"
	"log"
	"time"

	"github.com/LiamF-2261667/fruckr-sub001/internal/auth"
	"github.com/LiamF-2261667/fruckr-sub001/internal/domain"
	"github.com/LiamF-2261667/fruckr-sub001/internal/foodtruck"
	"github.com/LiamF-2261667/fruckr-sub001/internal/session"
)

// Card carries the checkout payment details. There is no real gateway;
// the details are validated structurally and then discarded.
type Card struct {
	Number         string
	ExpirationDate string
	Holder         string
}

// Publisher emits order lifecycle events. Failures are logged, never
// surfaced: event delivery must not fail the request.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, o *Order) error
	PublishOrderReady(ctx context.Context, o *Order) error
	PublishOrderCollected(ctx context.Context, o *Order) error
}

// Service is the order workflow: it converts carts into immutable orders and
// advances them through the fulfillment state machine.
type Service struct {
	orders   Repository
	trucks   foodtruck.Repository
	sessions session.Store
	events   Publisher
	logger   *log.Logger
}

func NewService(orders Repository, trucks foodtruck.Repository, sessions session.Store, events Publisher, logger *log.Logger) *Service {
	return &Service{orders: orders, trucks: trucks, sessions: sessions, events: events, logger: logger}
}

// Checkout turns the caller's session cart into a placed order. Unit prices
// are re-resolved from the menu at this moment and snapshotted into the
// order. The session cart is cleared only after the order is persisted.
func (s *Service) Checkout(ctx context.Context, identity auth.Identity, address Address, card Card) (*Order, error) {
	if err := chargeCard(card); err != nil {
		return nil, err
	}
	if !address.Valid() {
		return nil, domain.InvalidOrder("delivery address is incomplete")
	}

	c, err := s.sessions.LoadCart(ctx, identity.UID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsEmpty() {
		return nil, domain.InvalidOrder("cart is empty")
	}

	o := &Order{
		FoodtruckID: c.FoodtruckID,
		ClientUID:   identity.UID,
		Address:     address,
		Status:      StatusPlaced,
		CreatedAt:   time.Now().UTC(),
	}
	for _, it := range c.Items {
		mi, err := s.trucks.GetMenuItem(ctx, c.FoodtruckID, it.Name)
		if err != nil {
			if domain.IsKind(err, domain.KindNoData) {
				return nil, domain.InvalidOrder("item %q is no longer on the menu", it.Name)
			}
			return nil, err
		}
		o.Items = append(o.Items, Item{Name: mi.Name, Quantity: it.Quantity, Price: mi.Price})
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	if err := s.sessions.DeleteCart(ctx, identity.UID); err != nil {
		s.logger.Printf("clear cart after checkout for %s: %v", identity.UID, err)
	}
	if err := s.sessions.SetValue(ctx, identity.UID, session.KeyCurrentOrder, o.ID); err != nil {
		s.logger.Printf("store current order for %s: %v", identity.UID, err)
	}

	if err := s.events.PublishOrderPlaced(ctx, o); err != nil {
		s.logger.Printf("publish order placed %s: %v", o.ID, err)
	}
	return o, nil
}

// SetReady moves a placed order to ready. Only staff of the order's
// foodtruck may do this; a second call fails because the order already left
// the placed state.
func (s *Service) SetReady(ctx context.Context, identity auth.Identity, orderID string) (*Order, error) {
	o, err := s.authorizedOrder(ctx, identity, orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.orders.UpdateStatus(ctx, o.ID, StatusPlaced, StatusReady, identity.UID, now); err != nil {
		return nil, err
	}
	o.Status = StatusReady
	o.ReadyByUID = identity.UID
	o.ReadyAt = &now

	if err := s.events.PublishOrderReady(ctx, o); err != nil {
		s.logger.Printf("publish order ready %s: %v", o.ID, err)
	}
	return o, nil
}

// ConfirmCollected moves a ready order to collected. Collecting straight
// from placed is rejected as a skipped state.
func (s *Service) ConfirmCollected(ctx context.Context, identity auth.Identity, orderID string) (*Order, error) {
	o, err := s.authorizedOrder(ctx, identity, orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.orders.UpdateStatus(ctx, o.ID, StatusReady, StatusCollected, identity.UID, now); err != nil {
		return nil, err
	}
	o.Status = StatusCollected
	o.CollectedByUID = identity.UID
	o.CollectedAt = &now

	if err := s.events.PublishOrderCollected(ctx, o); err != nil {
		s.logger.Printf("publish order collected %s: %v", o.ID, err)
	}
	return o, nil
}

// GetForClient returns one of the caller's own orders.
func (s *Service) GetForClient(ctx context.Context, identity auth.Identity, orderID string) (*Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.ClientUID != identity.UID {
		return nil, domain.Authorization("this order belongs to another client")
	}
	return o, nil
}

func (s *Service) ListForClient(ctx context.Context, identity auth.Identity) ([]Order, error) {
	return s.orders.ListByClient(ctx, identity.UID)
}

// ListForFoodtruck returns all orders for a foodtruck; staff only.
func (s *Service) ListForFoodtruck(ctx context.Context, identity auth.Identity, foodtruckID string) ([]Order, error) {
	ft, err := s.trucks.GetFoodtruck(ctx, foodtruckID)
	if err != nil {
		return nil, err
	}
	workers, err := s.trucks.ListWorkers(ctx, foodtruckID)
	if err != nil {
		return nil, err
	}
	if err := auth.CanActOnFoodtruck(identity, ft, workers, auth.RoleWorker); err != nil {
		return nil, err
	}
	return s.orders.ListByFoodtruck(ctx, foodtruckID)
}

// authorizedOrder loads the order and checks the caller is staff of its
// foodtruck. A missing order surfaces as an invalid-order failure.
func (s *Service) authorizedOrder(ctx context.Context, identity auth.Identity, orderID string) (*Order, error) {
	if orderID == "" {
		return nil, domain.InvalidInput("order id is required")
	}
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if domain.IsKind(err, domain.KindNoData) {
			return nil, domain.InvalidOrder("order %s not found", orderID)
		}
		return nil, err
	}

	ft, err := s.trucks.GetFoodtruck(ctx, o.FoodtruckID)
	if err != nil {
		return nil, err
	}
	workers, err := s.trucks.ListWorkers(ctx, o.FoodtruckID)
	if err != nil {
		return nil, err
	}
	if err := auth.CanActOnFoodtruck(identity, ft, workers, auth.RoleWorker); err != nil {
		return nil, err
	}
	return o, nil
}

// chargeCard is a stand-in for a payment gateway call. It only checks the
// details are present.
func chargeCard(card Card) error {
	if card.Number == "" || card.ExpirationDate == "" || card.Holder == "" {
		return domain.InvalidInput("card number, expiration date and card holder are required")
	}
	return nil
}
