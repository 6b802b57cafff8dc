package invitation

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/LiamF-2261667/fruckr-sub001/internal/auth"
	"github.com/LiamF-2261667/fruckr-sub001/internal/domain"
	"github.com/LiamF-2261667/fruckr-sub001/internal/foodtruck"
	"github.com/LiamF-2261667/fruckr-sub001/internal/session"
)

// Mailer delivers the invitation link to the invited party.
type Mailer interface {
	SendInvitation(ctx context.Context, toEmail, foodtruckName, link string) error
}

type Publisher interface {
	PublishInvitationCreated(ctx context.Context, inv *Invitation) error
}

// CreateResult is what invitation creation hands back to the caller. When
// email delivery failed the invitation still exists and Link can be shared
// manually.
type CreateResult struct {
	Invitation     *Invitation
	Link           string
	DeliveryFailed bool
}

type Service struct {
	invites  Repository
	trucks   foodtruck.Repository
	sessions session.Store
	mailer   Mailer
	events   Publisher
	baseURL  string
	logger   *log.Logger
}

func NewService(invites Repository, trucks foodtruck.Repository, sessions session.Store, mailer Mailer, events Publisher, baseURL string, logger *log.Logger) *Service {
	return &Service{
		invites:  invites,
		trucks:   trucks,
		sessions: sessions,
		mailer:   mailer,
		events:   events,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
	}
}

// Create issues a pending invitation for email on the given foodtruck.
// Owner only. The email must not already belong to a member, and at most one
// pending invitation per (foodtruck, email) exists; the storage layer
// enforces that against concurrent submissions.
func (s *Service) Create(ctx context.Context, identity auth.Identity, foodtruckID, email string) (*CreateResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.InvalidInput("a valid email address is required")
	}

	ft, err := s.trucks.GetFoodtruck(ctx, foodtruckID)
	if err != nil {
		return nil, err
	}
	workers, err := s.trucks.ListWorkers(ctx, foodtruckID)
	if err != nil {
		return nil, err
	}
	if err := auth.CanActOnFoodtruck(identity, ft, workers, auth.RoleOwner); err != nil {
		return nil, err
	}

	if strings.EqualFold(email, identity.Email) {
		return nil, domain.Invitation("%s already owns this foodtruck", email)
	}
	isMember, err := s.trucks.HasMemberEmail(ctx, foodtruckID, email)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, domain.Invitation("%s already works at this foodtruck", email)
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}
	inv := &Invitation{
		FoodtruckID:  foodtruckID,
		InvitedEmail: email,
		Status:       StatusPending,
		Token:        token,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.invites.Create(ctx, inv); err != nil {
		return nil, err
	}

	res := &CreateResult{Invitation: inv, Link: s.link(token)}

	// Delivery failure is not a creation failure: the invitation stands and
	// the link is surfaced so it can be shared manually.
	if err := s.mailer.SendInvitation(ctx, email, ft.Name, res.Link); err != nil {
		res.DeliveryFailed = true
		s.logger.Printf("invitation %s: %v", inv.ID, domain.NotificationDelivery(err))
	}

	if err := s.events.PublishInvitationCreated(ctx, inv); err != nil {
		s.logger.Printf("publish invitation created %s: %v", inv.ID, err)
	}
	return res, nil
}

// Get resolves an invitation by its token, for the accept/decline page.
func (s *Service) Get(ctx context.Context, token string) (*Invitation, error) {
	inv, err := s.invites.GetByToken(ctx, token)
	if err != nil {
		if domain.IsKind(err, domain.KindNoData) {
			return nil, domain.Invitation("invitation not found")
		}
		return nil, err
	}
	return inv, nil
}

// Accept resolves the invitation and grants worker membership. The acting
// email must match the invited one; resolution happens exactly once.
func (s *Service) Accept(ctx context.Context, identity auth.Identity, token string) (*Invitation, error) {
	inv, err := s.resolvable(ctx, identity, token)
	if err != nil {
		return nil, err
	}

	// Membership before resolution: AddWorker is idempotent, so if the
	// resolve below fails the invitation stays pending and a retry
	// converges instead of stranding an accepted-but-memberless invitee.
	err = s.trucks.AddWorker(ctx, foodtruck.Worker{
		UID:         identity.UID,
		FoodtruckID: inv.FoodtruckID,
		Email:       inv.InvitedEmail,
	})
	if err != nil {
		return nil, err
	}

	if err := s.invites.Resolve(ctx, inv.ID, StatusAccepted); err != nil {
		return nil, err
	}
	inv.Status = StatusAccepted

	// Drop any cached foodtruck context so the new role is picked up on the
	// next request.
	if err := s.sessions.DeleteValue(ctx, identity.UID, session.KeyCurrentFoodtruck); err != nil {
		s.logger.Printf("refresh session for %s: %v", identity.UID, err)
	}
	return inv, nil
}

// Decline resolves the invitation without granting membership.
func (s *Service) Decline(ctx context.Context, identity auth.Identity, token string) (*Invitation, error) {
	inv, err := s.resolvable(ctx, identity, token)
	if err != nil {
		return nil, err
	}
	if err := s.invites.Resolve(ctx, inv.ID, StatusDeclined); err != nil {
		return nil, err
	}
	inv.Status = StatusDeclined
	return inv, nil
}

// RemoveWorker deletes a worker membership. Owner only; the owner's own
// membership is implicit and cannot be removed here.
func (s *Service) RemoveWorker(ctx context.Context, identity auth.Identity, foodtruckID, targetUID string) error {
	if targetUID == "" {
		return domain.InvalidInput("worker uid is required")
	}

	ft, err := s.trucks.GetFoodtruck(ctx, foodtruckID)
	if err != nil {
		return err
	}
	workers, err := s.trucks.ListWorkers(ctx, foodtruckID)
	if err != nil {
		return err
	}
	if err := auth.CanActOnFoodtruck(identity, ft, workers, auth.RoleOwner); err != nil {
		return err
	}

	if targetUID == ft.OwnerUID {
		return domain.Invitation("the owner cannot be removed from their own foodtruck")
	}
	return s.trucks.RemoveWorker(ctx, foodtruckID, targetUID)
}

func (s *Service) resolvable(ctx context.Context, identity auth.Identity, token string) (*Invitation, error) {
	inv, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if inv.Status != StatusPending {
		return nil, domain.Invitation("invitation has already been resolved")
	}
	if !strings.EqualFold(identity.Email, inv.InvitedEmail) {
		return nil, domain.Invitation("this invitation was issued to a different email address")
	}
	return inv, nil
}

func (s *Service) link(token string) string {
	return fmt.Sprintf("%s/invitations/%s", s.baseURL, token)
}

// newToken returns 32 random bytes hex-encoded, used as the unguessable
// invitation resolution token.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
