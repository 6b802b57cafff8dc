package invitation

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LiamF-2261667/fruckr-sub001/internal/auth"
	"github.com/LiamF-2261667/fruckr-sub001/internal/domain"
	"github.com/LiamF-2261667/fruckr-sub001/internal/foodtruck"
	"github.com/LiamF-2261667/fruckr-sub001/internal/session"
)

// memInvites mirrors the postgres repository's uniqueness and CAS rules.
type memInvites struct {
	byID map[string]*Invitation
	seq  int
}

func newMemInvites() *memInvites {
	return &memInvites{byID: make(map[string]*Invitation)}
}

func (r *memInvites) Create(ctx context.Context, inv *Invitation) error {
	for _, existing := range r.byID {
		if existing.FoodtruckID == inv.FoodtruckID &&
			strings.EqualFold(existing.InvitedEmail, inv.InvitedEmail) &&
			existing.Status == StatusPending {
			return domain.Invitation("an invitation for %s is already pending", inv.InvitedEmail)
		}
	}
	r.seq++
	if inv.ID == "" {
		inv.ID = strings.Repeat("0", r.seq) // distinct ids are all that matters
	}
	cp := *inv
	r.byID[inv.ID] = &cp
	return nil
}

func (r *memInvites) GetByToken(ctx context.Context, token string) (*Invitation, error) {
	for _, inv := range r.byID {
		if inv.Token == token {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, domain.NoData("invitation not found")
}

func (r *memInvites) Resolve(ctx context.Context, id string, to Status) error {
	inv, ok := r.byID[id]
	if !ok || inv.Status != StatusPending {
		return domain.Invitation("invitation has already been resolved")
	}
	inv.Status = to
	return nil
}

type fakeTrucks struct {
	truck        *foodtruck.Foodtruck
	workers      []foodtruck.Worker
	memberEmails map[string]bool
	removed      []string
	addWorkerErr error // returned by the next AddWorker call, then cleared
}

func newFakeTrucks() *fakeTrucks {
	return &fakeTrucks{
		truck:        &foodtruck.Foodtruck{ID: "ft-1", OwnerUID: "owner-1", Name: "Taco Truck"},
		memberEmails: make(map[string]bool),
	}
}

func (f *fakeTrucks) GetFoodtruck(ctx context.Context, id string) (*foodtruck.Foodtruck, error) {
	if id != f.truck.ID {
		return nil, domain.NoData("foodtruck %s not found", id)
	}
	return f.truck, nil
}

func (f *fakeTrucks) GetMenuItem(ctx context.Context, foodtruckID, name string) (*foodtruck.MenuItem, error) {
	return nil, domain.NoData("no menu item %q at this foodtruck", name)
}

func (f *fakeTrucks) ListMenu(ctx context.Context, foodtruckID string) ([]foodtruck.MenuItem, error) {
	return nil, nil
}

func (f *fakeTrucks) ListWorkers(ctx context.Context, foodtruckID string) ([]foodtruck.Worker, error) {
	return f.workers, nil
}

func (f *fakeTrucks) AddWorker(ctx context.Context, w foodtruck.Worker) error {
	if f.addWorkerErr != nil {
		err := f.addWorkerErr
		f.addWorkerErr = nil
		return err
	}
	for _, existing := range f.workers {
		if existing.UID == w.UID && existing.FoodtruckID == w.FoodtruckID {
			return nil // idempotent, like ON CONFLICT DO NOTHING
		}
	}
	f.workers = append(f.workers, w)
	f.memberEmails[strings.ToLower(w.Email)] = true
	return nil
}

func (f *fakeTrucks) RemoveWorker(ctx context.Context, foodtruckID, uid string) error {
	for i, w := range f.workers {
		if w.UID == uid && w.FoodtruckID == foodtruckID {
			f.workers = append(f.workers[:i], f.workers[i+1:]...)
			f.removed = append(f.removed, uid)
			return nil
		}
	}
	return domain.NoData("no worker %s at this foodtruck", uid)
}

func (f *fakeTrucks) HasMemberEmail(ctx context.Context, foodtruckID, email string) (bool, error) {
	return f.memberEmails[strings.ToLower(email)], nil
}

type fakeMailer struct {
	sent     int
	lastTo   string
	lastLink string
	err      error
}

func (f *fakeMailer) SendInvitation(ctx context.Context, toEmail, foodtruckName, link string) error {
	f.sent++
	f.lastTo = toEmail
	f.lastLink = link
	return f.err
}

type fakePublisher struct {
	created int
	err     error
}

func (f *fakePublisher) PublishInvitationCreated(ctx context.Context, inv *Invitation) error {
	f.created++
	return f.err
}

var (
	owner = auth.Identity{UID: "owner-1", Email: "owner@example.com"}
	bob   = auth.Identity{UID: "bob-uid", Email: "bob@example.com"}
)

type fixture struct {
	svc     *Service
	invites *memInvites
	trucks  *fakeTrucks
	mailer  *fakeMailer
	events  *fakePublisher
	store   *session.MemoryStore
}

func newFixture() *fixture {
	f := &fixture{
		invites: newMemInvites(),
		trucks:  newFakeTrucks(),
		mailer:  &fakeMailer{},
		events:  &fakePublisher{},
		store:   session.NewMemoryStore(),
	}
	logger := log.New(io.Discard, "", log.LstdFlags)
	f.svc = NewService(f.invites, f.trucks, f.store, f.mailer, f.events, "https://fruckr.be/", logger)
	return f
}

func TestCreate_OwnerInvitesByEmail(t *testing.T) {
	f := newFixture()

	res, err := f.svc.Create(context.Background(), owner, "ft-1", "bob@example.com")
	require.NoError(t, err)

	assert.Equal(t, StatusPending, res.Invitation.Status)
	assert.NotEmpty(t, res.Invitation.Token)
	assert.Equal(t, "https://fruckr.be/invitations/"+res.Invitation.Token, res.Link)
	assert.False(t, res.DeliveryFailed)
	assert.Equal(t, 1, f.mailer.sent)
	assert.Equal(t, "bob@example.com", f.mailer.lastTo)
	assert.Equal(t, res.Link, f.mailer.lastLink)
	assert.Equal(t, 1, f.events.created)
}

func TestCreate_NonOwnerRejected(t *testing.T) {
	f := newFixture()
	f.trucks.workers = []foodtruck.Worker{{UID: "worker-1", FoodtruckID: "ft-1", Email: "w@example.com"}}

	_, err := f.svc.Create(context.Background(), auth.Identity{UID: "worker-1"}, "ft-1", "bob@example.com")
	assert.True(t, domain.IsKind(err, domain.KindAuthorization))
	assert.Zero(t, f.mailer.sent)
}

func TestCreate_DuplicatePendingRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, owner, "ft-1", "bob@example.com")
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, owner, "ft-1", "Bob@Example.com")
	assert.True(t, domain.IsKind(err, domain.KindInvitation))
}

func TestCreate_ExistingWorkerRejected(t *testing.T) {
	f := newFixture()
	f.trucks.memberEmails["bob@example.com"] = true

	_, err := f.svc.Create(context.Background(), owner, "ft-1", "bob@example.com")
	assert.True(t, domain.IsKind(err, domain.KindInvitation))
}

func TestCreate_OwnEmailRejected(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), owner, "ft-1", "Owner@example.com")
	assert.True(t, domain.IsKind(err, domain.KindInvitation))
}

func TestCreate_InvalidEmailRejected(t *testing.T) {
	f := newFixture()

	for _, email := range []string{"", "   ", "not-an-email"} {
		_, err := f.svc.Create(context.Background(), owner, "ft-1", email)
		assert.True(t, domain.IsKind(err, domain.KindInvalidInput), "email %q", email)
	}
}

func TestCreate_MailFailureStillCreates(t *testing.T) {
	f := newFixture()
	f.mailer.err = errors.New("smtp unreachable")

	res, err := f.svc.Create(context.Background(), owner, "ft-1", "bob@example.com")
	require.NoError(t, err)

	assert.True(t, res.DeliveryFailed)
	assert.NotEmpty(t, res.Link)
	assert.Equal(t, StatusPending, res.Invitation.Status)

	// the pending invitation really persisted
	stored, err := f.invites.GetByToken(context.Background(), res.Invitation.Token)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, stored.Status)
}

func TestAccept_GrantsMembershipOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res, err := f.svc.Create(ctx, owner, "ft-1", "bob@example.com")
	require.NoError(t, err)

	inv, err := f.svc.Accept(ctx, bob, res.Invitation.Token)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, inv.Status)
	require.Len(t, f.trucks.workers, 1)
	assert.Equal(t, "bob-uid", f.trucks.workers[0].UID)
	assert.Equal(t, "ft-1", f.trucks.workers[0].FoodtruckID)

	// re-accepting fails and never duplicates the membership
	_, err = f.svc.Accept(ctx, bob, res.Invitation.Token)
	assert.True(t, domain.IsKind(err, domain.KindInvitation))
	assert.Len(t, f.trucks.workers, 1)
}

func TestAccept_RetryAfterMembershipFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res, err := f.svc.Create(ctx, owner, "ft-1", "bob@example.com")
	require.NoError(t, err)

	f.trucks.addWorkerErr = errors.New("connection reset")
	_, err = f.svc.Accept(ctx, bob, res.Invitation.Token)
	require.Error(t, err)
	assert.Empty(t, f.trucks.workers)

	// the failed attempt must not resolve the invitation
	inv, err := f.svc.Get(ctx, res.Invitation.Token)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, inv.Status)

	// so a retry can still succeed
	inv, err = f.svc.Accept(ctx, bob, res.Invitation.Token)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, inv.Status)
	require.Len(t, f.trucks.workers, 1)
	assert.Equal(t, "bob-uid", f.trucks.workers[0].UID)
}

func TestAccept_WrongEmailRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res, err := f.svc.Create(ctx, owner, "ft-1", "bob@example.com")
	require.NoError(t, err)

	mallory := auth.Identity{UID: "mallory", Email: "mallory@example.com"}
	_, err = f.svc.Accept(ctx, mallory, res.Invitation.Token)
	assert.True(t, domain.IsKind(err, domain.KindInvitation))
	assert.Empty(t, f.trucks.workers)

	// invitation still pending for the real invitee
	inv, err := f.svc.Get(ctx, res.Invitation.Token)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, inv.Status)
}

func TestAccept_UnknownTokenRejected(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Accept(context.Background(), bob, "no-such-token")
	assert.True(t, domain.IsKind(err, domain.KindInvitation))
}

func TestDecline_NoMembershipGranted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res, err := f.svc.Create(ctx, owner, "ft-1", "bob@example.com")
	require.NoError(t, err)

	inv, err := f.svc.Decline(ctx, bob, res.Invitation.Token)
	require.NoError(t, err)
	assert.Equal(t, StatusDeclined, inv.Status)
	assert.Empty(t, f.trucks.workers)

	// terminal after decline too
	_, err = f.svc.Accept(ctx, bob, res.Invitation.Token)
	assert.True(t, domain.IsKind(err, domain.KindInvitation))
}

func TestRemoveWorker(t *testing.T) {
	ctx := context.Background()

	t.Run("owner removes a worker", func(t *testing.T) {
		f := newFixture()
		f.trucks.workers = []foodtruck.Worker{{UID: "bob-uid", FoodtruckID: "ft-1", Email: "bob@example.com"}}

		require.NoError(t, f.svc.RemoveWorker(ctx, owner, "ft-1", "bob-uid"))
		assert.Empty(t, f.trucks.workers)
	})

	t.Run("owner membership cannot be removed", func(t *testing.T) {
		f := newFixture()

		err := f.svc.RemoveWorker(ctx, owner, "ft-1", "owner-1")
		assert.True(t, domain.IsKind(err, domain.KindInvitation))
	})

	t.Run("unknown worker is no data", func(t *testing.T) {
		f := newFixture()

		err := f.svc.RemoveWorker(ctx, owner, "ft-1", "ghost")
		assert.True(t, domain.IsKind(err, domain.KindNoData))
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		f := newFixture()
		f.trucks.workers = []foodtruck.Worker{{UID: "bob-uid", FoodtruckID: "ft-1", Email: "bob@example.com"}}

		err := f.svc.RemoveWorker(ctx, bob, "ft-1", "bob-uid")
		assert.True(t, domain.IsKind(err, domain.KindAuthorization))
		assert.Len(t, f.trucks.workers, 1)
	})
}
