package invitation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/LiamF-2261667/fruckr-sub001/internal/domain"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	// Create persists a pending invitation. The storage layer enforces at
	// most one pending invitation per (foodtruck, email); a racing duplicate
	// insert fails here with an invitation error.
	Create(ctx context.Context, inv *Invitation) error
	GetByToken(ctx context.Context, token string) (*Invitation, error)
	// Resolve advances the invitation from pending to the terminal status.
	// Compare-and-swap: zero affected rows means it was missing or already
	// resolved.
	Resolve(ctx context.Context, id string, to Status) error
}

const uniqueViolation = "23505"

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, inv *Invitation) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO work_invitations (id, foodtruck_id, invited_email, status, token, created_at)
         VALUES ($1, $2, $3, $4, $5, $6)`,
		inv.ID, inv.FoodtruckID, inv.InvitedEmail, inv.Status, inv.Token, inv.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.Invitation("an invitation for %s is already pending", inv.InvitedEmail)
		}
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByToken(ctx context.Context, token string) (*Invitation, error) {
	var inv Invitation
	row := r.pool.QueryRow(ctx,
		`SELECT id, foodtruck_id, invited_email, status, token, created_at
         FROM work_invitations WHERE token=$1`, token)
	err := row.Scan(&inv.ID, &inv.FoodtruckID, &inv.InvitedEmail, &inv.Status, &inv.Token, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NoData("invitation not found")
		}
		return nil, fmt.Errorf("select invitation: %w", err)
	}
	return &inv, nil
}

func (r *PostgresRepository) Resolve(ctx context.Context, id string, to Status) error {
	if to != StatusAccepted && to != StatusDeclined {
		return domain.Invitation("invalid resolution %s", to)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE work_invitations SET status=$2 WHERE id=$1 AND status=$3`,
		id, to, StatusPending)
	if err != nil {
		return fmt.Errorf("resolve invitation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Invitation("invitation has already been resolved")
	}
	return nil
}
