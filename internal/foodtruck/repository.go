package foodtruck

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/LiamF-2261667/fruckr-sub001/internal/domain"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	GetFoodtruck(ctx context.Context, id string) (*Foodtruck, error)
	GetMenuItem(ctx context.Context, foodtruckID, name string) (*MenuItem, error)
	ListMenu(ctx context.Context, foodtruckID string) ([]MenuItem, error)
	ListWorkers(ctx context.Context, foodtruckID string) ([]Worker, error)
	AddWorker(ctx context.Context, w Worker) error
	RemoveWorker(ctx context.Context, foodtruckID, uid string) error
	HasMemberEmail(ctx context.Context, foodtruckID, email string) (bool, error)
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) GetFoodtruck(ctx context.Context, id string) (*Foodtruck, error) {
	var ft Foodtruck
	row := r.pool.QueryRow(ctx,
		`SELECT id, owner_uid, name, created_at FROM foodtrucks WHERE id=$1`, id)
	if err := row.Scan(&ft.ID, &ft.OwnerUID, &ft.Name, &ft.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NoData("foodtruck %s not found", id)
		}
		return nil, fmt.Errorf("select foodtruck: %w", err)
	}
	return &ft, nil
}

// GetMenuItem resolves a menu item by case-insensitive name.
func (r *PostgresRepository) GetMenuItem(ctx context.Context, foodtruckID, name string) (*MenuItem, error) {
	var mi MenuItem
	row := r.pool.QueryRow(ctx,
		`SELECT id, foodtruck_id, name, price FROM menu_items
         WHERE foodtruck_id=$1 AND lower(name)=lower($2)`,
		foodtruckID, name)
	if err := row.Scan(&mi.ID, &mi.FoodtruckID, &mi.Name, &mi.Price); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NoData("no menu item %q at this foodtruck", name)
		}
		return nil, fmt.Errorf("select menu item: %w", err)
	}
	return &mi, nil
}

func (r *PostgresRepository) ListMenu(ctx context.Context, foodtruckID string) ([]MenuItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, foodtruck_id, name, price FROM menu_items
         WHERE foodtruck_id=$1 ORDER BY name`, foodtruckID)
	if err != nil {
		return nil, fmt.Errorf("select menu items: %w", err)
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		var mi MenuItem
		if err := rows.Scan(&mi.ID, &mi.FoodtruckID, &mi.Name, &mi.Price); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, mi)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) ListWorkers(ctx context.Context, foodtruckID string) ([]Worker, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT uid, foodtruck_id, email, added_at FROM foodtruck_workers
         WHERE foodtruck_id=$1 ORDER BY added_at`, foodtruckID)
	if err != nil {
		return nil, fmt.Errorf("select workers: %w", err)
	}
	defer rows.Close()

	var workers []Worker
	for rows.Next() {
		var w Worker
		if err := rows.Scan(&w.UID, &w.FoodtruckID, &w.Email, &w.AddedAt); err != nil {
			return nil, fmt.Errorf("scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return workers, nil
}

// AddWorker is idempotent: re-adding an existing membership is a no-op so a
// replayed invitation acceptance can never duplicate it.
func (r *PostgresRepository) AddWorker(ctx context.Context, w Worker) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO foodtruck_workers (uid, foodtruck_id, email, added_at)
         VALUES ($1, $2, $3, now())
         ON CONFLICT (uid, foodtruck_id) DO NOTHING`,
		w.UID, w.FoodtruckID, w.Email)
	if err != nil {
		return fmt.Errorf("insert worker: %w", err)
	}
	return nil
}

func (r *PostgresRepository) RemoveWorker(ctx context.Context, foodtruckID, uid string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM foodtruck_workers WHERE foodtruck_id=$1 AND uid=$2`,
		foodtruckID, uid)
	if err != nil {
		return fmt.Errorf("delete worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NoData("no worker %s at this foodtruck", uid)
	}
	return nil
}

func (r *PostgresRepository) HasMemberEmail(ctx context.Context, foodtruckID, email string) (bool, error) {
	var exists bool
	row := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
            SELECT 1 FROM foodtruck_workers
            WHERE foodtruck_id=$1 AND lower(email)=lower($2)
         )`, foodtruckID, email)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("select member email: %w", err)
	}
	return exists, nil
}
