package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
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
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, orderID string) (*Order, error)
	ListByFoodtruck(ctx context.Context, foodtruckID string) ([]Order, error)
	ListByClient(ctx context.Context, clientUID string) ([]Order, error)
	// UpdateStatus advances the order from exactly the given state. It is a
	// compare-and-swap: zero affected rows means the order was missing or no
	// longer in `from`, and no mutation happened.
	UpdateStatus(ctx context.Context, orderID string, from, to Status, byUID string, at time.Time) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, foodtruck_id, client_uid, status, city, street, postal, house_nr, bus, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		o.ID, o.FoodtruckID, o.ClientUID, o.Status,
		o.Address.City, o.Address.Street, o.Address.Postal, o.Address.HouseNr, o.Address.Bus,
		o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range o.Items {
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (id, order_id, name, quantity, price)
             VALUES ($1, $2, $3, $4, $5)`,
			uuid.NewString(), o.ID, it.Name, it.Quantity, it.Price,
		)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	var o Order
	var readyBy, collectedBy *string
	row := r.pool.QueryRow(ctx,
		`SELECT id, foodtruck_id, client_uid, status, city, street, postal, house_nr, bus,
                ready_by_uid, collected_by_uid, created_at, ready_at, collected_at
         FROM orders WHERE id=$1`, orderID)
	err := row.Scan(&o.ID, &o.FoodtruckID, &o.ClientUID, &o.Status,
		&o.Address.City, &o.Address.Street, &o.Address.Postal, &o.Address.HouseNr, &o.Address.Bus,
		&readyBy, &collectedBy, &o.CreatedAt, &o.ReadyAt, &o.CollectedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NoData("order %s not found", orderID)
		}
		return nil, fmt.Errorf("select order: %w", err)
	}
	if readyBy != nil {
		o.ReadyByUID = *readyBy
	}
	if collectedBy != nil {
		o.CollectedByUID = *collectedBy
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *PostgresRepository) loadItems(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT name, quantity, price FROM order_items WHERE order_id=$1`, orderID)
	if err != nil {
		return nil, fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.Name, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan order_item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) ListByFoodtruck(ctx context.Context, foodtruckID string) ([]Order, error) {
	return r.list(ctx, `foodtruck_id`, foodtruckID)
}

func (r *PostgresRepository) ListByClient(ctx context.Context, clientUID string) ([]Order, error) {
	return r.list(ctx, `client_uid`, clientUID)
}

func (r *PostgresRepository) list(ctx context.Context, column, value string) ([]Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, foodtruck_id, client_uid, status, city, street, postal, house_nr, bus,
                ready_by_uid, collected_by_uid, created_at, ready_at, collected_at
         FROM orders WHERE `+column+`=$1 ORDER BY created_at DESC`, value)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		var readyBy, collectedBy *string
		err := rows.Scan(&o.ID, &o.FoodtruckID, &o.ClientUID, &o.Status,
			&o.Address.City, &o.Address.Street, &o.Address.Postal, &o.Address.HouseNr, &o.Address.Bus,
			&readyBy, &collectedBy, &o.CreatedAt, &o.ReadyAt, &o.CollectedAt)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if readyBy != nil {
			o.ReadyByUID = *readyBy
		}
		if collectedBy != nil {
			o.CollectedByUID = *collectedBy
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, orderID string, from, to Status, byUID string, at time.Time) error {
	if !from.CanTransitionTo(to) {
		return domain.InvalidOrder("cannot move order from %s to %s", from, to)
	}

	var tag pgconn.CommandTag
	var err error
	switch to {
	case StatusReady:
		tag, err = r.pool.Exec(ctx,
			`UPDATE orders SET status=$3, ready_by_uid=$4, ready_at=$5
             WHERE id=$1 AND status=$2`,
			orderID, from, to, byUID, at)
	case StatusCollected:
		tag, err = r.pool.Exec(ctx,
			`UPDATE orders SET status=$3, collected_by_uid=$4, collected_at=$5
             WHERE id=$1 AND status=$2`,
			orderID, from, to, byUID, at)
	default:
		return domain.InvalidOrder("unknown target status %s", to)
	}
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.InvalidOrder("order %s is not in %s state", orderID, from)
	}
	return nil
}
