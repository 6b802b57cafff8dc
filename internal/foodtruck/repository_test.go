package foodtruck

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LiamF-2261667/fruckr-sub001/internal/domain"
)

func TestPostgresRepository_GetMenuItem(t *testing.T) {
	t.Run("name matches case-insensitively", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, foodtruck_id, name, price FROM menu_items").
			WithArgs("ft-7", "tAcO").
			WillReturnRows(pgxmock.NewRows([]string{"id", "foodtruck_id", "name", "price"}).
				AddRow("mi-1", "ft-7", "Taco", 3.50))

		repo := NewPostgresRepository(mock)
		mi, err := repo.GetMenuItem(context.Background(), "ft-7", "tAcO")
		require.NoError(t, err)
		assert.Equal(t, "Taco", mi.Name)
		assert.Equal(t, 3.50, mi.Price)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing item is no data", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, foodtruck_id, name, price FROM menu_items").
			WithArgs("ft-7", "Sushi").
			WillReturnError(pgx.ErrNoRows)

		repo := NewPostgresRepository(mock)
		_, err = repo.GetMenuItem(context.Background(), "ft-7", "Sushi")
		assert.True(t, domain.IsKind(err, domain.KindNoData))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepository_RemoveWorker(t *testing.T) {
	t.Run("removes the membership", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM foodtruck_workers").
			WithArgs("ft-7", "worker-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := NewPostgresRepository(mock)
		require.NoError(t, repo.RemoveWorker(context.Background(), "ft-7", "worker-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown worker is no data", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM foodtruck_workers").
			WithArgs("ft-7", "ghost").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := NewPostgresRepository(mock)
		err = repo.RemoveWorker(context.Background(), "ft-7", "ghost")
		assert.True(t, domain.IsKind(err, domain.KindNoData))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
