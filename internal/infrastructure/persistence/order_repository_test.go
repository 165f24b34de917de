package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/venturehub/backend/internal/domain/ordering"
	"github.com/venturehub/backend/internal/domain/shared"
)

func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormOrderRepository(gormDB), mock, mockDB
}

func orderRows(orderID uuid.UUID, now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "version",
		"order_number", "customer_id", "customer_name", "total_amount",
		"status", "previous_status", "tracking_code",
		"paid_at", "shipped_at", "delivered_at", "completed_at",
		"cancelled_at", "refunded_at", "cancel_reason",
	}).AddRow(
		orderID, now, now, 1,
		"ORD-1001", uuid.New(), "Acme GmbH", "120.00",
		"PENDING", nil, "",
		nil, nil, nil, nil,
		nil, nil, "",
	)
}

func TestGormOrderRepository_FindByOrderNumber(t *testing.T) {
	t.Run("finds existing order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE order_number = \$1`).
			WithArgs("ORD-1001", 1).
			WillReturnRows(orderRows(orderID, time.Now()))

		order, err := repo.FindByOrderNumber(context.Background(), "ORD-1001")
		require.NoError(t, err)
		assert.Equal(t, orderID, order.ID)
		assert.Equal(t, ordering.OrderStatusPending, order.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE order_number = \$1`).
			WithArgs("ORD-NOPE", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByOrderNumber(context.Background(), "ORD-NOPE")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormOrderRepository_SaveWithLock(t *testing.T) {
	t.Run("updates row carrying the expected version", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		order := mustNewOrder(t)

		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), order, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, order.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns conflict when the row moved underneath", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		order := mustNewOrder(t)

		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), order, 1)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func mustNewOrder(t *testing.T) *ordering.Order {
	t.Helper()
	order, err := ordering.NewOrder("ORD-1001", uuid.New(), "Acme GmbH", decimal.RequireFromString("120.00"))
	require.NoError(t, err)
	return order
}
