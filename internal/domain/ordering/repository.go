package ordering

import (
	"context"

	"github.com/venturehub/backend/internal/domain/shared"
)

// OrderRepository persists Order aggregates
type OrderRepository interface {
	shared.Repository[Order]
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	// SaveWithLock saves with an optimistic version check
	SaveWithLock(ctx context.Context, order *Order, expectedVersion int) error
}
