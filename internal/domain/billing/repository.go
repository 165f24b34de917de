package billing

import (
	"context"

	"github.com/venturehub/backend/internal/domain/shared"
)

// InvoiceRepository persists Invoice aggregates
type InvoiceRepository interface {
	shared.Repository[Invoice]
	FindByNumber(ctx context.Context, number string) (*Invoice, error)
	FindByGatewayRef(ctx context.Context, ref string) (*Invoice, error)
}
