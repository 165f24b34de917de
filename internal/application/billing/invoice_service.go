package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/venturehub/backend/internal/domain/billing"
	"github.com/venturehub/backend/internal/domain/shared"
	"github.com/venturehub/backend/internal/domain/shared/valueobject"
)

// InvoiceService manages invoices raised outside the booking flow,
// e.g. membership charges, and exposes the shared read side
type InvoiceService struct {
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(txScope TransactionScope, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		txScope: txScope,
		logger:  logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *InvoiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateInvoice raises a new draft invoice
func (s *InvoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	billable := billing.Billable{Kind: billing.BillableKind(req.BillableKind), ID: req.BillableID}

	var response InvoiceResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := billing.NewInvoice(newInvoiceNumber(), billable, req.Origin,
			req.TaxRate, valueobject.Currency(req.Currency))
		if err != nil {
			return err
		}
		if err := repos.InvoiceRepo().Save(ctx, invoice); err != nil {
			return err
		}
		if err := shared.RecordStatusChanges(ctx, repos.HistoryRepo(), invoice); err != nil {
			return err
		}
		response = ToInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// AddLineItem appends a billed position to a draft invoice
func (s *InvoiceService) AddLineItem(ctx context.Context, invoiceID uuid.UUID, req AddLineItemRequest) (*InvoiceResponse, error) {
	return s.apply(ctx, invoiceID, func(invoice *billing.Invoice) error {
		return invoice.AddLineItem(req.Description, req.Quantity, req.UnitPrice)
	})
}

// SendInvoice issues a draft invoice to its billable party
func (s *InvoiceService) SendInvoice(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.apply(ctx, invoiceID, func(invoice *billing.Invoice) error {
		return invoice.Send()
	})
}

// CancelInvoice voids a draft or sent invoice
func (s *InvoiceService) CancelInvoice(ctx context.Context, invoiceID uuid.UUID, req CancelInvoiceRequest) (*InvoiceResponse, error) {
	return s.apply(ctx, invoiceID, func(invoice *billing.Invoice) error {
		return invoice.Cancel(req.Notes)
	})
}

// GetInvoice loads one invoice
func (s *InvoiceService) GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	var response InvoiceResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		response = ToInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetInvoiceByNumber loads one invoice by its human-facing number
func (s *InvoiceService) GetInvoiceByNumber(ctx context.Context, number string) (*InvoiceResponse, error) {
	var response InvoiceResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByNumber(ctx, number)
		if err != nil {
			return err
		}
		response = ToInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// ListInvoices lists invoices with pagination
func (s *InvoiceService) ListInvoices(ctx context.Context, filter shared.Filter) (*shared.Paginated[InvoiceResponse], error) {
	var page shared.Paginated[InvoiceResponse]
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoices, err := repos.InvoiceRepo().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		total, err := repos.InvoiceRepo().Count(ctx, filter)
		if err != nil {
			return err
		}
		responses := make([]InvoiceResponse, len(invoices))
		for i := range invoices {
			responses[i] = ToInvoiceResponse(&invoices[i])
		}
		page = shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// GetInvoiceHistory returns the audit trail of one invoice
func (s *InvoiceService) GetInvoiceHistory(ctx context.Context, invoiceID uuid.UUID) ([]shared.StatusHistoryEntry, error) {
	var entries []shared.StatusHistoryEntry
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.InvoiceRepo().FindByID(ctx, invoiceID); err != nil {
			return err
		}
		var err error
		entries, err = repos.HistoryRepo().FindByEntity(ctx, shared.EntityTypeInvoice, invoiceID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *InvoiceService) apply(ctx context.Context, invoiceID uuid.UUID, fn func(invoice *billing.Invoice) error) (*InvoiceResponse, error) {
	var response InvoiceResponse
	var events []shared.DomainEvent

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if err := fn(invoice); err != nil {
			return err
		}
		if err := repos.InvoiceRepo().Save(ctx, invoice); err != nil {
			return err
		}
		if err := shared.RecordStatusChanges(ctx, repos.HistoryRepo(), invoice); err != nil {
			return err
		}

		response = ToInvoiceResponse(invoice)
		events = invoice.GetDomainEvents()
		invoice.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)

	return &response, nil
}

func (s *InvoiceService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err), zap.Int("count", len(events)))
	}
}

func newInvoiceNumber() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("INV-%d-%s", time.Now().Year(), strings.ToUpper(raw[:10]))
}
