package persistence

import (
	"context"

	"gorm.io/gorm"

	appbilling "github.com/venturehub/backend/internal/application/billing"
	appincubation "github.com/venturehub/backend/internal/application/incubation"
	appmentorship "github.com/venturehub/backend/internal/application/mentorship"
	appordering "github.com/venturehub/backend/internal/application/ordering"
	appticketing "github.com/venturehub/backend/internal/application/ticketing"
	"github.com/venturehub/backend/internal/domain/billing"
	"github.com/venturehub/backend/internal/domain/incubation"
	"github.com/venturehub/backend/internal/domain/mentorship"
	"github.com/venturehub/backend/internal/domain/ordering"
	"github.com/venturehub/backend/internal/domain/shared"
	"github.com/venturehub/backend/internal/domain/ticketing"
)

// GormBookingTransactionScope implements the booking TransactionScope
// using GORM transactions. Repositories handed to the callback are bound
// to the open transaction so stock holds, attendee rows, invoices and
// history entries commit or roll back together.
type GormBookingTransactionScope struct {
	db *gorm.DB
}

// NewGormBookingTransactionScope creates a new GormBookingTransactionScope
func NewGormBookingTransactionScope(db *gorm.DB) *GormBookingTransactionScope {
	return &GormBookingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormBookingTransactionScope) Execute(ctx context.Context, fn func(repos appticketing.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&bookingTxRepositories{tx: tx})
	})
}

type bookingTxRepositories struct {
	tx *gorm.DB
}

func (r *bookingTxRepositories) EventRepo() ticketing.EventRepository {
	return NewGormEventRepository(r.tx)
}

func (r *bookingTxRepositories) TicketTypeRepo() ticketing.TicketTypeRepository {
	return NewGormTicketTypeRepository(r.tx)
}

func (r *bookingTxRepositories) AttendeeRepo() ticketing.AttendeeRepository {
	return NewGormAttendeeRepository(r.tx)
}

func (r *bookingTxRepositories) InvoiceRepo() billing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

func (r *bookingTxRepositories) HistoryRepo() shared.StatusHistoryRepository {
	return NewGormStatusHistoryRepository(r.tx)
}

// GormOrderTransactionScope implements the ordering TransactionScope
type GormOrderTransactionScope struct {
	db *gorm.DB
}

// NewGormOrderTransactionScope creates a new GormOrderTransactionScope
func NewGormOrderTransactionScope(db *gorm.DB) *GormOrderTransactionScope {
	return &GormOrderTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormOrderTransactionScope) Execute(ctx context.Context, fn func(repos appordering.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&orderTxRepositories{tx: tx})
	})
}

type orderTxRepositories struct {
	tx *gorm.DB
}

func (r *orderTxRepositories) OrderRepo() ordering.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *orderTxRepositories) HistoryRepo() shared.StatusHistoryRepository {
	return NewGormStatusHistoryRepository(r.tx)
}

// GormIncubationTransactionScope implements the incubation TransactionScope
type GormIncubationTransactionScope struct {
	db *gorm.DB
}

// NewGormIncubationTransactionScope creates a new GormIncubationTransactionScope
func NewGormIncubationTransactionScope(db *gorm.DB) *GormIncubationTransactionScope {
	return &GormIncubationTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormIncubationTransactionScope) Execute(ctx context.Context, fn func(repos appincubation.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&incubationTxRepositories{tx: tx})
	})
}

type incubationTxRepositories struct {
	tx *gorm.DB
}

func (r *incubationTxRepositories) ApplicationRepo() incubation.ApplicationRepository {
	return NewGormApplicationRepository(r.tx)
}

func (r *incubationTxRepositories) CohortRepo() incubation.CohortRepository {
	return NewGormCohortRepository(r.tx)
}

func (r *incubationTxRepositories) HistoryRepo() shared.StatusHistoryRepository {
	return NewGormStatusHistoryRepository(r.tx)
}

// GormMentorshipTransactionScope implements the mentorship TransactionScope
type GormMentorshipTransactionScope struct {
	db *gorm.DB
}

// NewGormMentorshipTransactionScope creates a new GormMentorshipTransactionScope
func NewGormMentorshipTransactionScope(db *gorm.DB) *GormMentorshipTransactionScope {
	return &GormMentorshipTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormMentorshipTransactionScope) Execute(ctx context.Context, fn func(repos appmentorship.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&mentorshipTxRepositories{tx: tx})
	})
}

type mentorshipTxRepositories struct {
	tx *gorm.DB
}

func (r *mentorshipTxRepositories) MentorRepo() mentorship.MentorRepository {
	return NewGormMentorRepository(r.tx)
}

func (r *mentorshipTxRepositories) SessionRepo() mentorship.SessionRepository {
	return NewGormSessionRepository(r.tx)
}

func (r *mentorshipTxRepositories) HistoryRepo() shared.StatusHistoryRepository {
	return NewGormStatusHistoryRepository(r.tx)
}

// GormBillingTransactionScope implements the billing TransactionScope
type GormBillingTransactionScope struct {
	db *gorm.DB
}

// NewGormBillingTransactionScope creates a new GormBillingTransactionScope
func NewGormBillingTransactionScope(db *gorm.DB) *GormBillingTransactionScope {
	return &GormBillingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormBillingTransactionScope) Execute(ctx context.Context, fn func(repos appbilling.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&billingTxRepositories{tx: tx})
	})
}

type billingTxRepositories struct {
	tx *gorm.DB
}

func (r *billingTxRepositories) InvoiceRepo() billing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

func (r *billingTxRepositories) HistoryRepo() shared.StatusHistoryRepository {
	return NewGormStatusHistoryRepository(r.tx)
}

var (
	_ appticketing.TransactionScope  = (*GormBookingTransactionScope)(nil)
	_ appordering.TransactionScope   = (*GormOrderTransactionScope)(nil)
	_ appincubation.TransactionScope = (*GormIncubationTransactionScope)(nil)
	_ appmentorship.TransactionScope = (*GormMentorshipTransactionScope)(nil)
	_ appbilling.TransactionScope    = (*GormBillingTransactionScope)(nil)

	_ appticketing.TransactionalRepositories  = (*bookingTxRepositories)(nil)
	_ appordering.TransactionalRepositories   = (*orderTxRepositories)(nil)
	_ appincubation.TransactionalRepositories = (*incubationTxRepositories)(nil)
	_ appmentorship.TransactionalRepositories = (*mentorshipTxRepositories)(nil)
	_ appbilling.TransactionalRepositories    = (*billingTxRepositories)(nil)
)
