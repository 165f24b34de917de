package shared

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot provides common fields for aggregate roots.
// Domain events and status changes are buffered on the aggregate and
// drained by the application layer once the aggregate has been persisted.
type BaseAggregateRoot struct {
	BaseEntity
	Version       int            `gorm:"not null;default:1"`
	domainEvents  []DomainEvent  `gorm:"-"`
	statusChanges []StatusChange `gorm:"-"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent adds a domain event to be published
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// TrackStatusChange buffers a status change for the audit history.
// Every validated transition buffers exactly one change; the application
// layer persists it as a StatusHistoryEntry in the same transaction as
// the aggregate itself.
func (a *BaseAggregateRoot) TrackStatusChange(change StatusChange) {
	a.statusChanges = append(a.statusChanges, change)
}

// GetStatusChanges returns all pending status changes
func (a *BaseAggregateRoot) GetStatusChanges() []StatusChange {
	return a.statusChanges
}

// ClearStatusChanges clears the pending status changes
func (a *BaseAggregateRoot) ClearStatusChanges() {
	a.statusChanges = nil
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}
