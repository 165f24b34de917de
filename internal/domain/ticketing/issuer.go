package ticketing

import "context"

// TicketIssuer delivers the ticket for a confirmed attendee, typically
// by rendering and mailing it. Implementations live outside the domain;
// booking flows call Issue after the surrounding transaction commits and
// treat failures as log-worthy, not booking-fatal.
type TicketIssuer interface {
	Issue(ctx context.Context, attendee *Attendee, event *Event) error
}
