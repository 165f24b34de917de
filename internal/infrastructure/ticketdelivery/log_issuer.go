package ticketdelivery

import (
	"context"

	"go.uber.org/zap"

	"github.com/venturehub/backend/internal/domain/ticketing"
)

// LogTicketIssuer records ticket issuance in the log instead of sending
// mail. Stands in for a real delivery channel in development and keeps
// the booking flow exercised end to end.
type LogTicketIssuer struct {
	logger *zap.Logger
}

// NewLogTicketIssuer creates a new LogTicketIssuer
func NewLogTicketIssuer(logger *zap.Logger) *LogTicketIssuer {
	return &LogTicketIssuer{logger: logger}
}

// Issue logs the ticket details for the confirmed attendee
func (i *LogTicketIssuer) Issue(_ context.Context, attendee *ticketing.Attendee, event *ticketing.Event) error {
	i.logger.Info("ticket issued",
		zap.String("attendee_id", attendee.ID.String()),
		zap.String("ticket_code", attendee.TicketCode),
		zap.String("email", attendee.Email),
		zap.String("event", event.Name),
	)
	return nil
}

var _ ticketing.TicketIssuer = (*LogTicketIssuer)(nil)
