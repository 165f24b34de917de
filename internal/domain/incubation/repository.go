package incubation

import (
	"context"

	"github.com/google/uuid"

	"github.com/venturehub/backend/internal/domain/shared"
)

// ApplicationRepository persists Application aggregates
type ApplicationRepository interface {
	shared.Repository[Application]
	FindByCohortID(ctx context.Context, cohortID uuid.UUID, filter shared.Filter) ([]Application, error)
	CountByCohortAndStatus(ctx context.Context, cohortID uuid.UUID, status ApplicationStatus) (int64, error)
}

// CohortRepository persists Cohort aggregates
type CohortRepository interface {
	shared.Repository[Cohort]
	// FindByIDForUpdate loads the cohort row under a pessimistic lock so
	// concurrent acceptances serialize on the capacity check
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Cohort, error)
}
