package appointment

import (
	"context"

	"github.com/aurelia-labs/salon-scheduler/internal/models"
)

// Catalog resolves the reference entities a booking points at.
type Catalog interface {
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	GetTherapist(ctx context.Context, id uint) (*models.Therapist, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)
}

// Invalidator is notified after every appointment write so cached
// analytics views get refreshed.
type Invalidator interface {
	Invalidate(ctx context.Context)
}
