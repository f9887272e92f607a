package deviceloans

import (
	"context"
	"time"
)

// Repository is the persistence capability the service layer depends on.
// Point lookups resolve a missing id to (nil, nil); Delete reports whether a
// document was actually removed and is safe to repeat. Store errors other
// than not-found surface unchanged.
type Repository interface {
	FindByID(ctx context.Context, id string) (*DeviceLoan, error)
	FindAll(ctx context.Context) ([]DeviceLoan, error)
	Save(ctx context.Context, loan *DeviceLoan) error
	Delete(ctx context.Context, id string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)

	FindActive(ctx context.Context) ([]DeviceLoan, error)
	FindOverdue(ctx context.Context, ref time.Time) ([]DeviceLoan, error)
	FindByBorrowerID(ctx context.Context, borrowerID string) ([]DeviceLoan, error)
	FindByDeviceID(ctx context.Context, deviceID string) ([]DeviceLoan, error)
}
