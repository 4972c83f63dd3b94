package repository

import "context"

// Factory describes access to the domain repositories of one storage driver.
type Factory interface {
	Offers() OfferRepository
	HealthCheck(ctx context.Context) error
	Close()
}
