package office

import "context"

type OfficeRepository interface {
	// Get returns ErrOfficeNotFound when no office has been configured.
	Get(ctx context.Context) (Config, error)
	// Upsert atomically replaces the stored configuration.
	Upsert(ctx context.Context, cfg Config) (Config, error)
}
