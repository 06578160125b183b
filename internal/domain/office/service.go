package office

import "context"

// Reader is the read side consumed by attendance marking.
type Reader interface {
	GetOffice(ctx context.Context) (Config, error)
}

type OfficeService interface {
	Reader
	SetOffice(ctx context.Context, req SetOfficeRequest) (Config, error)
}
