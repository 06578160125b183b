package office

import "errors"

var (
	ErrInvalidConfig  = errors.New("invalid office configuration")
	ErrOfficeNotFound = errors.New("office location not configured yet")
)
