package registry

import "errors"

var (
	ErrDisabled     = errors.New("identity registration is disabled")
	ErrPin          = errors.New("pin registration file")
	ErrSubmit       = errors.New("submit registration transaction")
	ErrNoRegistered = errors.New("transaction receipt has no Registered event")
)
