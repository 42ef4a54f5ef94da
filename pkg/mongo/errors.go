package mongo

import "errors"

var (
	ErrNotConnected      = errors.New("mongo: failed to connect")
	ErrHealthcheckFailed = errors.New("mongo: healthcheck failed")
)
