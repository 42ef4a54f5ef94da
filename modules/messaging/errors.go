package messaging

import "errors"

var (
	ErrEmptyContent   = errors.New("messaging: message content is empty")
	ErrUnknownAccount = errors.New("messaging: receiver account not found")
	ErrSelfMessage    = errors.New("messaging: cannot message yourself")
)
