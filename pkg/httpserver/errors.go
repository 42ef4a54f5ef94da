package httpserver

import "errors"

// ErrServerFailed indicates the server failed to start or crashed while serving.
var ErrServerFailed = errors.New("httpserver: server failed")
