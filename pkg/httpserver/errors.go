package httpserver

import "errors"

var (
	// ErrStart indicates the server failed to start or exited abnormally.
	ErrStart = errors.New("httpserver.errors.start")

	// ErrShutdown indicates graceful shutdown did not complete.
	ErrShutdown = errors.New("httpserver.errors.shutdown")
)
