// Package httpserver wraps net/http's Server with environment-driven
// configuration, graceful shutdown on context cancellation or termination
// signals, and a health endpoint in the service's JSON envelope shape.
package httpserver
