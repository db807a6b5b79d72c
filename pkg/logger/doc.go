// Package logger builds configured slog.Logger instances for the toolkit's
// services. It supports JSON and text output, environment-driven settings,
// static service attributes, and context-value extraction so request-scoped
// data (request IDs, session keys) appears on every record logged with that
// context.
package logger
