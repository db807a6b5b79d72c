package command

import (
	"context"
	"fmt"
)

// Param describes one argument of an operation, enough for a front-end to
// build its native parameter surface (slash-command options, tool schemas,
// form fields).
type Param struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// Operation is the single capability contract every front-end adapts to its
// own dispatch mechanism. Invoke returns plain text; rendering (embeds,
// Markdown) is the front-end's concern.
type Operation interface {
	Name() string
	Description() string
	Schema() []Param
	Invoke(ctx context.Context, args map[string]string) (string, error)
}

// requireArgs validates args against the schema, rejecting absent or empty
// required parameters before any network call is made.
func requireArgs(schema []Param, args map[string]string) error {
	for _, p := range schema {
		if p.Required && args[p.Name] == "" {
			return fmt.Errorf("%w: %s", ErrMissingArgument, p.Name)
		}
	}
	return nil
}
