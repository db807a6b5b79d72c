package command

import "errors"

var (
	// ErrUnknownOperation indicates the requested one-shot operation is not
	// registered with the router.
	ErrUnknownOperation = errors.New("command.errors.unknown_operation")

	// ErrMissingArgument indicates a required operation argument was absent
	// or empty.
	ErrMissingArgument = errors.New("command.errors.missing_argument")

	// ErrDuplicateOperation indicates an operation name is already taken.
	ErrDuplicateOperation = errors.New("command.errors.duplicate_operation")
)
