package match

import "errors"

var (
	// ErrQueryRequired is returned when a query config is not provided.
	ErrQueryRequired = errors.New("query config required")

	// ErrUnknownMethod is returned for an unrecognized scoring method name.
	ErrUnknownMethod = errors.New("unknown scoring method")
)
