package analytics

import "errors"

var (
	// ErrInvalidArgument marks a contract violation by the caller (bad window
	// size, month outside 1-12). Never retried.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnavailable marks a transaction store that could not be reached. The
	// engine does not retry; that is the caller's decision.
	ErrUnavailable = errors.New("transaction store unavailable")
)
