package model

import (
	"errors"
	"fmt"
)

// ErrInvalidated is returned from Action.Wait when the action's node was
// removed (or the model reset) before the load completed.
var ErrInvalidated = errors.New("action invalidated")

// ErrorKind classifies a load failure
type ErrorKind string

const (
	// ErrorNetwork means the transport failed or the server answered with an error status
	ErrorNetwork ErrorKind = "Network"

	// ErrorParse means the response body could not be mapped to items
	ErrorParse ErrorKind = "Parse"

	// ErrorPagination means the pagination could not be updated from the response
	ErrorPagination ErrorKind = "Pagination"

	// ErrorCanceled means the load was canceled before completion
	ErrorCanceled ErrorKind = "Canceled"

	// ErrorUnknown covers everything else
	ErrorUnknown ErrorKind = "Unknown"
)

// Error describes a failed load. Summary is a short human-readable message,
// Detail usually carries the response body, Node points at the item the load
// was running for (nil for the model root).
type Error struct {
	Kind    ErrorKind
	Summary string
	Detail  string
	Node    *Node
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Summary)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Summary, e.Detail)
}
