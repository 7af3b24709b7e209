package models

import "github.com/RsrchBoy/catalyst-action-rest/resterrors"

// Alias to resterrors.ErrorType
type ErrorType = resterrors.ErrorType

// Alias to resterrors.RestError
type RestError = resterrors.RestError

// ErrorResponse is the wire shape of every user-facing error entity. Status helpers
// that take a message (bad_request, not_found, gone) and the serialization pipeline
// itself all respond with this shape.
type ErrorResponse struct {
	Error string `json:"error" bson:"error" yaml:"error"`
}
