package rest

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/RsrchBoy/catalyst-action-rest/models"
	"github.com/RsrchBoy/catalyst-action-rest/resterrors"
)

// StatusResponse carries the HTTP status and headers a status helper decided on.
// The entity itself travels through the request Stash so the serialize step can
// find it without the host threading it through.
type StatusResponse struct {
	// HTTP status code to respond with.
	Code int

	// Headers the helper set (Location, for instance). Never nil.
	Header http.Header
}

/*
Responder is the status helper set. Every helper stores its entity through a single
internal set-entity primitive keyed by the configured stash key, so the serialize
step can locate it, and returns a StatusResponse for the host to respond with.

Helpers validate their argument shape strictly: a missing required argument is a
programmer error and panics with an ArgumentShapeError immediately rather than
surfacing per-request.
*/
type Responder struct {
	stashKey string
}

// NewResponder returns a Responder stashing entities under stashKey, or under
// DefaultStashKey if it is blank.
func NewResponder(stashKey string) *Responder {
	if stashKey == "" {
		stashKey = DefaultStashKey
	}
	return &Responder{stashKey: stashKey}
}

// StashKey reports the key entities are stored under.
func (responder *Responder) StashKey() string {
	return responder.stashKey
}

// The single primitive every helper stores its entity through.
func (responder *Responder) setEntity(stash Stash, entity interface{}) {
	stash.Set(responder.stashKey, entity)
}

// requireEntity enforces helpers whose entity argument is mandatory.
func (responder *Responder) requireEntity(helper string, entity interface{}) {
	if entity == nil {
		resterrors.ArgumentShapeError.Panic(
			helper+" helper requires an entity", nil, nil,
		)
	}
}

/*
normalizeLocation renders a location argument to the string form written into the
Location header. Accepts a plain string, a *url.URL, or any fmt.Stringer; anything
else (or a blank result when the location is required) is a programmer error.
*/
func (responder *Responder) normalizeLocation(
	helper string, location interface{}, required bool,
) string {
	var normalized string

	switch typed := location.(type) {
	case nil:
		normalized = ""
	case string:
		normalized = typed
	case *url.URL:
		normalized = typed.String()
	case fmt.Stringer:
		normalized = typed.String()
	default:
		resterrors.ArgumentShapeError.Panic(
			helper+" helper cannot render location argument", nil, nil,
		)
	}

	if normalized == "" && required {
		resterrors.ArgumentShapeError.Panic(
			helper+" helper requires a location", nil, nil,
		)
	}

	return normalized
}

// requireMessage enforces helpers whose message argument is mandatory, and wraps
// the message into the shared error entity shape.
func (responder *Responder) requireMessage(helper string, message string) models.ErrorResponse {
	if message == "" {
		resterrors.ArgumentShapeError.Panic(
			helper+" helper requires a message", nil, nil,
		)
	}
	return models.ErrorResponse{Error: message}
}

// Ok responds 200 with the required entity.
func (responder *Responder) Ok(stash Stash, entity interface{}) StatusResponse {
	responder.requireEntity("ok", entity)
	responder.setEntity(stash, entity)

	return StatusResponse{Code: http.StatusOK, Header: http.Header{}}
}

// Created responds 201 with a required location (string, *url.URL, or
// fmt.Stringer) written into the Location header and an optional entity.
func (responder *Responder) Created(
	stash Stash, location interface{}, entity interface{},
) StatusResponse {
	normalized := responder.normalizeLocation("created", location, true)

	header := http.Header{}
	header.Set("Location", normalized)

	if entity != nil {
		responder.setEntity(stash, entity)
	}

	return StatusResponse{Code: http.StatusCreated, Header: header}
}

// Accepted responds 202 with the required entity.
func (responder *Responder) Accepted(stash Stash, entity interface{}) StatusResponse {
	responder.requireEntity("accepted", entity)
	responder.setEntity(stash, entity)

	return StatusResponse{Code: http.StatusAccepted, Header: http.Header{}}
}

// NoContent responds 204. Any previously stashed entity is cleared so no body is
// written.
func (responder *Responder) NoContent(stash Stash) StatusResponse {
	stash.Delete(responder.stashKey)

	return StatusResponse{Code: http.StatusNoContent, Header: http.Header{}}
}

// MultipleChoices responds 300 with the required entity and, when given, the
// preferred choice in the Location header.
func (responder *Responder) MultipleChoices(
	stash Stash, entity interface{}, location interface{},
) StatusResponse {
	responder.requireEntity("multiple_choices", entity)
	responder.setEntity(stash, entity)

	header := http.Header{}
	if normalized := responder.normalizeLocation(
		"multiple_choices", location, false,
	); normalized != "" {
		header.Set("Location", normalized)
	}

	return StatusResponse{Code: http.StatusMultipleChoices, Header: header}
}

// BadRequest responds 400 with an {error: message} entity.
func (responder *Responder) BadRequest(stash Stash, message string) StatusResponse {
	responder.setEntity(stash, responder.requireMessage("bad_request", message))

	return StatusResponse{Code: http.StatusBadRequest, Header: http.Header{}}
}

// NotFound responds 404 with an {error: message} entity.
func (responder *Responder) NotFound(stash Stash, message string) StatusResponse {
	responder.setEntity(stash, responder.requireMessage("not_found", message))

	return StatusResponse{Code: http.StatusNotFound, Header: http.Header{}}
}

// Gone responds 410 with an {error: message} entity.
func (responder *Responder) Gone(stash Stash, message string) StatusResponse {
	responder.setEntity(stash, responder.requireMessage("gone", message))

	return StatusResponse{Code: http.StatusGone, Header: http.Header{}}
}
