package negotiate

import (
	"net/http"

	"github.com/RsrchBoy/catalyst-action-rest/mimetype"
	"github.com/RsrchBoy/catalyst-action-rest/resterrors"
)

// Interface for objects headers can be read from, such as http.Request.Header.
type headerFetcher interface {
	Get(string) string
}

/*
Negotiator selects the wire format for a request body (deserialization) and a
response body (serialization) against a Registry.

The response-side priority order deliberately echoes the request Content-Type ahead
of the Accept header: a client that sends JSON gets JSON back unless it explicitly
overrides, which mirrors the symmetric-format assumption most REST clients make.
*/
type Negotiator struct {
	registry *Registry
}

// NewNegotiator returns a negotiator reading from registry.
func NewNegotiator(registry *Registry) *Negotiator {
	return &Negotiator{registry: registry}
}

/*
RequestType selects the format for decoding a request body:

1. The Content-Type header, if it resolves in the registry.

2. The registry's default type, if one is designated.

Failing both, an UnsupportedMediaType error is returned.
*/
func (negotiator *Negotiator) RequestType(
	header headerFetcher,
) (Result, *resterrors.RestError) {
	contentType := header.Get("Content-Type")
	if result, ok := negotiator.registry.Resolve(contentType); ok {
		return result, nil
	}

	if result, ok := negotiator.registry.Default(); ok {
		return result, nil
	}

	return Result{}, resterrors.UnsupportedMediaType.New(
		"cannot decode content type '"+contentType+"'", nil, nil,
	)
}

/*
ResponseType selects the format for encoding a response body. Evaluated in strict
priority order, first match wins:

1. An explicit per-request override (the equivalent of a content-type query
parameter). Only honored for GET requests, so that arbitrary POST bodies cannot
poison caches with an unexpected response format.

2. The request's own Content-Type header, if it resolves (symmetric response format
assumption).

3. The Accept header, in descending quality order. Ties preserve header order;
malformed q values count as q=1; a bare wildcard entry falls through.

4. The registry's default type, if one is designated.

Failing all of these, a NotAcceptable error is returned.
*/
func (negotiator *Negotiator) ResponseType(
	method string, override string, header headerFetcher,
) (Result, *resterrors.RestError) {
	if override != "" && method == http.MethodGet {
		if result, ok := negotiator.registry.Resolve(override); ok {
			return result, nil
		}
	}

	if result, ok := negotiator.registry.Resolve(header.Get("Content-Type")); ok {
		return result, nil
	}

	for _, entry := range mimetype.ParseAccept(header.Get("Accept")) {
		if entry.Type == mimetype.Wildcard {
			continue
		}
		if result, ok := negotiator.registry.Resolve(string(entry.Type)); ok {
			return result, nil
		}
	}

	if result, ok := negotiator.registry.Default(); ok {
		return result, nil
	}

	return Result{}, resterrors.NotAcceptable.New(
		"no registered content type satisfies the request", nil, nil,
	)
}
