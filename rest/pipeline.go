package rest

import (
	"bytes"
	"net/http"
	"net/url"

	"golang.org/x/xerrors"

	"github.com/RsrchBoy/catalyst-action-rest/encoding"
	"github.com/RsrchBoy/catalyst-action-rest/negotiate"
	"github.com/RsrchBoy/catalyst-action-rest/resterrors"
)

/*
Pipeline orchestrates deserialization and serialization around an application
handler:

• BeginRequest resolves the request codec and decodes the body before the handler
runs.

• EndRequest resolves the response codec, encodes the stashed entity, and produces
the status, headers, and body to respond with after the handler runs.

A Pipeline composes its capabilities rather than inheriting them: the content
engine, the content-type registry, the negotiator, and the status helper set are
held as injected collaborators and can each be swapped through configuration.

Construction validates that every mapped codec is actually registered on the
engine, so a broken mapping is a fatal startup error (CodecUnavailable) instead of
a per-request surprise. After New returns, the pipeline is immutable and safe for
concurrent use.
*/
type Pipeline struct {
	config     Config
	engine     encoding.ContentEngine
	registry   *negotiate.Registry
	negotiator *negotiate.Negotiator
	responder  *Responder
	middleware []Middleware
}

// New builds a Pipeline from the package defaults layered with opts.
func New(opts ...Option) (*Pipeline, error) {
	config := NewConfig(opts...)

	engine, err := encoding.NewContentEngine(config.Sniff)
	if err != nil {
		return nil, xerrors.Errorf("error creating content engine: %w", err)
	}

	for name, customCodec := range config.Codecs {
		engine.SetEncoder(name, customCodec)
		engine.SetDecoder(name, customCodec)
	}

	registry := negotiate.NewRegistry()
	for contentType, ref := range config.Mapping {
		registry.Register(contentType, ref)
	}

	if config.DefaultType != "" {
		if err := registry.SetDefault(config.DefaultType); err != nil {
			return nil, xerrors.Errorf("error setting default type: %w", err)
		}
	}

	// A mapping entry naming a codec the engine does not carry is fatal here, never
	// per-request.
	for contentType, ref := range config.Mapping {
		if !engine.Handles(ref.Name) {
			return nil, resterrors.CodecUnavailable.New(
				"content type "+contentType+" maps to unregistered codec "+ref.Name,
				nil, nil,
			)
		}
	}

	pipeline := &Pipeline{
		config:     config,
		engine:     engine,
		registry:   registry,
		negotiator: negotiate.NewNegotiator(registry),
		responder:  NewResponder(config.StashKey),
	}

	return pipeline, nil
}

// Engine exposes the pipeline's content engine, e.g. for adding json extensions or
// bson codecs during startup configuration.
func (pipeline *Pipeline) Engine() encoding.ContentEngine {
	return pipeline.engine
}

// Registry exposes the pipeline's content-type registry.
func (pipeline *Pipeline) Registry() *negotiate.Registry {
	return pipeline.registry
}

// Responder exposes the status helper set bound to the configured stash key.
func (pipeline *Pipeline) Responder() *Responder {
	return pipeline.responder
}

// Use appends middleware to the chain wrapped around handlers. Middleware must be
// registered during startup configuration, before requests are served.
func (pipeline *Pipeline) Use(middleware ...Middleware) {
	pipeline.middleware = append(pipeline.middleware, middleware...)
}

/*
BeginRequest runs before the application handler. It resolves the request codec
from the Content-Type header (falling back to the configured default type) and
decodes the body.

An empty body is a no-op: no entity and no error, whatever the Content-Type says.
A body that arrives with an unresolvable content type fails with
UnsupportedMediaType; a body that fails to decode fails with BadRequestBody. On
either failure the handler must not be invoked.
*/
func (pipeline *Pipeline) BeginRequest(
	method string, header http.Header, body []byte,
) (interface{}, *resterrors.RestError) {
	if len(body) == 0 {
		return nil, nil
	}

	result, restErr := pipeline.negotiator.RequestType(header)
	if restErr != nil {
		return nil, restErr
	}

	var entity interface{}
	err := pipeline.engine.Decode(result.Ref, &entity, bytes.NewReader(body))
	if err != nil {
		return nil, resterrors.BadRequestBody.New(
			"could not deserialize request body as "+string(result.Type), nil, err,
		)
	}

	return entity, nil
}

/*
EndRequest runs after the application handler. If the handler stashed an entity, it
resolves the response codec (per-request override → request Content-Type → ranked
Accept → default), encodes the entity, and returns the status, the response
headers, and the body. The status the handler chose is always preserved on
success.

With no stashed entity the body stays empty (the 204 path). When no response codec
resolves, the returned status is the negotiation failure's HTTP code (406) and the
body is empty, since without a resolvable codec there is no way to encode even an
error entity.
*/
func (pipeline *Pipeline) EndRequest(
	status int, stash Stash, method string, header http.Header, query url.Values,
) (int, http.Header, []byte, *resterrors.RestError) {
	responseHeader := http.Header{}

	entity, ok := stash.Get(pipeline.config.StashKey)
	if !ok {
		return status, responseHeader, nil, nil
	}

	override := query.Get("content-type")
	result, restErr := pipeline.negotiator.ResponseType(method, override, header)
	if restErr != nil {
		return restErr.HTTPCode(), responseHeader, nil, restErr
	}

	buffer := bytes.Buffer{}
	if err := pipeline.engine.Encode(result.Ref, entity, &buffer); err != nil {
		restErr = resterrors.EncodeFailure.New(
			"could not serialize entity as "+string(result.Type), nil, err,
		)
		return restErr.HTTPCode(), responseHeader, nil, restErr
	}

	responseHeader.Set("Content-Type", string(result.Type))
	return status, responseHeader, buffer.Bytes(), nil
}
