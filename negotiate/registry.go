package negotiate

import (
	"golang.org/x/xerrors"

	"github.com/RsrchBoy/catalyst-action-rest/encoding"
	"github.com/RsrchBoy/catalyst-action-rest/mimetype"
)

// Result is a resolved content type with the codec bound to it.
type Result struct {
	// Canonical content type the lookup resolved to. This is the value that belongs
	// in a response Content-Type header.
	Type mimetype.MimeType

	// The codec registered for the type.
	Ref encoding.CodecRef
}

/*
Registry maps content types onto codec references, with an optional default /
fallback type. Keys are normalized through mimetype.FromString, so lookups are
case-insensitive and known aliases (text/x-json, text/x-yaml...) collapse onto
their canonical type. There is no wildcard matching at this layer.

A Registry is built once during startup configuration and must not be mutated once
requests are in flight; concurrent reads are safe.
*/
type Registry struct {
	mapping     map[mimetype.MimeType]encoding.CodecRef
	defaultType mimetype.MimeType
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		mapping: make(map[mimetype.MimeType]encoding.CodecRef),
	}
}

// Register binds a content type to a codec. Registering a type twice overwrites the
// earlier entry (last write wins, matching config-merge semantics).
func (registry *Registry) Register(contentType string, ref encoding.CodecRef) {
	registry.mapping[mimetype.FromString(contentType)] = ref
}

// SetDefault designates the registered content type used when negotiation finds no
// other match. The type must already be registered.
func (registry *Registry) SetDefault(contentType string) error {
	normalized := mimetype.FromString(contentType)
	if _, ok := registry.mapping[normalized]; !ok {
		return xerrors.New(
			"default content type " + string(normalized) + " is not registered",
		)
	}

	registry.defaultType = normalized
	return nil
}

// Resolve looks up the codec for a content type. The match is exact (after
// normalization); ok is false for unregistered types.
func (registry *Registry) Resolve(contentType string) (result Result, ok bool) {
	normalized := mimetype.FromString(contentType)

	ref, ok := registry.mapping[normalized]
	if !ok {
		return Result{}, false
	}

	return Result{Type: normalized, Ref: ref}, true
}

// Default returns the fallback type's resolution, if one was designated.
func (registry *Registry) Default() (result Result, ok bool) {
	if registry.defaultType == mimetype.UNKNOWN {
		return Result{}, false
	}

	return registry.Resolve(string(registry.defaultType))
}

// Types lists every registered content type. Order is not guaranteed.
func (registry *Registry) Types() []mimetype.MimeType {
	types := make([]mimetype.MimeType, 0, len(registry.mapping))
	for registered := range registry.mapping {
		types = append(types, registered)
	}
	return types
}
