package rest

import (
	"github.com/RsrchBoy/catalyst-action-rest/encoding"
)

// DefaultStashKey is the stash key entities are stored under unless overridden.
const DefaultStashKey = "rest"

// Codec pairs the encode and decode halves of a custom wire format so it can be
// registered on the pipeline's content engine in one call.
type Codec interface {
	encoding.Encoder
	encoding.Decoder
}

/*
Config is the one-time setup for a Pipeline. A Config is built by layering caller
options over the package defaults; once a Pipeline is constructed from it, the
resulting configuration is immutable and shared read-only across requests.
*/
type Config struct {
	// Key under which handlers stash the response entity.
	StashKey string

	// Content type used when negotiation finds no other match. Blank disables the
	// fallback, making unresolvable requests hard failures (415 / 406).
	DefaultType string

	// Content type → codec mapping. Re-registering a type overwrites the earlier
	// entry, last write wins.
	Mapping map[string]encoding.CodecRef

	// Custom codecs to register on the content engine, by codec name.
	Codecs map[string]Codec

	// Whether the content engine may sniff bodies with no resolvable codec.
	Sniff bool
}

// Option overrides one piece of a Config.
type Option func(config *Config)

// WithStashKey overrides the stash key entities are exchanged under.
func WithStashKey(key string) Option {
	return func(config *Config) {
		config.StashKey = key
	}
}

// WithDefaultType sets the fallback content type. Pass the empty string to disable
// the fallback entirely.
func WithDefaultType(contentType string) Option {
	return func(config *Config) {
		config.DefaultType = contentType
	}
}

// WithType binds one content type to a codec, overwriting any earlier binding.
func WithType(contentType string, ref encoding.CodecRef) Option {
	return func(config *Config) {
		config.Mapping[contentType] = ref
	}
}

// WithMapping merges an entire content-type mapping over the configured one, key by
// key.
func WithMapping(mapping map[string]encoding.CodecRef) Option {
	return func(config *Config) {
		for contentType, ref := range mapping {
			config.Mapping[contentType] = ref
		}
	}
}

// WithCodec registers a custom codec under name so mapping entries can reference it.
func WithCodec(name string, codec Codec) Option {
	return func(config *Config) {
		config.Codecs[name] = codec
	}
}

// WithSniffing lets the content engine attempt every decoder when a body arrives
// with no resolvable codec.
func WithSniffing() Option {
	return func(config *Config) {
		config.Sniff = true
	}
}

/*
NewConfig layers the given options over the package defaults and returns the merged
result. The default mapping serves JSON, YAML, BSON and plain text with
application/json designated as the fallback type:

	application/json  → JSON (also reached by text/x-json, application/x-json)
	application/yaml  → YAML (also reached by text/x-yaml)
	application/bson  → BSON
	text/plain        → TEXT
*/
func NewConfig(opts ...Option) Config {
	config := Config{
		StashKey:    DefaultStashKey,
		DefaultType: "application/json",
		Mapping: map[string]encoding.CodecRef{
			"application/json": encoding.Ref(encoding.CodecJSON),
			"application/yaml": encoding.Ref(encoding.CodecYAML),
			"application/bson": encoding.Ref(encoding.CodecBSON),
			"text/plain":       encoding.Ref(encoding.CodecTEXT),
		},
		Codecs: make(map[string]Codec),
	}

	for _, opt := range opts {
		opt(&config)
	}

	return config
}
