package encoding

import (
	"io"
)

// Names of the codecs registered on a new RestEngine.
const (
	CodecJSON = "JSON"
	CodecYAML = "YAML"
	CodecBSON = "BSON"
	CodecTEXT = "TEXT"
)

/*
CodecRef identifies a codec by name, along with any ordered construction arguments
for codecs that are parameterized (a serializer backend name, for instance). The
builtin codecs take no arguments; Args ride along untouched for custom codecs to
interpret.
*/
type CodecRef struct {
	// Registered name of the codec, e.g. CodecJSON.
	Name string

	// Ordered construction arguments for the codec. May be nil.
	Args []string
}

// Ref builds a CodecRef for name with optional construction arguments.
func Ref(name string, args ...string) CodecRef {
	return CodecRef{Name: name, Args: args}
}

// Interface for defining a content encoder.
type Encoder interface {
	// To be implemented by content encoder. Implementation is expected to write
	// content to writer. The content engine which is calling Encode is made available
	// through engine, allowing encoders to access engine-level settings, and ref
	// carries the construction arguments the encoder was resolved with.
	Encode(engine ContentEngine, ref CodecRef, writer io.Writer, content interface{}) error
}

// Interface for defining a content decoder.
type Decoder interface {
	// To be implemented by content decoder. Implementation is expected to read
	// content from reader and unmarshal it into contentReceiver. The content engine
	// which is calling Decode is made available through engine, allowing decoders to
	// access engine-level settings, and ref carries the construction arguments the
	// decoder was resolved with.
	Decode(engine ContentEngine, ref CodecRef, reader io.Reader, contentReceiver interface{}) error
}
