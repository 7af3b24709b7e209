package encoding

import (
	"bytes"
	"io"
	"reflect"

	"github.com/ugorji/go/codec"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"golang.org/x/xerrors"
)

// Type helpers
type encoderMapping map[string]Encoder
type decoderMapping map[string]Decoder

/*
ContentEngine details the contract for a content encoding engine. The goal of the
content engine is to allow a common decoding and encoding methodology for any
supported wire format, allowing easy support for client-requested payload encodings,
and a shared interface for different types of services to add support for various
encoding types.

Codecs are registered under a name and addressed through CodecRef values, so a
content-type registry can bind many mimetypes onto one codec.
*/
type ContentEngine interface {
	// Registers an encoder under a codec name.
	SetEncoder(name string, encoder Encoder)

	// Registers a decoder under a codec name.
	SetDecoder(name string, decoder Decoder)

	// Returns true if the engine has a registered encoder for the codec name.
	HandlesEncode(name string) bool

	// Returns true if the engine has a registered decoder for the codec name.
	HandlesDecode(name string) bool

	// Returns true if the engine has a registered encoder AND decoder for the codec
	// name.
	Handles(name string) bool

	// Whether the engine will attempt to decode content with no known codec.
	SniffType() bool

	// Decode content from reader using the decoder named by ref. Decoded content is
	// stored in contentReceiver.
	Decode(ref CodecRef, contentReceiver interface{}, reader io.Reader) error

	// Encode content to writer using the encoder named by ref.
	Encode(ref CodecRef, content interface{}, writer io.Writer) error
}

/*
RestEngine is the default implementation of the ContentEngine interface.
Implementation is done through an interface so that the engine can be extended
through type wrapping.

Instantiation

Use NewContentEngine() to create a new RestEngine.

Default Codecs

• JSON (through github.com/ugorji/go/codec)

• YAML (through gopkg.in/yaml.v2)

• BSON (through go.mongodb.org/mongo-driver)

• TEXT (fmt.Sprint for encode, string receiver for decode)

Object codecs have been selected to be extensible, and RestEngine exposes functions
to let you add custom type handlers to each.

Default JSON Extensions

RestEngine ships with the following types handled beyond plain json:

• UUIDs from "github.com/satori/go.uuid"

• Binary blob data represented through the named resttypes.BinData type is
represented as a hex string.

• BSON primitive.Binary data is encoded as a UUID string for the 0x3 subtype and a
hex string for the 0x0 subtype. Other subtypes are not currently supported.

• BSON raw documents are converted to a map and THEN encoded to a json object.

Additional json extensions can be registered through AddJSONExtensions() by passing
a slice of JSONExtensionOpts objects.

Default BSON Codecs

The following type extensions ship with RestEngine:

• primitive.Binary of subtype 0x3 can be decoded to / encoded from UUID objects.

• primitive.Binary of subtype 0x0 can be decoded to / encoded from the
resttypes.BinData named type.

Additional bson codecs can be registered through AddBSONCodecs().

Type Sniffing

If created with "sniffType" set to true, when decoding with a blank CodecRef the
RestEngine will attempt to use each decoder until one does not return an error or
panic. Because decoders are internally stored in a map, the order of these attempts
is not guaranteed to be consistent.

Panics

If an encoder or decoder panics during execution, that panic is caught and returned
as an error.
*/
type RestEngine struct {
	// codec name:Encoder mapping
	encoders encoderMapping
	// codec name:Decoder mapping
	decoders decoderMapping
	// List of all registered decoders. Used for sniffing content.
	decoderList []Decoder
	// Whether to attempt decoding when no codec is named.
	sniffType bool

	// JSON handle for the default JSON codec
	jsonHandle *codec.JsonHandle
	// BSON registry for the default BSON codec
	bsonRegistry *bsoncodec.Registry
	// BSON codecs
	bsonCodecs []*BsonCodecOpts
	// Engine to pass to Encoder.Encode() and Decoder.Decode() methods.
	passedEngine ContentEngine
}

// Change the engine passed into Encoder.Encode() and Decoder.Decode()
func (engine *RestEngine) SetPassedEngine(newEngine ContentEngine) {
	engine.passedEngine = newEngine
}

// Register an encoder under a codec name
func (engine *RestEngine) SetEncoder(name string, encoder Encoder) {
	engine.encoders[name] = encoder
}

// Register a decoder under a codec name
func (engine *RestEngine) SetDecoder(name string, decoder Decoder) {
	engine.decoders[name] = decoder

	// Cache a list of all the decoders we can use when content sniffing. Because of
	// this SNIFF ORDER IS NOT GUARANTEED.
	engine.decoderList = make([]Decoder, 0, len(engine.decoders))
	for _, registered := range engine.decoders {
		engine.decoderList = append(engine.decoderList, registered)
	}
}

// Whether RestEngine will attempt to decode content with a blank CodecRef.
func (engine *RestEngine) SniffType() bool {
	return engine.sniffType
}

// Whether the RestEngine has a registered encoder for the codec name.
func (engine *RestEngine) HandlesEncode(name string) bool {
	_, ok := engine.encoders[name]
	return ok
}

// Whether the RestEngine has a registered decoder for the codec name.
func (engine *RestEngine) HandlesDecode(name string) bool {
	_, ok := engine.decoders[name]
	return ok
}

// Whether the RestEngine has a registered decoder AND encoder for the codec name.
func (engine *RestEngine) Handles(name string) bool {
	return engine.HandlesEncode(name) && engine.HandlesDecode(name)
}

// Select what engine to pass into the encoder / decoder in case we are extending
// the engine type.
func (engine *RestEngine) getEngine() (passEngine ContentEngine) {
	if engine.passedEngine != nil {
		passEngine = engine.passedEngine
	} else {
		passEngine = engine
	}

	return passEngine
}

// Uses an encoder while catching panics to return as errors
func (engine *RestEngine) safeEncode(
	encoder Encoder, ref CodecRef, writer io.Writer, content interface{},
) (err error) {
	defer func() {
		recovered := recover()
		if recovered != nil {
			err = xerrors.Errorf("panic during encode: %w", recovered)
		}
	}()

	passEngine := engine.getEngine()
	err = encoder.Encode(passEngine, ref, writer, content)
	return err
}

// Uses a decoder while catching panics to return as errors
func (engine *RestEngine) safeDecode(
	decoder Decoder, ref CodecRef, reader io.Reader, contentReceiver interface{},
) (err error) {
	defer func() {
		recovered := recover()
		if recovered != nil {
			err = xerrors.Errorf("panic during decode: %w", recovered)
		}
	}()

	passEngine := engine.getEngine()
	err = decoder.Decode(passEngine, ref, reader, contentReceiver)

	return err
}

// Attempts to decode content with all registered decoders until one succeeds or all
// fail.
func (engine *RestEngine) sniffContent(
	ref CodecRef, contentReceiver interface{}, reader io.Reader,
) error {
	// We need to read the content multiple times, so lets load the bytes into a var.
	// This will cause a slight performance hit, which is why this is a separate
	// process from loading a KNOWN codec.
	contentBuffer := bytes.NewBuffer(make([]byte, 0))
	if _, err := contentBuffer.ReadFrom(reader); err != nil {
		return xerrors.Errorf("error reading contentBytes: %w", err)
	}

	var decoderErr error
	var decoded bool

	for _, decoder := range engine.decoderList {
		// Make a buffer for this attempt, otherwise we'll run out of bytes.
		thisReader := bytes.NewBuffer(contentBuffer.Bytes())
		thisErr := engine.safeDecode(decoder, ref, thisReader, contentReceiver)

		if thisErr != nil {
			if decoderErr == nil {
				decoderErr = thisErr
			} else {
				decoderErr = xerrors.Errorf(
					"decoding error: %w after: %w", thisErr, decoderErr,
				)
			}
		} else {
			decoded = true
			break
		}
	}

	if decoded {
		decoderErr = nil
	}

	return decoderErr
}

// Picks the codec for encoding / decoding objects when the source or target codec is
// not named.
func pickContentCodec(ref CodecRef, content interface{}, encoding bool) CodecRef {
	if ref.Name == "" {
		var useName string

		switch content.(type) {
		case string:
			useName = CodecTEXT
		case *string:
			useName = CodecTEXT
		default:
			useName = CodecJSON
		}

		// If we are decoding, we only want to force a text decoding if the receiver
		// is a string.
		if encoding || useName == CodecTEXT {
			ref.Name = useName
		}
	}
	return ref
}

func (engine *RestEngine) Decode(
	ref CodecRef, contentReceiver interface{}, reader io.Reader,
) error {
	ref = pickContentCodec(ref, contentReceiver, false)

	// Close the reader if it's a closer.
	if readCloser, ok := reader.(io.ReadCloser); ok {
		defer func() {
			_ = readCloser.Close()
		}()
	}

	// If we want to sniff
	if ref.Name == "" {
		if !engine.SniffType() {
			return xerrors.New("codec is unknown and sniffing is disabled")
		}
		return engine.sniffContent(ref, contentReceiver, reader)
	}

	decoder, ok := engine.decoders[ref.Name]
	if !ok {
		return xerrors.New("no decoder for " + ref.Name)
	}

	err := engine.safeDecode(decoder, ref, reader, contentReceiver)
	if err != nil {
		return xerrors.Errorf("decode err: %w", err)
	}

	return nil
}

func (engine *RestEngine) Encode(
	ref CodecRef, content interface{}, writer io.Writer,
) error {
	ref = pickContentCodec(ref, content, true)

	encoder, ok := engine.encoders[ref.Name]
	if !ok {
		return xerrors.New("no encoder for " + ref.Name)
	}

	err := engine.safeEncode(encoder, ref, writer, content)
	if err != nil {
		return xerrors.Errorf(
			"encode err: %w", err,
		)
	}
	return nil
}

func (engine *RestEngine) JSONHandle() *codec.JsonHandle {
	return engine.jsonHandle
}

// Returns the internal bsoncodec.Registry used by the bson codec.
func (engine *RestEngine) BSONRegistry() *bsoncodec.Registry {
	return engine.bsonRegistry
}

// Adds JSON extensions to handle.
func (engine *RestEngine) AddJSONExtensions(extensions []*JSONExtensionOpts) error {
	for _, extOpts := range extensions {
		err := engine.jsonHandle.SetInterfaceExt(
			extOpts.ValueType, 1, extOpts.ExtInterface,
		)
		if err != nil {
			return xerrors.Errorf(
				"error adding json extension to content engine: %w", err,
			)
		}
	}
	return nil
}

// Adds BSON codecs to engine for use when encoding/decoding bson data.
func (engine *RestEngine) AddBSONCodecs(codecs []*BsonCodecOpts) error {
	// Store these codecs for later in case more are added by the end user and we need
	// to declare a new registry.
	engine.bsonCodecs = append(engine.bsonCodecs, codecs...)

	builder := bsoncodec.NewRegistryBuilder()
	bsoncodec.DefaultValueEncoders{}.RegisterDefaultEncoders(builder)
	bsoncodec.DefaultValueDecoders{}.RegisterDefaultDecoders(builder)

	for _, codecOpts := range codecs {
		builder.RegisterCodec(codecOpts.ValueType, codecOpts.Codec)
	}

	// Build the bson registry.
	engine.bsonRegistry = builder.Build()

	// Now redeclare the json extension for bson raw with this registry so it has
	// access to any additional codecs
	err := engine.jsonHandle.SetInterfaceExt(
		reflect.TypeOf(bson.Raw{}),
		1,
		&jsonExtBsonRaw{engine.bsonRegistry},
	)
	if err != nil {
		return xerrors.Errorf(
			"error building bson extension for json handle: %w", err,
		)
	}

	return nil
}

func NewContentEngine(allowSniff bool) (*RestEngine, error) {
	// Create the json handle. JSON object keys are always strings, so decoded
	// objects land in map[string]interface{} rather than the codec default.
	jsonHandle := &codec.JsonHandle{}
	jsonHandle.MapType = reflect.TypeOf(map[string]interface{}(nil))

	// Create the content engine.
	engine := &RestEngine{
		encoders:     make(encoderMapping),
		decoders:     make(decoderMapping),
		sniffType:    allowSniff,
		jsonHandle:   jsonHandle,
		bsonRegistry: nil,
	}

	// Add the default encoders.
	engine.SetEncoder(CodecJSON, &jsonCodec{})
	engine.SetEncoder(CodecYAML, &yamlCodec{})
	engine.SetEncoder(CodecBSON, &bsonCodec{})
	engine.SetEncoder(CodecTEXT, &textCodec{})

	// Add the default decoders.
	engine.SetDecoder(CodecJSON, &jsonCodec{})
	engine.SetDecoder(CodecYAML, &yamlCodec{})
	engine.SetDecoder(CodecBSON, &bsonCodec{})
	engine.SetDecoder(CodecTEXT, &textCodec{})

	// Add the default json extensions to the engine.
	if err := engine.AddJSONExtensions(defaultJSONExtensions); err != nil {
		err = xerrors.Errorf("error adding default json extensions: %w", err)
		return nil, err
	}

	// Add the default bson codecs to the engine.
	if err := engine.AddBSONCodecs(defaultBsonCodecs); err != nil {
		err = xerrors.Errorf("error adding default bson codecs: %w", err)
		return nil, err
	}

	return engine, nil
}
