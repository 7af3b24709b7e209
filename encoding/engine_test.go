package encoding_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"bytes"
	"io"
	"testing"

	"bou.ke/monkey"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"golang.org/x/xerrors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/RsrchBoy/catalyst-action-rest/encoding"
)

type Name struct {
	First string
	Last  string
}

type PanickyCodec struct{}

func (codec *PanickyCodec) Encode(
	engine encoding.ContentEngine,
	ref encoding.CodecRef,
	writer io.Writer,
	content interface{},
) error {
	panic(xerrors.New("encode panicked"))
}

func (codec *PanickyCodec) Decode(
	engine encoding.ContentEngine,
	ref encoding.CodecRef,
	reader io.Reader,
	contentReceiver interface{},
) error {
	panic(xerrors.New("decode panicked"))
}

func createEngine(test *testing.T) *encoding.RestEngine {
	engine, err := encoding.NewContentEngine(true)
	if err != nil {
		test.Error(err)
	}
	return engine
}

func TestCreateEngineDefault(test *testing.T) {
	assert := assert.New(test)

	engine, err := encoding.NewContentEngine(false)

	assert.Nil(err)
	assert.NotNil(engine)

	assert.NotNil(engine.JSONHandle())
	assert.NotNil(engine.BSONRegistry())

	// Test that all the defaults registered appropriately.
	assert.Equal(true, engine.Handles(encoding.CodecJSON))
	assert.Equal(true, engine.Handles(encoding.CodecYAML))
	assert.Equal(true, engine.Handles(encoding.CodecBSON))
	assert.Equal(true, engine.Handles(encoding.CodecTEXT))

	assert.Equal(false, engine.Handles("CSV"))

	assert.Equal(false, engine.SniffType())
}

// Generic function for round-tripping a basic name object for a given codec
func RoundTripName(
	test *testing.T, refEncode encoding.CodecRef, refDecode encoding.CodecRef,
) *Name {
	engine := createEngine(test)

	testName := Name{
		First: "Harry",
		Last:  "Potter",
	}

	buffer := bytes.Buffer{}

	err := engine.Encode(refEncode, testName, &buffer)
	if err != nil {
		test.Error(err)
	}

	loaded := Name{}
	err = engine.Decode(refDecode, &loaded, &buffer)
	if err != nil {
		test.Error(err)
	}

	assert.Equal(test, testName, loaded)
	assert.Equal(test, "Harry", loaded.First)
	assert.Equal(test, "Potter", loaded.Last)

	return &loaded
}

func TestJsonBasicRoundTrip(test *testing.T) {
	RoundTripName(
		test, encoding.Ref(encoding.CodecJSON), encoding.Ref(encoding.CodecJSON),
	)
}

func TestYamlBasicRoundTrip(test *testing.T) {
	RoundTripName(
		test, encoding.Ref(encoding.CodecYAML), encoding.Ref(encoding.CodecYAML),
	)
}

func TestBsonBasicRoundTrip(test *testing.T) {
	RoundTripName(
		test, encoding.Ref(encoding.CodecBSON), encoding.Ref(encoding.CodecBSON),
	)
}

func TestUnknownObjectBasicRoundTrip(test *testing.T) {
	RoundTripName(test, encoding.CodecRef{}, encoding.CodecRef{})
}

func TestJSONToUnknownRoundTrip(test *testing.T) {
	RoundTripName(test, encoding.Ref(encoding.CodecJSON), encoding.CodecRef{})
}

type Roster struct {
	Names []string
	Count int
}

// Generic function for round-tripping an object with a nested sequence and a
// numeric scalar for a given codec.
func RoundTripRoster(test *testing.T, ref encoding.CodecRef) {
	assert := assert.New(test)
	engine := createEngine(test)

	testRoster := Roster{
		Names: []string{"Harry", "Ron", "Hermione"},
		Count: 3,
	}

	buffer := bytes.Buffer{}

	err := engine.Encode(ref, testRoster, &buffer)
	if err != nil {
		test.Error(err)
	}

	loaded := Roster{}
	err = engine.Decode(ref, &loaded, &buffer)
	if err != nil {
		test.Error(err)
	}

	assert.Equal(testRoster, loaded)
}

func TestJsonNestedSequenceRoundTrip(test *testing.T) {
	RoundTripRoster(test, encoding.Ref(encoding.CodecJSON))
}

func TestYamlNestedSequenceRoundTrip(test *testing.T) {
	RoundTripRoster(test, encoding.Ref(encoding.CodecYAML))
}

func TestBsonNestedSequenceRoundTrip(test *testing.T) {
	RoundTripRoster(test, encoding.Ref(encoding.CodecBSON))
}

func TestJsonMapRoundTrip(test *testing.T) {
	assert := assert.New(test)
	engine := createEngine(test)

	payload := map[string]interface{}{
		"first": "Harry",
		"house": "Gryffindor",
	}

	buffer := bytes.Buffer{}

	err := engine.Encode(encoding.Ref(encoding.CodecJSON), payload, &buffer)
	if err != nil {
		test.Error(err)
	}
	// A map payload must never collapse to an empty object on the wire.
	assert.NotEqual("{}", buffer.String())

	var loaded interface{}
	err = engine.Decode(encoding.Ref(encoding.CodecJSON), &loaded, &buffer)
	if err != nil {
		test.Error(err)
	}

	decoded, ok := loaded.(map[string]interface{})
	if !assert.True(ok, "decoded object is string-keyed") {
		test.FailNow()
	}
	assert.Equal("Harry", decoded["first"])
	assert.Equal("Gryffindor", decoded["house"])
}

func TestYamlMapRoundTrip(test *testing.T) {
	assert := assert.New(test)
	engine := createEngine(test)

	payload := map[string]interface{}{
		"first":     "Harry",
		"nicknames": []interface{}{"The Boy Who Lived", "The Chosen One"},
	}

	buffer := bytes.Buffer{}

	err := engine.Encode(encoding.Ref(encoding.CodecYAML), payload, &buffer)
	if err != nil {
		test.Error(err)
	}

	loaded := make(map[string]interface{})
	err = engine.Decode(encoding.Ref(encoding.CodecYAML), &loaded, &buffer)
	if err != nil {
		test.Error(err)
	}

	assert.Equal(payload, loaded)
}

func TestBsonMapRoundTrip(test *testing.T) {
	assert := assert.New(test)
	engine := createEngine(test)

	payload := map[string]string{
		"first": "Harry",
		"last":  "Potter",
	}

	buffer := bytes.Buffer{}

	err := engine.Encode(encoding.Ref(encoding.CodecBSON), payload, &buffer)
	if err != nil {
		test.Error(err)
	}

	loaded := make(map[string]string)
	err = engine.Decode(encoding.Ref(encoding.CodecBSON), &loaded, &buffer)
	if err != nil {
		test.Error(err)
	}

	assert.Equal(payload, loaded)
}

func TestJsonScalarRoundTrip(test *testing.T) {
	assert := assert.New(test)
	engine := createEngine(test)

	buffer := bytes.Buffer{}

	err := engine.Encode(encoding.Ref(encoding.CodecJSON), 42, &buffer)
	if err != nil {
		test.Error(err)
	}
	assert.Equal("42", buffer.String())

	var loaded interface{}
	err = engine.Decode(encoding.Ref(encoding.CodecJSON), &loaded, &buffer)
	if err != nil {
		test.Error(err)
	}

	assert.EqualValues(42, loaded)
}

func TestJsonNullRoundTrip(test *testing.T) {
	assert := assert.New(test)
	engine := createEngine(test)

	buffer := bytes.Buffer{}

	err := engine.Encode(encoding.Ref(encoding.CodecJSON), nil, &buffer)
	if err != nil {
		test.Error(err)
	}
	assert.Equal("null", buffer.String())

	var loaded interface{} = "sentinel"
	err = engine.Decode(encoding.Ref(encoding.CodecJSON), &loaded, &buffer)
	if err != nil {
		test.Error(err)
	}

	assert.Nil(loaded)
}

func TestTextRoundTrip(test *testing.T) {
	engine, err := encoding.NewContentEngine(false)
	if err != nil {
		test.Error(err)
	}

	stringPayload := "Test String."
	buffer := bytes.Buffer{}

	err = engine.Encode(encoding.Ref(encoding.CodecTEXT), stringPayload, &buffer)
	if err != nil {
		test.Error(err)
	}

	loaded := ""
	err = engine.Decode(encoding.Ref(encoding.CodecTEXT), &loaded, &buffer)
	if err != nil {
		test.Error(err)
	}

	assert.Equal(test, stringPayload, loaded)
}

func TestTextRoundTripUnknown(test *testing.T) {
	engine, err := encoding.NewContentEngine(true)
	if err != nil {
		test.Error(err)
	}

	stringPayload := "Test String."
	buffer := bytes.Buffer{}

	err = engine.Encode(encoding.CodecRef{}, stringPayload, &buffer)
	if err != nil {
		test.Error(err)
	}

	loaded := ""
	err = engine.Decode(encoding.CodecRef{}, &loaded, &buffer)
	if err != nil {
		test.Error(err)
	}

	assert.Equal(test, stringPayload, loaded)
}

func TestYamlMalformedDocument(test *testing.T) {
	engine := createEngine(test)

	loaded := Name{}
	reader := bytes.NewBufferString("{first: [unclosed")
	err := engine.Decode(encoding.Ref(encoding.CodecYAML), &loaded, reader)

	assert.NotNil(test, err)
}

func TestNoDecoderError(test *testing.T) {
	engine := createEngine(test)
	buffer := &bytes.Buffer{}
	receiver := make(map[string]interface{})

	err := engine.Decode(encoding.Ref("CSV"), &receiver, buffer)

	assert.EqualError(test, err, "no decoder for CSV")
}

func TestNoEncoderError(test *testing.T) {
	engine := createEngine(test)
	buffer := &bytes.Buffer{}
	data := make(map[string]interface{})

	err := engine.Encode(encoding.Ref("CSV"), data, buffer)

	assert.EqualError(test, err, "no encoder for CSV")
}

func TestEncodePanicsError(test *testing.T) {
	engine := createEngine(test)
	buffer := &bytes.Buffer{}

	engine.SetEncoder("CSV", &PanickyCodec{})

	data := make(map[string]interface{})
	err := engine.Encode(encoding.Ref("CSV"), data, buffer)

	assert.EqualError(
		test, err, "encode err: panic during encode: encode panicked",
	)
}

func TestDecoderPanicsError(test *testing.T) {
	engine := createEngine(test)
	buffer := &bytes.Buffer{}

	engine.SetDecoder("CSV", &PanickyCodec{})

	data := make(map[string]interface{})
	err := engine.Decode(encoding.Ref("CSV"), &data, buffer)

	assert.EqualError(
		test, err, "decode err: panic during decode: decode panicked",
	)
}

func TestNoSniffError(test *testing.T) {
	engine, err := encoding.NewContentEngine(false)
	if err != nil {
		test.Error(err)
	}

	buffer := &bytes.Buffer{}
	receiver := make(map[string]interface{})

	err = engine.Decode(encoding.CodecRef{}, &receiver, buffer)
	assert.EqualError(
		test, err, "codec is unknown and sniffing is disabled",
	)
}

func TestBsonMarshalError(test *testing.T) {
	defer monkey.UnpatchAll()
	monkey.Patch(
		bson.MarshalWithRegistry,
		func(registry *bsoncodec.Registry, value interface{}) ([]byte, error) {
			return nil, xerrors.New("mock marshal error")
		},
	)

	engine := createEngine(test)
	buffer := &bytes.Buffer{}

	err := engine.Encode(
		encoding.Ref(encoding.CodecBSON), Name{First: "Harry"}, buffer,
	)

	assert.NotNil(test, err)
	assert.Contains(test, err.Error(), "mock marshal error")
}
