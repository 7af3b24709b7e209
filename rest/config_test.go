package rest_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RsrchBoy/catalyst-action-rest/encoding"
	"github.com/RsrchBoy/catalyst-action-rest/rest"
)

func TestDefaultConfig(test *testing.T) {
	assert := assert.New(test)

	config := rest.NewConfig()

	assert.Equal(rest.DefaultStashKey, config.StashKey)
	assert.Equal("application/json", config.DefaultType)
	assert.False(config.Sniff)

	assert.Equal(
		encoding.Ref(encoding.CodecJSON), config.Mapping["application/json"],
	)
	assert.Equal(
		encoding.Ref(encoding.CodecYAML), config.Mapping["application/yaml"],
	)
	assert.Equal(
		encoding.Ref(encoding.CodecBSON), config.Mapping["application/bson"],
	)
	assert.Equal(
		encoding.Ref(encoding.CodecTEXT), config.Mapping["text/plain"],
	)
}

func TestConfigLayering(test *testing.T) {
	assert := assert.New(test)

	config := rest.NewConfig(
		rest.WithStashKey("payload"),
		rest.WithDefaultType("application/yaml"),
		rest.WithType("application/json", encoding.Ref("CUSTOM")),
		rest.WithSniffing(),
	)

	assert.Equal("payload", config.StashKey)
	assert.Equal("application/yaml", config.DefaultType)
	assert.True(config.Sniff)

	// Caller overrides layer over the default mapping, key by key.
	assert.Equal(encoding.Ref("CUSTOM"), config.Mapping["application/json"])
	assert.Equal(
		encoding.Ref(encoding.CodecYAML), config.Mapping["application/yaml"],
	)
}

func TestConfigMappingMerge(test *testing.T) {
	assert := assert.New(test)

	config := rest.NewConfig(
		rest.WithMapping(map[string]encoding.CodecRef{
			"text/csv":         encoding.Ref("CSV"),
			"application/json": encoding.Ref("CUSTOM"),
		}),
	)

	assert.Equal(encoding.Ref("CSV"), config.Mapping["text/csv"])
	assert.Equal(encoding.Ref("CUSTOM"), config.Mapping["application/json"])
	// Untouched defaults survive the merge.
	assert.Equal(
		encoding.Ref(encoding.CodecTEXT), config.Mapping["text/plain"],
	)
}

func TestConfigDisableDefaultType(test *testing.T) {
	config := rest.NewConfig(rest.WithDefaultType(""))

	assert.Equal(test, "", config.DefaultType)
}
