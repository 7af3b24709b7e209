package encoding

import (
	"io"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

// default YAML codec for RestEngine.
type yamlCodec struct{}

func (encoder *yamlCodec) Encode(
	engine ContentEngine, ref CodecRef, writer io.Writer, content interface{},
) error {
	yamlEncoder := yaml.NewEncoder(writer)
	if err := yamlEncoder.Encode(content); err != nil {
		return err
	}

	return yamlEncoder.Close()
}

func (encoder *yamlCodec) Decode(
	engine ContentEngine, ref CodecRef, reader io.Reader, contentReceiver interface{},
) error {
	yamlDecoder := yaml.NewDecoder(reader)
	// yaml.v2 returns io.EOF for an empty stream, which upstream callers treat as
	// a real decode failure. Surface it as a malformed-document error instead.
	if err := yamlDecoder.Decode(contentReceiver); err != nil {
		if err == io.EOF {
			return xerrors.New("yaml stream contained no document")
		}
		return err
	}

	return nil
}
