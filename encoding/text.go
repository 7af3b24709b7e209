package encoding

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/xerrors"
)

// Handles encoding to / decoding from text/plain
type textCodec struct{}

func (handler *textCodec) Encode(
	engine ContentEngine, ref CodecRef, writer io.Writer, content interface{},
) error {
	contentString := fmt.Sprint(content)
	_, err := io.WriteString(writer, contentString)

	return err
}

func (handler *textCodec) Decode(
	engine ContentEngine, ref CodecRef, reader io.Reader, contentReceiver interface{},
) error {
	stringPointer, ok := contentReceiver.(*string)
	if !ok {
		return xerrors.New(
			"content receiver must be a string pointer to receive a string.",
		)
	}

	buffer := new(bytes.Buffer)
	if _, err := buffer.ReadFrom(reader); err != nil {
		return err
	}

	*stringPointer = buffer.String()

	return nil
}
