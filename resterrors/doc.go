/*
Error model definition and default error types for the REST negotiation /
serialization core.

The core strives to have a consistent set of errors (and error communication)
conventions shared between all services and clients.

This package defines two main objects for handling errors:

• ErrorType defines a type of error.

• RestError is an instance of an error which contains an ErrorType.

Default ErrorType Variables

Several pointers to ErrorType definitions are included in this package, covering
content negotiation (UnsupportedMediaType, NotAcceptable), payload handling
(BadRequestBody), and configuration / programmer errors (CodecUnavailable,
ArgumentShapeError).
*/
package resterrors
