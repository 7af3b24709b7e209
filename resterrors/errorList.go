package resterrors

// Base Error. Used when a generic error is returned by a route handler.
var APIError = NewErrorType(
	"APIError",
	1000,
	502,
)

// Request body content-type is not resolvable and no default is configured.
var UnsupportedMediaType = NewErrorType(
	"UnsupportedMediaType",
	1001,
	415,
)

// No response content-type satisfies the request and no default is configured.
var NotAcceptable = NewErrorType(
	"NotAcceptable",
	1002,
	406,
)

// Request body was present but failed to decode.
var BadRequestBody = NewErrorType(
	"BadRequestBody",
	1003,
	400,
)

// A content-type mapping points at a codec the engine does not carry. Raised at
// pipeline setup, never per-request.
var CodecUnavailable = NewErrorType(
	"CodecUnavailable",
	1004,
	500,
)

// A status helper was called with a missing or malformed required argument.
// Programmer error; panicked immediately rather than returned.
var ArgumentShapeError = NewErrorType(
	"ArgumentShapeError",
	1005,
	500,
)

// Response entity could not be encoded in the negotiated format.
var EncodeFailure = NewErrorType(
	"EncodeFailure",
	1006,
	500,
)

// List of the default error type definitions.
var ErrorList = [7]*ErrorType{
	APIError,
	UnsupportedMediaType,
	NotAcceptable,
	BadRequestBody,
	CodecUnavailable,
	ArgumentShapeError,
	EncodeFailure,
}

// Index of the default error types by API code, for use with ErrorFromHeaders.
func DefaultCodeIndex() map[int]*ErrorType {
	index := make(map[int]*ErrorType, len(ErrorList))
	for _, errorType := range ErrorList {
		index[errorType.APICode()] = errorType
	}
	return index
}
