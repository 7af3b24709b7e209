package resterrors

import (
	"bytes"
	"fmt"
	"runtime/debug"
	"strconv"

	uuid "github.com/satori/go.uuid"
	"golang.org/x/xerrors"

	"github.com/RsrchBoy/catalyst-action-rest/encoding"
)

// Interface for object that can set header information.
type headerSetter interface {
	Set(key string, value string)
}

/*
ErrorType defines a type of error that the negotiation / serialization core can
return. Each ErrorType for a given ecosystem should have a unique Name and APICode.

Codes 1000-1999 are reserved for this package's default error definitions.

Since types are declared as pointers, to protect against accidental mutation of the
error type by other packages, the underlying fields of this struct are private and
accessed through methods. Define new error types using NewErrorType()
*/
type ErrorType struct {
	// Unique human-readable name of the error type for the API ecosystem.
	name string

	// Unique number to identify the error type in the API ecosystem.
	apiCode int

	// HTTP code that should be returned when this error type is returned. Set to -1
	// if the http code is determined dynamically.
	httpCode int
}

// Returns a new rest error to be returned by the pipeline or panicked.
func (errorType *ErrorType) New(
	message string,
	errorData map[string]interface{},
	source error,
) *RestError {
	restError := RestError{
		ErrorType:   errorType,
		Message:     message,
		ID:          uuid.NewV4(),
		ErrorData:   errorData,
		sourceErr:   source,
		sourceStack: debug.Stack(),
		frame:       xerrors.Caller(0),
	}
	return &restError
}

/*
Creates a new error that is immediately passed to a panic. Expected to be recovered
by the serialization pipeline. Allows errors to be raised from anywhere inside a
helper or codec without need to explicitly pass them up a chain of nested function
returns.
*/
func (errorType *ErrorType) Panic(
	message string,
	errorData map[string]interface{},
	source error,
) {
	restError := errorType.New(message, errorData, source)
	panic(restError)
}

// Unique human-readable name of the error type for the API ecosystem.
func (errorType *ErrorType) Name() string {
	return errorType.name
}

// Unique number to identify the error type in the API ecosystem.
func (errorType *ErrorType) APICode() int {
	return errorType.apiCode
}

// HTTP code that should be returned when this error type is returned. Set to -1
// if the http code is determined dynamically.
func (errorType *ErrorType) HTTPCode() int {
	return errorType.httpCode
}

// Returns a copy of the error type with the given http code replaced.
func (errorType *ErrorType) WithHTTPCode(newHTTPCode int) *ErrorType {
	return &ErrorType{
		name:     errorType.name,
		apiCode:  errorType.apiCode,
		httpCode: newHTTPCode,
	}
}

// Allows the error type definition itself to also be a valid error for things like
// testing error equality.
func (errorType *ErrorType) Error() string {
	return errorType.name +
		" (" + strconv.Itoa(errorType.apiCode) + ")"
}

// Used to return a specific error instance.
type RestError struct {
	// The type of error we are returning.
	*ErrorType

	// A message detailing what caused the error.
	Message string

	// An id for the error being returned.
	ID uuid.UUID

	// A string / any mapping of data related to the error.
	ErrorData map[string]interface{}

	// If this error was returned because of another error, the original error is
	// stored here.
	sourceErr error

	// The debug.Stack() from where this error was instantiated.
	sourceStack []byte

	// The xerrors.Frame from where this error was instantiated.
	frame xerrors.Frame
}

// Returns true if the underlying type of this error is the same as errorType. Some
// errors may have multiple http codes possible, so we can't just compare ErrorType
// field equality directly.
func (restError *RestError) IsType(errorType *ErrorType) bool {
	return restError.ErrorType.Error() == errorType.Error()
}

// Error string to conform to builtin error interface.
func (restError *RestError) Error() string {
	return restError.ErrorType.Error() + " - " + restError.Message
}

// Implements xerrors.Wrapper.
func (restError *RestError) Unwrap() error {
	return restError.sourceErr
}

// More verbose error message that includes a debug.Stack() and source error
// information. This is not part of the Error(), Message, or ErrorData by default
// since it may contain sensitive information that is not desirable to return to the
// client.
func (restError *RestError) LogMessage() string {
	loggerMessage := fmt.Sprint(
		// print the error
		"\nMESSAGE: ",
		restError.Error(),
		"\nORIGINAL: ",
		restError.sourceErr,
		"\nPANIC STACK:\n",
		string(restError.sourceStack),
	)
	return loggerMessage
}

// Writes error to an object which implements a Set(key string, value string) method
// like http.Header.
func (restError *RestError) ToHeader(
	setter headerSetter, dataEngine encoding.ContentEngine,
) error {
	setter.Set("error-name", restError.name)
	setter.Set("error-code", strconv.Itoa(restError.apiCode))
	setter.Set("error-message", restError.Message)
	setter.Set("error-id", restError.ID.String())

	if restError.ErrorData != nil {
		dataBytes := bytes.Buffer{}
		err := dataEngine.Encode(
			encoding.Ref(encoding.CodecJSON), restError.ErrorData, &dataBytes,
		)
		if err != nil {
			return err
		}
		setter.Set("error-data", dataBytes.String())
	}

	return nil
}
