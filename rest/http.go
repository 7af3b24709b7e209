package rest

import (
	"bytes"
	"io"
	"net/http"

	"github.com/RsrchBoy/catalyst-action-rest/models"
	"github.com/RsrchBoy/catalyst-action-rest/resterrors"
)

/*
Wrap binds handler (and the pipeline's middleware chain) into a net/http handler:
the request body is read and decoded through BeginRequest, the handler runs, and
the stashed entity is written back through EndRequest.

RestErrors short-circuit the handler and are written as an {error: message} entity
in a negotiated format where one resolves, alongside the error-* response headers
so structured error details survive even a bodiless 406. A handler panicking with a
*RestError (the ErrorType.Panic idiom) is recovered here and written the same way;
all other panics propagate to the host server untouched.
*/
func (pipeline *Pipeline) Wrap(handler HandlerFunc) http.HandlerFunc {
	wrapped := Chain(handler, pipeline.middleware...)

	return func(writer http.ResponseWriter, request *http.Request) {
		var body []byte
		if request.Body != nil {
			read, err := io.ReadAll(request.Body)
			if err != nil {
				restErr := resterrors.BadRequestBody.New(
					"could not read request body", nil, err,
				)
				pipeline.writeError(writer, request, restErr)
				return
			}
			body = read
		}

		entity, restErr := pipeline.BeginRequest(request.Method, request.Header, body)
		if restErr != nil {
			pipeline.writeError(writer, request, restErr)
			return
		}

		restRequest := &Request{
			Method: request.Method,
			Header: request.Header,
			Query:  request.URL.Query(),
			Entity: entity,
			Stash:  NewStash(),
		}

		statusResponse, restErr := pipeline.invokeHandler(wrapped, restRequest)
		if restErr != nil {
			pipeline.writeError(writer, request, restErr)
			return
		}

		status, responseHeader, responseBody, endErr := pipeline.EndRequest(
			statusResponse.Code,
			restRequest.Stash,
			request.Method,
			request.Header,
			restRequest.Query,
		)
		if endErr != nil {
			_ = endErr.ToHeader(writer.Header(), pipeline.engine)
		}

		for name, values := range statusResponse.Header {
			for _, value := range values {
				writer.Header().Add(name, value)
			}
		}
		for name, values := range responseHeader {
			for _, value := range values {
				writer.Header().Add(name, value)
			}
		}

		if status == 0 {
			status = http.StatusOK
		}
		writer.WriteHeader(status)
		_, _ = writer.Write(responseBody)
	}
}

// Runs the handler, recovering *RestError panics into returned errors.
func (pipeline *Pipeline) invokeHandler(
	handler HandlerFunc, restRequest *Request,
) (statusResponse StatusResponse, restErr *resterrors.RestError) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}

		panicked, ok := recovered.(*resterrors.RestError)
		if !ok {
			panic(recovered)
		}
		restErr = panicked
	}()

	statusResponse = handler(restRequest)
	return statusResponse, restErr
}

// Writes a RestError as an HTTP response: error details in the error-* headers, an
// {error: message} body when a response format can still be negotiated, and the
// error type's HTTP status.
func (pipeline *Pipeline) writeError(
	writer http.ResponseWriter, request *http.Request, restErr *resterrors.RestError,
) {
	_ = restErr.ToHeader(writer.Header(), pipeline.engine)

	var responseBody []byte
	result, negotiateErr := pipeline.negotiator.ResponseType(
		request.Method, request.URL.Query().Get("content-type"), request.Header,
	)
	if negotiateErr == nil {
		buffer := bytes.Buffer{}
		err := pipeline.engine.Encode(
			result.Ref, models.ErrorResponse{Error: restErr.Message}, &buffer,
		)
		if err == nil {
			writer.Header().Set("Content-Type", string(result.Type))
			responseBody = buffer.Bytes()
		}
	}

	status := restErr.HTTPCode()
	if status <= 0 {
		status = http.StatusInternalServerError
	}
	writer.WriteHeader(status)
	_, _ = writer.Write(responseBody)
}
