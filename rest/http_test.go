package rest_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RsrchBoy/catalyst-action-rest/rest"
	"github.com/RsrchBoy/catalyst-action-rest/resterrors"
)

func TestWrapCreated(test *testing.T) {
	assert := assert.New(test)
	pipeline := createPipeline(test)

	handler := pipeline.Wrap(func(request *rest.Request) rest.StatusResponse {
		return pipeline.Responder().Created(
			request.Stash, "/widgets/11", request.Entity,
		)
	})

	request := httptest.NewRequest(
		http.MethodPost, "/widgets", strings.NewReader(`{"a":1}`),
	)
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	handler(recorder, request)

	assert.Equal(http.StatusCreated, recorder.Code)
	assert.Equal("/widgets/11", recorder.Header().Get("Location"))
	assert.Equal("application/json", recorder.Header().Get("Content-Type"))
	assert.Equal(`{"a":1}`, recorder.Body.String())
}

func TestWrapNoContent(test *testing.T) {
	assert := assert.New(test)
	pipeline := createPipeline(test)

	handler := pipeline.Wrap(func(request *rest.Request) rest.StatusResponse {
		pipeline.Responder().Ok(request.Stash, "about to be discarded")
		return pipeline.Responder().NoContent(request.Stash)
	})

	request := httptest.NewRequest(http.MethodDelete, "/widgets/11", nil)

	recorder := httptest.NewRecorder()
	handler(recorder, request)

	assert.Equal(http.StatusNoContent, recorder.Code)
	assert.Empty(recorder.Body.String())
	assert.Equal("", recorder.Header().Get("Content-Type"))
}

func TestWrapMalformedBodySkipsHandler(test *testing.T) {
	assert := assert.New(test)
	pipeline := createPipeline(test)

	handlerInvoked := false
	handler := pipeline.Wrap(func(request *rest.Request) rest.StatusResponse {
		handlerInvoked = true
		return pipeline.Responder().Ok(request.Stash, request.Entity)
	})

	request := httptest.NewRequest(
		http.MethodPost, "/widgets", strings.NewReader(`{"a":`),
	)
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	handler(recorder, request)

	assert.False(handlerInvoked)
	assert.Equal(http.StatusBadRequest, recorder.Code)
	assert.Equal(
		resterrors.BadRequestBody.Name(), recorder.Header().Get("error-name"),
	)
	assert.Contains(recorder.Body.String(), `"error"`)
}

func TestWrapResponseOverrideByMethod(test *testing.T) {
	assert := assert.New(test)
	pipeline := createPipeline(test)
	handler := pipeline.Wrap(func(request *rest.Request) rest.StatusResponse {
		return pipeline.Responder().Ok(
			request.Stash, map[string]interface{}{"a": 1},
		)
	})

	// A GET honors the content-type query override over the Accept header.
	request := httptest.NewRequest(
		http.MethodGet, "/widgets/11?content-type=application/json", nil,
	)
	request.Header.Set("Accept", "text/x-yaml")

	recorder := httptest.NewRecorder()
	handler(recorder, request)

	assert.Equal(http.StatusOK, recorder.Code)
	assert.Equal("application/json", recorder.Header().Get("Content-Type"))
	assert.Equal(`{"a":1}`, recorder.Body.String())

	// A POST ignores the override and negotiates from the Accept header.
	request = httptest.NewRequest(
		http.MethodPost, "/widgets?content-type=application/json", nil,
	)
	request.Header.Set("Accept", "text/x-yaml")

	recorder = httptest.NewRecorder()
	handler(recorder, request)

	assert.Equal(http.StatusOK, recorder.Code)
	assert.Equal("application/yaml", recorder.Header().Get("Content-Type"))
	assert.Equal("a: 1\n", recorder.Body.String())
}

func TestWrapMiddlewareOrder(test *testing.T) {
	assert := assert.New(test)
	pipeline := createPipeline(test)

	var order []string
	named := func(name string) rest.Middleware {
		return func(next rest.HandlerFunc) rest.HandlerFunc {
			return func(request *rest.Request) rest.StatusResponse {
				order = append(order, name)
				return next(request)
			}
		}
	}

	pipeline.Use(named("outer"), named("inner"))

	handler := pipeline.Wrap(func(request *rest.Request) rest.StatusResponse {
		order = append(order, "handler")
		return pipeline.Responder().NoContent(request.Stash)
	})

	recorder := httptest.NewRecorder()
	handler(recorder, httptest.NewRequest(http.MethodGet, "/widgets", nil))

	assert.Equal([]string{"outer", "inner", "handler"}, order)
}

func TestWrapRecoversRestErrorPanic(test *testing.T) {
	assert := assert.New(test)
	pipeline := createPipeline(test)

	handler := pipeline.Wrap(func(request *rest.Request) rest.StatusResponse {
		resterrors.APIError.Panic("backend exploded", nil, nil)
		return rest.StatusResponse{}
	})

	request := httptest.NewRequest(http.MethodGet, "/widgets/11", nil)

	recorder := httptest.NewRecorder()
	handler(recorder, request)

	assert.Equal(http.StatusBadGateway, recorder.Code)
	assert.Equal(resterrors.APIError.Name(), recorder.Header().Get("error-name"))
	assert.Equal("backend exploded", recorder.Header().Get("error-message"))
	assert.Equal(`{"error":"backend exploded"}`, recorder.Body.String())
}

func TestWrapOtherPanicsPropagate(test *testing.T) {
	assert := assert.New(test)
	pipeline := createPipeline(test)

	handler := pipeline.Wrap(func(request *rest.Request) rest.StatusResponse {
		panic("not a rest error")
	})

	recorder := httptest.NewRecorder()
	assert.PanicsWithValue("not a rest error", func() {
		handler(recorder, httptest.NewRequest(http.MethodGet, "/widgets", nil))
	})
}

func TestWrapNotAcceptableHeadersSurvive(test *testing.T) {
	assert := assert.New(test)
	pipeline := createPipeline(test, rest.WithDefaultType(""))

	handler := pipeline.Wrap(func(request *rest.Request) rest.StatusResponse {
		return pipeline.Responder().Ok(
			request.Stash, map[string]interface{}{"a": 1},
		)
	})

	// No Content-Type to echo and an unregistered Accept leave nothing to
	// negotiate.
	request := httptest.NewRequest(http.MethodGet, "/widgets/11", nil)
	request.Header.Set("Accept", "text/csv")

	recorder := httptest.NewRecorder()
	handler(recorder, request)

	assert.Equal(http.StatusNotAcceptable, recorder.Code)
	assert.Empty(recorder.Body.String())
	assert.Equal(
		resterrors.NotAcceptable.Name(), recorder.Header().Get("error-name"),
	)
}
