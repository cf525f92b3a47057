package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

// TestData drives a route handler directly in tests, bypassing the
// router but still exercising URL params and headers.
type TestData struct {
	Route   func(d RouteData, r *http.Request) HttpResponse
	Method  string
	Path    string
	Body    []byte
	Params  map[string]string
	Headers map[string]string
}

// Test invokes the handler with a synthetic request and returns its
// response for assertions.
func Test(d TestData) HttpResponse {
	if d.Method == "" {
		d.Method = "GET"
	}

	if d.Path == "" {
		d.Path = "/"
	}

	req := httptest.NewRequest(d.Method, d.Path, bytes.NewReader(d.Body))

	for k, v := range d.Headers {
		req.Header.Set(k, v)
	}

	rctx := chi.NewRouteContext()

	for k, v := range d.Params {
		rctx.URLParams.Add(k, v)
	}

	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	return d.Route(RouteData{Context: req.Context()}, req)
}
