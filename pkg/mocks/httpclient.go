package mocks

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/stretchr/testify/mock"
)

// HTTPClient is a testify mock of httpclient.HTTPClient. Expectations may
// return a nil *http.Response together with an error.
type HTTPClient struct {
	mock.Mock
}

func (h *HTTPClient) Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	return h.response(h.Called(ctx, url, headers))
}

func (h *HTTPClient) Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	return h.response(h.Called(ctx, url, body, headers))
}

func (h *HTTPClient) PostForm(ctx context.Context, url string, form url.Values, headers map[string]string) (*http.Response, error) {
	return h.response(h.Called(ctx, url, form, headers))
}

func (h *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	return h.response(h.Called(req))
}

func (h *HTTPClient) response(args mock.Arguments) (*http.Response, error) {
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}
