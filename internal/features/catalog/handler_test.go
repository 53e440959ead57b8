package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/handlerutils"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/servererrors"
)

// A JSON body of "null" decodes into a nil payload without a decode error;
// the handlers must report a bad request, not dereference it.
func Test_productHandlers_nullBody(t *testing.T) {
	h := NewHandler(nil, nil)

	cases := []struct {
		name    string
		handler handlerutils.APIHandler
		request func() *http.Request
	}{
		{
			name:    "create product",
			handler: h.createProductHandler,
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/product", strings.NewReader("null"))
			},
		},
		{
			name:    "update product",
			handler: h.updateProductHandler,
			request: func() *http.Request {
				req := httptest.NewRequest(http.MethodPut, "/product/x", strings.NewReader("null"))

				rctx := chi.NewRouteContext()
				rctx.URLParams.Add("productID", uuid.New().String())

				return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			err := c.handler(rec, c.request())

			var serverError *servererrors.ServerError
			if !errors.As(err, &serverError) {
				t.Fatalf("expected a ServerError for a null body, got %v", err)
			}

			if serverError.StatusCode != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", serverError.StatusCode)
			}

			if serverError.Message != servererrors.ErrInvalidRequestPayload.Error() {
				t.Errorf("expected %q, got %q", servererrors.ErrInvalidRequestPayload.Error(), serverError.Message)
			}
		})
	}
}
