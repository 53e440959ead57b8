package order

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vidyatarun06/FreshFarmerBackend/internal/servererrors"
)

// A JSON body of "null" decodes into a nil payload without a decode error;
// the handler must report a bad request, not dereference it.
func Test_placeOrderHandler_nullBody(t *testing.T) {
	h := NewHandler(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader("null"))
	rec := httptest.NewRecorder()

	err := h.placeOrderHandler(rec, req)

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
}
