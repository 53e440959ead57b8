package middlewares

import (
	"errors"
	"log"
	"net/http"

	"github.com/vidyatarun06/FreshFarmerBackend/internal/handlerutils"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/servererrors"
)

// ErrorHandler takes a handler that returns an error and turns it into a
// HandlerFunc to create centralized error handling and logging. Internal
// errors are logged server side and surfaced as a generic 500, never echoed
// to the client.
func (mw *middleware) ErrorHandler(h handlerutils.APIHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		log.Println(err)

		var serverError *servererrors.ServerError
		if errors.As(err, &serverError) {
			handlerutils.WriteErrorJSON(
				w,
				serverError.StatusCode,
				serverError.Error(),
				serverError.Errors,
			)
			return
		}

		handlerutils.WriteErrorJSON(
			w,
			http.StatusInternalServerError,
			"something went wrong",
			nil,
		)
	}
}
