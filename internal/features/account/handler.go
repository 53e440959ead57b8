package account

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/handlerutils"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/servererrors"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/validate"
)

type servicer interface {
	registerAccount(ctx context.Context, req *RegisterRequest) error
	login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	resetPassword(ctx context.Context, req *ResetPasswordRequest) error
}

type middleware interface {
	ErrorHandler(h handlerutils.APIHandler) http.HandlerFunc
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(accountService servicer, middleware middleware) *handler {
	return &handler{
		service:    accountService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/register",
		h.middleware.ErrorHandler(h.registerHandler),
	)

	router.Post(
		"/login",
		h.middleware.ErrorHandler(h.loginHandler),
	)

	router.Post(
		"/reset-password",
		h.middleware.ErrorHandler(h.resetPasswordHandler),
	)
}

func (h *handler) registerHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), (30 * time.Second))
	defer cancel()

	var payload *RegisterRequest
	defer r.Body.Close()

	// a JSON body of "null" decodes into a nil payload without an error
	if err := handlerutils.ParseJSON(r, &payload); err != nil || payload == nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrAllFieldsRequired.Error(),
			nil,
		)
	}

	err := h.service.registerAccount(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrAllFieldsRequired):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrAllFieldsRequired.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrInvalidRole):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrInvalidRole.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrUsernameTaken):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrUsernameTaken.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"User registered successfully!",
		nil,
	)
}

func (h *handler) loginHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), (30 * time.Second))
	defer cancel()

	var payload *LoginRequest
	defer r.Body.Close()

	// a JSON body of "null" decodes into a nil payload without an error
	if err := handlerutils.ParseJSON(r, &payload); err != nil || payload == nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrAllFieldsRequired.Error(),
			nil,
		)
	}

	res, err := h.service.login(ctx, payload)
	if err != nil {
		if errors.Is(err, servererrors.ErrInvalidCredentials) {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrInvalidCredentials.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Login successful!",
		res,
	)
}

func (h *handler) resetPasswordHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), (30 * time.Second))
	defer cancel()

	var payload *ResetPasswordRequest
	defer r.Body.Close()

	// a JSON body of "null" decodes into a nil payload without an error
	if err := handlerutils.ParseJSON(r, &payload); err != nil || payload == nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrAllFieldsRequired.Error(),
			nil,
		)
	}

	err := h.service.resetPassword(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrInvalidRole):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrInvalidRole.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrUserNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrUserNotFound.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Password reset successfully!",
		nil,
	)
}
