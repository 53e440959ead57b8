package profile

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/features/account"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/handlerutils"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/middlewares"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/servererrors"
)

type servicer interface {
	getProfile(ctx context.Context, username string) (*Profile, error)
	updateProfile(ctx context.Context, username string, req *UpdateProfileRequest) error
}

type middleware interface {
	ErrorHandler(h handlerutils.APIHandler) http.HandlerFunc
	RequireRole(h handlerutils.APIHandler, requiredRole string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(profileService servicer, middleware middleware) *handler {
	return &handler{
		service:    profileService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/farmer-profile/{username}",
		h.middleware.ErrorHandler(h.getProfileHandler),
	)

	// protected routes
	router.Put(
		"/farmer-profile/{username}",
		h.middleware.ErrorHandler(
			h.middleware.RequireRole(
				h.updateProfileHandler,
				account.RoleFarmer,
			),
		),
	)
}

func (h *handler) getProfileHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), (30 * time.Second))
	defer cancel()

	username := chi.URLParam(r, "username")

	profile, err := h.service.getProfile(ctx, username)
	if err != nil {
		if errors.Is(err, servererrors.ErrProfileNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProfileNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"profile found",
		profile,
	)
}

func (h *handler) updateProfileHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), (30 * time.Second))
	defer cancel()

	username := chi.URLParam(r, "username")

	// a farmer may only edit their own profile
	if middlewares.GetUsernameFromContext(ctx) != username {
		return servererrors.New(
			http.StatusForbidden,
			servererrors.ErrUnauthorizedAccess.Error(),
			nil,
		)
	}

	var payload *UpdateProfileRequest
	defer r.Body.Close()

	// a JSON body of "null" decodes into a nil payload without an error
	if err := handlerutils.ParseJSON(r, &payload); err != nil || payload == nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	err := h.service.updateProfile(ctx, username, payload)
	if err != nil {
		if errors.Is(err, servererrors.ErrProfileNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProfileNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Profile updated successfully!",
		nil,
	)
}
