package admin

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/handlerutils"
)

type servicer interface {
	resetDatastore(ctx context.Context) error
}

type middleware interface {
	ErrorHandler(h handlerutils.APIHandler) http.HandlerFunc
	RequireAdminKey(h handlerutils.APIHandler) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(adminService servicer, middleware middleware) *handler {
	return &handler{
		service:    adminService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/admin/reset",
		h.middleware.ErrorHandler(
			h.middleware.RequireAdminKey(h.resetHandler),
		),
	)
}

func (h *handler) resetHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), (30 * time.Second))
	defer cancel()

	if err := h.service.resetDatastore(ctx); err != nil {
		return err
	}

	log.Println("datastore reset by administrative request")

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Database reset successful!",
		nil,
	)
}
