package catalog

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/features/account"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/handlerutils"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/middlewares"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/servererrors"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/validate"
)

type servicer interface {
	createProduct(ctx context.Context, req *CreateProductRequest) (*Product, error)
	getAllProducts(ctx context.Context) ([]*Product, error)
	getProductsByFarmer(ctx context.Context, farmer string) ([]*Product, error)
	updateProduct(ctx context.Context, productID uuid.UUID, req *UpdateProductRequest) error
	deleteProduct(ctx context.Context, productID uuid.UUID, farmer string) error
}

type middleware interface {
	ErrorHandler(h handlerutils.APIHandler) http.HandlerFunc
	RequireRole(h handlerutils.APIHandler, requiredRole string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(catalogService servicer, middleware middleware) *handler {
	return &handler{
		service:    catalogService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/products",
		h.middleware.ErrorHandler(h.getAllProductsHandler),
	)

	router.Get(
		"/farmer-products",
		h.middleware.ErrorHandler(h.getFarmerProductsHandler),
	)

	// protected routes
	router.Post(
		"/product",
		h.middleware.ErrorHandler(
			h.middleware.RequireRole(
				h.createProductHandler,
				account.RoleFarmer,
			),
		),
	)

	router.Put(
		"/product/{productID}",
		h.middleware.ErrorHandler(
			h.middleware.RequireRole(
				h.updateProductHandler,
				account.RoleFarmer,
			),
		),
	)

	router.Delete(
		"/product/{productID}",
		h.middleware.ErrorHandler(
			h.middleware.RequireRole(
				h.deleteProductHandler,
				account.RoleFarmer,
			),
		),
	)
}

func (h *handler) createProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), (30 * time.Second))
	defer cancel()

	var payload *CreateProductRequest
	defer r.Body.Close()

	// a JSON body of "null" decodes into a nil payload without an error
	if err := handlerutils.ParseJSON(r, &payload); err != nil || payload == nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	payload.Farmer = middlewares.GetUsernameFromContext(ctx)

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrAllFieldsRequired.Error(),
			nil,
		)
	}

	product, err := h.service.createProduct(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrInvalidPrice):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrInvalidPrice.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrFarmerNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrFarmerNotFound.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Product added successfully!",
		product,
	)
}

func (h *handler) getAllProductsHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), (30 * time.Second))
	defer cancel()

	products, err := h.service.getAllProducts(ctx)
	if err != nil {
		return err
	}

	return handlerutils.WriteJSON(w, http.StatusOK, products)
}

func (h *handler) getFarmerProductsHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), (30 * time.Second))
	defer cancel()

	farmer := r.URL.Query().Get("farmer")
	if farmer == "" {
		return servererrors.New(
			http.StatusBadRequest,
			"Farmer username is required!",
			nil,
		)
	}

	products, err := h.service.getProductsByFarmer(ctx, farmer)
	if err != nil {
		return err
	}

	return handlerutils.WriteJSON(w, http.StatusOK, products)
}

func (h *handler) updateProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), (30 * time.Second))
	defer cancel()

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrProductNotFound.Error(),
			nil,
		)
	}

	var payload *UpdateProductRequest
	defer r.Body.Close()

	// a JSON body of "null" decodes into a nil payload without an error
	if err := handlerutils.ParseJSON(r, &payload); err != nil || payload == nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	payload.Farmer = middlewares.GetUsernameFromContext(ctx)

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrAllFieldsRequired.Error(),
			nil,
		)
	}

	err = h.service.updateProduct(ctx, productID, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrInvalidPrice):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrInvalidPrice.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrNotProductOwner):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrNotProductOwner.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Product updated successfully!",
		nil,
	)
}

func (h *handler) deleteProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), (30 * time.Second))
	defer cancel()

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrProductNotFound.Error(),
			nil,
		)
	}

	farmer := middlewares.GetUsernameFromContext(ctx)

	err = h.service.deleteProduct(ctx, productID, farmer)
	if err != nil {
		if errors.Is(err, servererrors.ErrNotProductOwner) {
			return servererrors.New(
				http.StatusForbidden,
				servererrors.ErrNotProductOwner.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Product deleted successfully!",
		nil,
	)
}
