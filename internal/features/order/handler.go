package order

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
	"github.com/vidyatarun06/FreshFarmerBackend/internal/validate"
)

type servicer interface {
	placeOrder(ctx context.Context, req *PlaceOrderRequest) (*Order, error)
	listClientOrders(ctx context.Context, clientUsername string) ([]*Order, error)
}

type middleware interface {
	ErrorHandler(h handlerutils.APIHandler) http.HandlerFunc
	RequireRole(h handlerutils.APIHandler, requiredRole string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(orderService servicer, middleware middleware) *handler {
	return &handler{
		service:    orderService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/order",
		h.middleware.ErrorHandler(
			h.middleware.RequireRole(
				h.placeOrderHandler,
				account.RoleClient,
			),
		),
	)

	router.Get(
		"/orders",
		h.middleware.ErrorHandler(
			h.middleware.RequireRole(
				h.listOrdersHandler,
				account.RoleClient,
			),
		),
	)
}

func (h *handler) placeOrderHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), (30 * time.Second))
	defer cancel()

	var payload *PlaceOrderRequest
	defer r.Body.Close()

	// a JSON body of "null" decodes into a nil payload without an error
	if err := handlerutils.ParseJSON(r, &payload); err != nil || payload == nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	payload.ClientUsername = middlewares.GetUsernameFromContext(ctx)

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrAllFieldsRequired.Error(),
			nil,
		)
	}

	newOrder, err := h.service.placeOrder(ctx, payload)
	if err != nil {
		var insufficientStock *servererrors.InsufficientStockError

		switch {
		case errors.Is(err, servererrors.ErrInvalidQuantity):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrInvalidQuantity.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrClientNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrClientNotFound.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrProductNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)

		case errors.As(err, &insufficientStock):
			return servererrors.New(
				http.StatusBadRequest,
				insufficientStock.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"Order placed successfully!",
		PlaceOrderResponse{
			OrderID: newOrder.ID,
		},
	)
}

func (h *handler) listOrdersHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), (30 * time.Second))
	defer cancel()

	clientUsername := middlewares.GetUsernameFromContext(ctx)

	orders, err := h.service.listClientOrders(ctx, clientUsername)
	if err != nil {
		return err
	}

	return handlerutils.WriteJSON(w, http.StatusOK, orders)
}
