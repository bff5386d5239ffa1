package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-course-payments/internal/payments"
	"github.com/ariefcatur/go-course-payments/internal/razorpay"
)

type StatusCache interface {
	GetStatus(ctx context.Context, orderID string) (payments.Status, error)
	SetStatus(ctx context.Context, orderID string, s payments.Status) error
}

type StatusRepo interface {
	OrderStatus(ctx context.Context, orderID string) (payments.Status, error)
}

type OrdersHandler struct {
	Initiator *payments.Initiator
	Pipeline  *payments.Pipeline

	// Optional; GET /orders/{id} answers 404 when both are nil.
	Cache StatusCache
	Repo  StatusRepo

	Logger *slog.Logger
}

type response struct {
	Success    bool            `json:"success"`
	Order      json.RawMessage `json:"order,omitempty"`
	ReceiptURL string          `json:"receiptUrl,omitempty"`
	OrderID    string          `json:"orderId,omitempty"`
	Status     payments.Status `json:"status,omitempty"`
	Error      any             `json:"error,omitempty"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/create", h.createOrder)
	r.Post("/payment", h.confirmPayment)
	r.Get("/orders/{id}", h.getOrder)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func fail(w http.ResponseWriter, code int, e any) {
	writeJSON(w, code, response{Success: false, Error: e})
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req payments.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	h.Logger.InfoContext(r.Context(), "create order", "course", req.Course, "classstand", req.ClassStand, "amount", req.Amount)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	order, err := h.Initiator.CreateOrder(ctx, req)
	if err != nil {
		var verr *payments.ValidationError
		var apiErr *razorpay.APIError
		switch {
		case errors.As(err, &verr):
			fail(w, http.StatusBadRequest, verr.Error())
		case errors.As(err, &apiErr):
			fail(w, http.StatusBadRequest, apiErr.Payload)
		default:
			fail(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Order: order})
}

func (h *OrdersHandler) confirmPayment(w http.ResponseWriter, r *http.Request) {
	var cb payments.PaymentCallback
	if err := json.NewDecoder(r.Body).Decode(&cb); err != nil {
		fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	h.Logger.InfoContext(r.Context(), "payment callback",
		"order_id", cb.OrderID, "payment_id", cb.PaymentID, "course", cb.Course, "classstand", cb.ClassStand)

	// The payment is already captured at the gateway, so a caller hanging up
	// must not abort fulfillment halfway.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 25*time.Second)
	defer cancel()

	link, err := h.Pipeline.Confirm(ctx, cb)
	if err != nil {
		var verr *payments.ValidationError
		switch {
		case errors.Is(err, payments.ErrInvalidSignature):
			fail(w, http.StatusBadRequest, "Invalid payment signature")
		case errors.As(err, &verr):
			fail(w, http.StatusBadRequest, verr.Error())
		case errors.Is(err, payments.ErrNoDownloadLink):
			fail(w, http.StatusInternalServerError, "No download link found")
		default:
			fail(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, ReceiptURL: link})
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		fail(w, http.StatusBadRequest, "missing id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// 1) cache
	if h.Cache != nil {
		s, err := h.Cache.GetStatus(ctx, orderID)
		if err == nil {
			writeJSON(w, http.StatusOK, response{Success: true, OrderID: orderID, Status: s})
			return
		}
		if !errors.Is(err, payments.ErrOrderNotFound) {
			h.Logger.WarnContext(ctx, "status cache read", "order_id", orderID, "err", err)
		}
	}

	// 2) mirror table
	if h.Repo != nil {
		s, err := h.Repo.OrderStatus(ctx, orderID)
		switch {
		case err == nil:
			if h.Cache != nil {
				if err := h.Cache.SetStatus(ctx, orderID, s); err != nil {
					h.Logger.WarnContext(ctx, "warm status cache", "order_id", orderID, "err", err)
				}
			}
			writeJSON(w, http.StatusOK, response{Success: true, OrderID: orderID, Status: s})
			return
		case !errors.Is(err, payments.ErrOrderNotFound):
			fail(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	fail(w, http.StatusNotFound, payments.ErrOrderNotFound.Error())
}
