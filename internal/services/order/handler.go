package order

import (
	"errors"
	"net/http"

	"bella-vista/internal/logger"
	"bella-vista/internal/menu"
	"bella-vista/internal/models"
	"bella-vista/internal/session"
	"bella-vista/internal/view"
)

// Handler serves the order workflow pages.
type Handler struct {
	service  *Service
	catalog  *menu.Catalog
	sessions *session.Manager
	renderer *view.Renderer
	logger   *logger.Logger
}

// NewHandler creates a new order handler.
func NewHandler(service *Service, catalog *menu.Catalog, sessions *session.Manager, renderer *view.Renderer, log *logger.Logger) *Handler {
	return &Handler{
		service:  service,
		catalog:  catalog,
		sessions: sessions,
		renderer: renderer,
		logger:   log,
	}
}

// Home handles GET /. It mints the session token that doubles as the
// customer id for this visitor.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	token := h.sessions.Token(w, r)
	h.renderer.Render(w, "home.html", map[string]interface{}{
		"CustomerID": token,
	})
}

// DineIn handles GET /dinein.
func (h *Handler) DineIn(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, "dinein.html", map[string]interface{}{
		"MenuItems": h.catalog.List(),
	})
}

// CreateOrder handles POST /order: it submits the cart and creates the
// order rows.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestIDFromContext(r.Context())
	token := h.sessions.Token(w, r)

	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	cart, err := h.service.PlaceOrder(r.Context(), token, r.PostForm)
	if err != nil {
		if errors.Is(err, ErrEmptyOrder) {
			h.renderer.RenderError(w, http.StatusBadRequest, "Please select at least one item.")
			return
		}
		h.logger.Error("order_creation_failed", requestID, "Failed to place order", err, map[string]interface{}{
			"customer_id": token,
		})
		h.renderer.RenderError(w, http.StatusInternalServerError, "We could not place your order. Please try again.")
		return
	}

	h.logger.Info("order_placed", requestID, "Order placed", map[string]interface{}{
		"customer_id":  token,
		"total_amount": cart.TotalAmount.String(),
	})

	http.Redirect(w, r, "/payment", http.StatusSeeOther)
}

// Payment handles GET /payment. With no active cart the total shows as
// zero.
func (h *Handler) Payment(w http.ResponseWriter, r *http.Request) {
	token := h.sessions.Token(w, r)

	total := "0"
	if cart, err := h.service.Cart(r.Context(), token); err == nil {
		total = cart.TotalAmount.String()
	}

	h.renderer.Render(w, "payment.html", map[string]interface{}{
		"TotalAmount": total,
	})
}

// ProcessPayment handles POST /process_payment.
func (h *Handler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestIDFromContext(r.Context())
	token := h.sessions.Token(w, r)

	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	method := r.PostForm.Get("payment_method")
	if err := h.service.ChoosePayment(r.Context(), token, method); err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidPaymentMethod):
			h.renderer.RenderError(w, http.StatusBadRequest, "Payment method must be card or cash.")
		case errors.Is(err, ErrNoActiveOrder):
			h.renderer.RenderError(w, http.StatusBadRequest, "There is no order in progress for this session.")
		default:
			h.logger.Error("payment_update_failed", requestID, "Failed to record payment method", err, map[string]interface{}{
				"customer_id": token,
			})
			h.renderer.RenderError(w, http.StatusInternalServerError, "We could not record your payment. Please try again.")
		}
		return
	}

	http.Redirect(w, r, "/payment_confirmation", http.StatusSeeOther)
}

// PaymentConfirmation handles GET /payment_confirmation. Reaching it
// clears the session cart.
func (h *Handler) PaymentConfirmation(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestIDFromContext(r.Context())
	token := h.sessions.Token(w, r)

	if err := h.service.ConfirmPayment(r.Context(), token); err != nil {
		h.logger.Error("cart_clear_failed", requestID, "Failed to clear cart", err, map[string]interface{}{
			"customer_id": token,
		})
	}

	h.renderer.Render(w, "payment_confirmation.html", nil)
}

// Delivery handles GET /delivery.
func (h *Handler) Delivery(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, "delivery.html", nil)
}

// ProcessDelivery handles POST /process_delivery.
func (h *Handler) ProcessDelivery(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestIDFromContext(r.Context())
	token := h.sessions.Token(w, r)

	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	address := r.PostForm.Get("address")
	phone := r.PostForm.Get("phone")

	if err := h.service.SetDeliveryDetails(r.Context(), token, address, phone); err != nil {
		h.logger.Error("delivery_update_failed", requestID, "Failed to record delivery details", err, map[string]interface{}{
			"customer_id": token,
		})
		h.renderer.RenderError(w, http.StatusInternalServerError, "We could not save your delivery details. Please try again.")
		return
	}

	h.renderer.Render(w, "delivery_confirmation.html", map[string]interface{}{
		"Address": address,
		"Phone":   phone,
	})
}

// CancelOrder handles GET /cancel_order.
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestIDFromContext(r.Context())
	token := h.sessions.Token(w, r)

	if err := h.service.CancelOrder(r.Context(), token); err != nil {
		h.logger.Error("cart_clear_failed", requestID, "Failed to clear cart", err, map[string]interface{}{
			"customer_id": token,
		})
	}

	h.renderer.Render(w, "cancel_order.html", nil)
}

// OrderStatus handles GET /order_status, listing the persisted rows of
// this session's orders.
func (h *Handler) OrderStatus(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestIDFromContext(r.Context())
	token := h.sessions.Token(w, r)

	rows, err := h.service.OrdersForCustomer(r.Context(), token)
	if err != nil {
		h.logger.Error("order_lookup_failed", requestID, "Failed to load orders", err, map[string]interface{}{
			"customer_id": token,
		})
		h.renderer.RenderError(w, http.StatusInternalServerError, "We could not load your orders.")
		return
	}

	h.renderer.Render(w, "order_status.html", map[string]interface{}{
		"Orders": rows,
	})
}
