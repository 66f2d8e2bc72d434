package reservation

import (
	"fmt"
	"net/http"
	"strconv"

	"bella-vista/internal/logger"
	"bella-vista/internal/view"
)

// Handler serves the reservation pages.
type Handler struct {
	service  *Service
	renderer *view.Renderer
	logger   *logger.Logger
}

// NewHandler creates a new reservation handler.
func NewHandler(service *Service, renderer *view.Renderer, log *logger.Logger) *Handler {
	return &Handler{
		service:  service,
		renderer: renderer,
		logger:   log,
	}
}

// Reservation handles GET and POST /reservation.
func (h *Handler) Reservation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.renderer.Render(w, "reservation.html", nil)
		return
	}

	requestID := logger.RequestIDFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	customerName := r.PostForm.Get("customer_name")
	contactNumber := r.PostForm.Get("contact_number")
	numPeople, _ := strconv.Atoi(r.PostForm.Get("num_people"))

	id, err := h.service.Create(r.Context(), customerName, contactNumber, numPeople)
	if err != nil {
		h.logger.Error("reservation_failed", requestID, "Failed to create reservation", err, map[string]interface{}{
			"customer_name": customerName,
		})
		h.renderer.RenderError(w, http.StatusInternalServerError, "We could not create your reservation. Please try again.")
		return
	}

	h.logger.Info("reservation_created", requestID, "Reservation created", map[string]interface{}{
		"reservation_id": id,
		"num_people":     numPeople,
	})

	http.Redirect(w, r, fmt.Sprintf("/reservation_confirmation?reservation_id=%d", id), http.StatusSeeOther)
}

// Confirmation handles GET /reservation_confirmation, displaying the id
// passed from the create redirect.
func (h *Handler) Confirmation(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, "reservation_confirmation.html", map[string]interface{}{
		"ReservationID": r.URL.Query().Get("reservation_id"),
	})
}

// Cancel handles GET and POST /cancel_reservation.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.renderer.Render(w, "cancel_reservation.html", nil)
		return
	}

	requestID := logger.RequestIDFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	id, _ := strconv.Atoi(r.PostForm.Get("reservation_id"))

	if err := h.service.Cancel(r.Context(), id); err != nil {
		h.logger.Error("reservation_cancel_failed", requestID, "Failed to cancel reservation", err, map[string]interface{}{
			"reservation_id": id,
		})
		h.renderer.RenderError(w, http.StatusInternalServerError, "We could not cancel the reservation. Please try again.")
		return
	}

	http.Redirect(w, r, "/cancel_order", http.StatusSeeOther)
}
