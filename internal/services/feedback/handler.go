package feedback

import (
	"net/http"

	"bella-vista/internal/logger"
	"bella-vista/internal/view"
)

// Handler serves the feedback pages.
type Handler struct {
	service  *Service
	renderer *view.Renderer
	logger   *logger.Logger
}

// NewHandler creates a new feedback handler.
func NewHandler(service *Service, renderer *view.Renderer, log *logger.Logger) *Handler {
	return &Handler{
		service:  service,
		renderer: renderer,
		logger:   log,
	}
}

// Feedback handles GET and POST /feedback.
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.renderer.Render(w, "feedback.html", nil)
		return
	}

	requestID := logger.RequestIDFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	customerName := r.PostForm.Get("customer_name")
	feedbackText := r.PostForm.Get("feedback_text")

	if err := h.service.Submit(r.Context(), customerName, feedbackText); err != nil {
		h.logger.Error("feedback_failed", requestID, "Failed to save feedback", err, map[string]interface{}{
			"customer_name": customerName,
		})
		h.renderer.RenderError(w, http.StatusInternalServerError, "We could not save your feedback. Please try again.")
		return
	}

	http.Redirect(w, r, "/feedback_confirmation", http.StatusSeeOther)
}

// Confirmation handles GET /feedback_confirmation.
func (h *Handler) Confirmation(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, "feedback_confirmation.html", nil)
}
