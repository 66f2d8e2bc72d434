package web

import (
	"github.com/go-chi/chi/v5"

	"bella-vista/internal/logger"
	"bella-vista/internal/services/feedback"
	"bella-vista/internal/services/order"
	"bella-vista/internal/services/reservation"
)

// NewRouter wires every page of the application.
func NewRouter(orders *order.Handler, reservations *reservation.Handler, feedbacks *feedback.Handler, log *logger.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logging(log))
	r.Use(Recover(log))

	r.Get("/", orders.Home)
	r.Get("/dinein", orders.DineIn)
	r.Post("/order", orders.CreateOrder)
	r.Get("/payment", orders.Payment)
	r.Post("/process_payment", orders.ProcessPayment)
	r.Get("/payment_confirmation", orders.PaymentConfirmation)
	r.Get("/delivery", orders.Delivery)
	r.Post("/process_delivery", orders.ProcessDelivery)
	r.Get("/cancel_order", orders.CancelOrder)
	r.Get("/order_status", orders.OrderStatus)

	r.Get("/reservation", reservations.Reservation)
	r.Post("/reservation", reservations.Reservation)
	r.Get("/reservation_confirmation", reservations.Confirmation)
	r.Get("/cancel_reservation", reservations.Cancel)
	r.Post("/cancel_reservation", reservations.Cancel)

	r.Get("/feedback", feedbacks.Feedback)
	r.Post("/feedback", feedbacks.Feedback)
	r.Get("/feedback_confirmation", feedbacks.Confirmation)

	return r
}
