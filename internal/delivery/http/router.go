package http

import (
	"net/http"

	"salon-booking/internal/delivery/http/handler"
	"salon-booking/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	bookingHandler    *handler.BookingHandler
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
	metricsHandler    http.Handler
}

func NewRouter(
	bookingHandler *handler.BookingHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		bookingHandler:    bookingHandler,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
		metricsHandler:    metricsHandler,
	}
}

func (r *Router) Setup() *mux.Router {
	if r.metricsHandler != nil {
		r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)
	}

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Booking widget
	api.HandleFunc("/services", r.bookingHandler.GetServices).Methods(http.MethodGet)
	api.HandleFunc("/widget/settings", r.bookingHandler.GetWidgetSettings).Methods(http.MethodGet)
	api.HandleFunc("/appointments", r.bookingHandler.GetAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments/fragment", r.bookingHandler.GetAppointmentsFragment).Methods(http.MethodGet)
	api.HandleFunc("/appointments", r.bookingHandler.CreateAppointment).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/appointments/{id}/cancel", r.bookingHandler.CancelAppointment).Methods(http.MethodPost, http.MethodOptions)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
