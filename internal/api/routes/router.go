package routes

import (
	"net/http"

	"github.com/healthhub/healthhub-backend/internal/api/handlers"
	"github.com/healthhub/healthhub-backend/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	doctorHandler      *handlers.DoctorHandler
	appointmentHandler *handlers.AppointmentHandler
	paymentHandler     *handlers.PaymentHandler
	patientHandler     *handlers.PatientHandler
	labHandler         *handlers.LabHandler
	medicineHandler    *handlers.MedicineHandler
	sseHandler         *handlers.SSEHandler
}

// NewRouter creates a new router
func NewRouter(
	doctorHandler *handlers.DoctorHandler,
	appointmentHandler *handlers.AppointmentHandler,
	paymentHandler *handlers.PaymentHandler,
	patientHandler *handlers.PatientHandler,
	labHandler *handlers.LabHandler,
	medicineHandler *handlers.MedicineHandler,
	sseHandler *handlers.SSEHandler,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		doctorHandler:      doctorHandler,
		appointmentHandler: appointmentHandler,
		paymentHandler:     paymentHandler,
		patientHandler:     patientHandler,
		labHandler:         labHandler,
		medicineHandler:    medicineHandler,
		sseHandler:         sseHandler,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Doctor discovery endpoints
	r.mux.HandleFunc("GET /api/doctors", r.doctorHandler.ListDoctors)
	r.mux.HandleFunc("GET /api/doctors/search", r.doctorHandler.SearchDoctors)
	r.mux.HandleFunc("GET /api/doctors/{id}", r.doctorHandler.GetDoctor)
	r.mux.HandleFunc("GET /api/doctors/{id}/schedule", r.doctorHandler.GetSchedule)
	r.mux.HandleFunc("GET /api/availabilities/{id}/slots", r.doctorHandler.GetDaySlots)

	// Appointment endpoints
	r.mux.HandleFunc("POST /api/appointments", r.appointmentHandler.CreateAppointment)
	r.mux.HandleFunc("GET /api/appointments", r.appointmentHandler.ListAppointments)
	r.mux.HandleFunc("GET /api/appointments/{id}", r.appointmentHandler.GetAppointment)
	r.mux.HandleFunc("POST /api/appointments/{id}/confirm", r.appointmentHandler.ConfirmAppointment)
	r.mux.HandleFunc("POST /api/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment)

	// Payment endpoints
	r.mux.HandleFunc("POST /create-payment-intent", r.paymentHandler.CreatePaymentIntent)
	r.mux.HandleFunc("GET /api/payments", r.paymentHandler.ListPayments)

	// Patient profile endpoints
	r.mux.HandleFunc("GET /api/patients/{id}", r.patientHandler.GetPatient)
	r.mux.HandleFunc("PUT /api/patients/{id}", r.patientHandler.SavePatient)
	r.mux.HandleFunc("GET /api/blood-banks", r.patientHandler.ListBloodBanks)

	// Lab endpoints
	r.mux.HandleFunc("GET /api/labs", r.labHandler.ListLabs)
	r.mux.HandleFunc("GET /api/labs/{id}/tests", r.labHandler.ListTests)
	r.mux.HandleFunc("POST /api/lab-reports", r.labHandler.BookTest)
	r.mux.HandleFunc("GET /api/lab-reports", r.labHandler.ListReports)

	// Medicine history endpoints
	r.mux.HandleFunc("POST /api/medicines", r.medicineHandler.AddMedicine)
	r.mux.HandleFunc("GET /api/medicines", r.medicineHandler.ListMedicines)
	r.mux.HandleFunc("PUT /api/medicines/{id}", r.medicineHandler.UpdateMedicine)
	r.mux.HandleFunc("DELETE /api/medicines/{id}", r.medicineHandler.DeleteMedicine)

	// Streaming endpoints
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/appointments", r.sseHandler.StreamAppointmentUpdates)
		r.mux.HandleFunc("GET /api/stream/doctors/{id}", r.sseHandler.StreamDoctorUpdates)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
