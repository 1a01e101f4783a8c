package http

import (
	"net/http"

	"health-services-backend/internal/delivery/http/handler"
	"health-services-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	doctorHandler       *handler.DoctorHandler
	dietPlanHandler     *handler.DietPlanHandler
	prescriptionHandler *handler.PrescriptionHandler
	emailHandler        *handler.EmailHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	doctorHandler *handler.DoctorHandler,
	dietPlanHandler *handler.DietPlanHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	emailHandler *handler.EmailHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		userHandler:         userHandler,
		doctorHandler:       doctorHandler,
		dietPlanHandler:     dietPlanHandler,
		prescriptionHandler: prescriptionHandler,
		emailHandler:        emailHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Doctor catalog (public)
	api.HandleFunc("/doctors", r.doctorHandler.ListDoctors).Methods(http.MethodGet)

	// Protected routes
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/users/profile", r.userHandler.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/users/profile", r.userHandler.UpdateProfile).Methods(http.MethodPut)

	// AI-backed features (quota limited)
	protected.HandleFunc("/doctor-match", r.doctorHandler.Match).Methods(http.MethodPost)
	protected.HandleFunc("/diet-plan", r.dietPlanHandler.Generate).Methods(http.MethodPost)
	protected.HandleFunc("/diet-plan/info", r.dietPlanHandler.GetDietInfo).Methods(http.MethodGet)
	protected.HandleFunc("/prescription-scan", r.prescriptionHandler.Scan).Methods(http.MethodPost)

	protected.HandleFunc("/prescriptions", r.prescriptionHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/email", r.emailHandler.Send).Methods(http.MethodPost)

	// Doctor-only routes
	doctorOnly := api.NewRoute().Subrouter()
	doctorOnly.Use(r.authMiddleware.Authenticate)
	doctorOnly.Use(middleware.RequireDoctor)
	doctorOnly.HandleFunc("/prescriptions", r.prescriptionHandler.Create).Methods(http.MethodPost)
	doctorOnly.HandleFunc("/patients", r.userHandler.ListPatients).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
