package routes

import (
	"mapify/internal/handlers"
	"mapify/internal/middleware"
	"mapify/internal/utils/helpers"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitRoutes(
	router *mux.Router,
	authHandler *handlers.AuthHandler,
	passwordHandler *handlers.PasswordHandler,
	placeHandler *handlers.PlaceHandler,
	healthHandler *handlers.HealthHandler,
	tokens middleware.TokenValidator,
) {
	router.Use(middleware.Recoverer, middleware.RequestID, middleware.Logging, middleware.Metrics)

	// router.Use не срабатывает без совпавшего маршрута
	unmatched := func(status int, msg string) http.Handler {
		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			helpers.Error(w, status, msg)
		})
		return middleware.Recoverer(middleware.RequestID(middleware.Logging(middleware.Metrics(h))))
	}
	router.NotFoundHandler = unmatched(http.StatusNotFound, "not found")
	router.MethodNotAllowedHandler = unmatched(http.StatusMethodNotAllowed, "method not allowed")

	// --- Публичные маршруты ---
	router.HandleFunc("/", healthHandler.Status).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	auth := router.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/forgot-password", passwordHandler.Forgot).Methods(http.MethodPost)
	auth.HandleFunc("/reset-password", passwordHandler.Reset).Methods(http.MethodPost)

	// --- Защищённые JWT ---
	places := router.PathPrefix("/places").Subrouter()
	places.Use(middleware.JWTAuth(tokens))
	places.HandleFunc("", placeHandler.ListPlaces).Methods(http.MethodGet)
	places.HandleFunc("", placeHandler.CreatePlace).Methods(http.MethodPost)
	places.HandleFunc("/{id:[0-9]+}", placeHandler.UpdatePlace).Methods(http.MethodPut)
	places.HandleFunc("/{id:[0-9]+}", placeHandler.DeletePlace).Methods(http.MethodDelete)
}
