// routes/routes.go
package routes

import (
	"net/http"

	"go-parcel/controllers"
	"go-parcel/logger"
	"go-parcel/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Controllers groups every handler the router dispatches to
type Controllers struct {
	Users    *controllers.UserController
	Parcels  *controllers.ParcelController
	Tracking *controllers.TrackingController
	Payments *controllers.PaymentController
	Intents  *controllers.PaymentIntentController
}

// RegisterRoutes sets up all the routes for the application. Only the two
// listing routes that expose per-user data go through the auth guard.
func RegisterRoutes(router *mux.Router, c Controllers, auth *middleware.Auth) {
	protected := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(h)
	}

	router.HandleFunc("/", controllers.Home).Methods(http.MethodGet)

	// User routes
	router.HandleFunc("/users", c.Users.CreateUser).Methods(http.MethodPost)

	// Parcel routes
	router.Handle("/parcels", protected(c.Parcels.GetParcels)).Methods(http.MethodGet)
	router.HandleFunc("/parcels", c.Parcels.CreateParcel).Methods(http.MethodPost)
	router.HandleFunc("/parcels/{id}", c.Parcels.GetParcelByID).Methods(http.MethodGet)
	router.HandleFunc("/parcels/{id}", c.Parcels.DeleteParcel).Methods(http.MethodDelete)

	// Tracking routes
	router.HandleFunc("/tracking", c.Tracking.CreateTrackingLog).Methods(http.MethodPost)

	// Payment routes
	router.Handle("/payments", protected(c.Payments.GetPayments)).Methods(http.MethodGet)
	router.HandleFunc("/payments", c.Payments.CreatePayment).Methods(http.MethodPost)
	router.HandleFunc("/create-payment-intent", c.Intents.CreatePaymentIntent).Methods(http.MethodPost)
}

// NewHandler builds the router with its middleware chain: CORS, panic
// recovery, trace id, request logging.
func NewHandler(c Controllers, auth *middleware.Auth, log *logger.Logger) http.Handler {
	router := mux.NewRouter()
	router.Use(chimw.RealIP)
	router.Use(middleware.TraceID(log))
	router.Use(middleware.Logging)
	router.Use(chimw.Recoverer)

	RegisterRoutes(router, c, auth)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", middleware.TraceIDHeader}),
	)
	return cors(router)
}
