package http

import (
	"net/http"

	"github.com/atinyakov/SmileCare/internal/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Auth         *AuthHandler
	Appointments *AppointmentHandler
	Records      *RecordHandler
	Catalog      CatalogHandler
	Plan         *PlanHandler
	Cart         *CartHandler
}

// NewRouter constructs the portal API.
//
// Routes:
//
//	POST   /api/register, /api/login        (rate limited)
//	POST   /api/logout, GET /api/me         (session)
//	GET    /api/appointments, POST, DELETE /api/appointments/{id}  (session)
//	GET    /api/records, POST               (session)
//	GET    /api/appointments/next, /api/treatment-plan  (session)
//	GET    /api/catalog/...
//	/api/cart...
//	GET    /metrics, /healthz
//
// Session routes require a bearer token issued for the current user.
func NewRouter(
	h Handlers,
	limiter *middleware.RateLimiter,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.WithRequestLogging(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	currentID := func() string {
		if u := h.Auth.Sessions.Current(); u != nil {
			return u.ID
		}
		return ""
	}

	r.Route("/api", func(r chi.Router) {
		// Only allow bodies with Content-Type: application/json
		r.Use(chiMiddleware.AllowContentType("application/json"))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(limiter))
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuth(h.Auth.Secret, currentID))
			r.Post("/logout", h.Auth.Logout)
			r.Get("/me", h.Auth.Me)

			r.Get("/appointments", h.Appointments.List)
			r.Get("/appointments/next", h.Appointments.Next)
			r.Post("/appointments", h.Appointments.Create)
			r.Delete("/appointments/{id}", h.Appointments.Cancel)

			r.Get("/records", h.Records.List)
			r.Post("/records", h.Records.Create)

			r.Get("/treatment-plan", h.Plan.Get)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/doctors", h.Catalog.Doctors)
			r.Get("/appointment-types", h.Catalog.AppointmentTypes)
			r.Get("/products", h.Catalog.Products)
			r.Get("/products/{id}", h.Catalog.Product)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.Get)
			r.Delete("/", h.Cart.Clear)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items/{productID}", h.Cart.UpdateItem)
			r.Delete("/items/{productID}", h.Cart.RemoveItem)
			r.Post("/checkout", h.Cart.Checkout)
		})
	})

	return r
}
