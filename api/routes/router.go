package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/greenacres/greenacres-backend/api/controllers"
	"github.com/greenacres/greenacres-backend/api/middleware"
	"github.com/greenacres/greenacres-backend/internal/auth"
	"github.com/greenacres/greenacres-backend/internal/cart"
	"github.com/greenacres/greenacres-backend/internal/catalog"
	"github.com/greenacres/greenacres-backend/internal/inquiries"
	"github.com/greenacres/greenacres-backend/internal/users"
	"github.com/greenacres/greenacres-backend/pkg/auth/session"
	"github.com/greenacres/greenacres-backend/pkg/config"
	"github.com/greenacres/greenacres-backend/pkg/logger"
	"github.com/greenacres/greenacres-backend/pkg/metrics"
	"github.com/greenacres/greenacres-backend/pkg/redis"
)

// Deps carries everything the route table needs.
type Deps struct {
	Cfg            *config.Config
	Logg           *logger.Logger
	DB             controllers.Pinger
	Redis          *redis.Client
	SessionChecker session.AccessSessionChecker
	Metrics        *metrics.HTTPMetrics

	AuthService     auth.Service
	RegisterService auth.RegisterService
	ResetService    auth.ResetPasswordService
	CatalogService  catalog.Service
	CartService     cart.Service
	InquiryService  inquiries.Service
	UserService     *users.Service
}

// NewRouter builds the full HTTP surface: public catalog, auth, the
// approved-buyer portal, the admin surface, and health/metrics.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(d.Logg),
		middleware.RequestID(d.Logg),
		middleware.Logging(d.Logg, d.Metrics),
		middleware.CORS(d.Cfg.CORS),
	)

	var cache controllers.Pinger
	var limiter middleware.RateLimiterStore
	if d.Redis != nil {
		cache = d.Redis
		limiter = d.Redis
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		d.Cfg.AuthRateLimit.LoginWindow,
		d.Cfg.AuthRateLimit.LoginIPLimit,
		d.Cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		d.Cfg.AuthRateLimit.RegisterWindow,
		d.Cfg.AuthRateLimit.RegisterIPLimit,
		d.Cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(d.Cfg))
		r.Get("/ready", controllers.HealthReady(d.Cfg, d.DB, cache, d.Logg))
	})

	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Route("/api/public/v1", func(r chi.Router) {
		r.Get("/coffees", controllers.PublicCoffees(d.CatalogService, d.Logg))
		r.Get("/coffees/{coffeeId}", controllers.PublicCoffee(d.CatalogService, d.Logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, limiter, d.Logg)).
			Post("/register", controllers.AuthRegister(d.RegisterService, d.Logg))
		r.With(middleware.AuthRateLimit(loginPolicy, limiter, d.Logg)).
			Post("/login", controllers.AuthLogin(d.AuthService, d.Logg))
		r.Post("/refresh", controllers.AuthRefresh(d.AuthService, d.Logg))
		r.Post("/logout", controllers.AuthLogout(d.AuthService, d.Logg))
		r.With(middleware.AuthRateLimit(loginPolicy, limiter, d.Logg)).
			Post("/reset-password", controllers.AuthResetPassword(d.ResetService, d.Logg))
	})

	r.Route("/api/v1/portal", func(r chi.Router) {
		r.Use(
			middleware.Auth(d.Cfg.JWT, d.SessionChecker, d.Logg),
			middleware.RequireApprovedBuyer(d.Logg),
		)

		r.Get("/coffees", controllers.PortalCoffees(d.CatalogService, d.Logg))
		r.Get("/coffees/{coffeeId}", controllers.PortalCoffee(d.CatalogService, d.Logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(d.CartService, d.Logg))
			r.Delete("/", controllers.CartClear(d.CartService, d.Logg))
			r.Post("/items", controllers.CartAddItem(d.CartService, d.Logg))
			r.Delete("/items/{coffeeId}", controllers.CartRemoveItem(d.CartService, d.Logg))
		})

		r.Route("/inquiries", func(r chi.Router) {
			r.Post("/", controllers.InquirySubmit(d.InquiryService, d.Logg))
			r.Get("/", controllers.InquiryListMine(d.InquiryService, d.Logg))
		})
	})

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(
			middleware.Auth(d.Cfg.JWT, d.SessionChecker, d.Logg),
			middleware.RequireAdmin(d.Logg),
		)

		r.Get("/users", controllers.AdminUsers(d.UserService, d.Logg))
		r.Patch("/users/{userId}/status", controllers.AdminUserStatus(d.UserService, d.Logg))

		r.Get("/inquiries", controllers.AdminInquiries(d.InquiryService, d.Logg))
		r.Patch("/inquiries/{inquiryId}/status", controllers.AdminInquiryStatus(d.InquiryService, d.Logg))
	})

	return r
}
