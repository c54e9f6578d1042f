package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/maskeddeveloper/product-trial-master/api/controllers"
	"github.com/maskeddeveloper/product-trial-master/api/middleware"
	"github.com/maskeddeveloper/product-trial-master/internal/auth"
	"github.com/maskeddeveloper/product-trial-master/internal/cart"
	"github.com/maskeddeveloper/product-trial-master/internal/products"
	"github.com/maskeddeveloper/product-trial-master/internal/wishlist"
	"github.com/maskeddeveloper/product-trial-master/pkg/config"
	"github.com/maskeddeveloper/product-trial-master/pkg/db/models"
	"github.com/maskeddeveloper/product-trial-master/pkg/logger"
	"github.com/maskeddeveloper/product-trial-master/pkg/metrics"
	"github.com/maskeddeveloper/product-trial-master/pkg/redis"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type userLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// RouterParams bundles everything the HTTP surface depends on. Nil optional
// members (redis, metrics) disable the corresponding middleware.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	Metrics  *metrics.Registry
	DB       pinger
	Redis    *redis.Client
	Users    userLoader
	Auth     auth.Service
	Register auth.RegisterService
	Products products.Service
	Cart     cart.Service
	Wishlist wishlist.Service
}

// NewRouter assembles the chi router with the full middleware stack and the
// storefront route table.
func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.Metrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	var redisPinger pinger
	if p.Redis != nil {
		redisPinger = p.Redis
	}

	authLimit := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		if p.Redis == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.AuthRateLimit(policy, p.Redis, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, redisPinger))
	})

	if p.Metrics != nil {
		r.Handle("/metrics", p.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.With(authLimit(registerPolicy)).
			Post("/account", controllers.AccountCreate(p.Register, logg))
		r.With(authLimit(loginPolicy)).
			Post("/token", controllers.TokenIssue(p.Auth, logg))

		r.Get("/products", controllers.ProductsList(p.Products, logg))
		r.Get("/products/{productId}", controllers.ProductsGet(p.Products, logg))

		// catalog mutations are gated by the designated-admin policy
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.RequireAdmin(p.Users, cfg.Admin, logg))

			r.Post("/products", controllers.ProductsCreate(p.Products, logg))
			r.Patch("/products/{productId}", controllers.ProductsUpdate(p.Products, logg))
			r.Delete("/products/{productId}", controllers.ProductsDelete(p.Products, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(p.Cart, logg))
				r.Post("/", controllers.CartAddItem(p.Cart, logg))
				r.Patch("/{productId}", controllers.CartUpdateItem(p.Cart, logg))
				r.Delete("/{productId}", controllers.CartRemoveItem(p.Cart, logg))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.WishlistGet(p.Wishlist, logg))
				r.Post("/", controllers.WishlistAddItem(p.Wishlist, logg))
				r.Delete("/{productId}", controllers.WishlistRemoveItem(p.Wishlist, logg))
			})
		})
	})

	return r
}
