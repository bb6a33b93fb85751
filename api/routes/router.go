package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/glowbeauty/glow-backend/api/controllers"
	"github.com/glowbeauty/glow-backend/api/middleware"
	"github.com/glowbeauty/glow-backend/internal/cart"
	"github.com/glowbeauty/glow-backend/internal/catalog"
	checkoutsvc "github.com/glowbeauty/glow-backend/internal/checkout"
	"github.com/glowbeauty/glow-backend/internal/orders"
	"github.com/glowbeauty/glow-backend/internal/reviews"
	"github.com/glowbeauty/glow-backend/internal/wishlist"
	"github.com/glowbeauty/glow-backend/pkg/config"
	"github.com/glowbeauty/glow-backend/pkg/logger"
	"github.com/glowbeauty/glow-backend/pkg/metrics"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Catalog  catalog.Service
	Reviews  reviews.Service
	Cart     cart.Service
	Wishlist wishlist.Service
	Orders   orders.Service
	Checkout *checkoutsvc.Manager
}

// Health lists the backing dependencies pinged by /health/ready.
type Health struct {
	DB    controllers.Pinger
	Redis controllers.Pinger
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	svcs Services,
	health Health,
	requestMetrics *metrics.RequestMetrics,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Metrics(requestMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.Live())
		r.Get("/ready", controllers.Ready(logg, map[string]controllers.Pinger{
			"database": health.DB,
			"redis":    health.Redis,
		}))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.JWT, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(svcs.Catalog, logg))
			r.Get("/{productId}", controllers.GetProduct(svcs.Catalog, logg))

			r.Route("/{productId}/reviews", func(r chi.Router) {
				r.Get("/", controllers.ListReviews(svcs.Reviews, logg))
				r.With(middleware.RequireUser(logg)).Post("/", controllers.CreateReview(svcs.Reviews, logg))
				r.With(middleware.RequireUser(logg)).Put("/{reviewId}", controllers.UpdateReview(svcs.Reviews, logg))
				r.With(middleware.RequireUser(logg)).Delete("/{reviewId}", controllers.DeleteReview(svcs.Reviews, logg))
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.Session(logg))
			r.Get("/", controllers.GetCart(svcs.Cart, logg))
			r.Post("/", controllers.AddCartItem(svcs.Cart, logg))
			r.Delete("/", controllers.ClearCart(svcs.Cart, logg))
			r.Put("/{productId}", controllers.SetCartQuantity(svcs.Cart, logg))
			r.Delete("/{productId}", controllers.RemoveCartItem(svcs.Cart, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Use(middleware.Session(logg))
			r.Get("/", controllers.GetWishlist(svcs.Wishlist, logg))
			r.Post("/", controllers.AddWishlistItem(svcs.Wishlist, logg))
			r.Delete("/", controllers.ClearWishlist(svcs.Wishlist, logg))
			r.Delete("/{productId}", controllers.RemoveWishlistItem(svcs.Wishlist, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/emi-plans", controllers.ListEMIPlans(logg))
			r.With(middleware.Session(logg)).Post("/", controllers.OpenCheckout(svcs.Checkout, logg))
			r.Get("/{checkoutId}", controllers.GetCheckout(svcs.Checkout, logg))
			r.Post("/{checkoutId}/submit", controllers.SubmitPayment(svcs.Checkout, logg))
			r.Post("/{checkoutId}/close", controllers.CloseCheckout(svcs.Checkout, logg))
		})

		r.With(middleware.RequireUser(logg)).Get("/orders", controllers.ListOrders(svcs.Orders, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(
			middleware.OptionalAuth(cfg.JWT, logg),
			middleware.RequireAdmin(logg),
		)

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateProduct(svcs.Catalog, logg))
			r.Put("/{productId}", controllers.AdminUpdateProduct(svcs.Catalog, logg))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(svcs.Catalog, logg))
		})
	})

	return r
}
