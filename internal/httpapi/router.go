package httpapi

import (
	"net/http"

	"storefront-be/internal/address"
	"storefront-be/internal/admin"
	"storefront-be/internal/cart"
	"storefront-be/internal/collection"
	"storefront-be/internal/customer"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/middleware"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/review"
	"storefront-be/internal/tag"
	"storefront-be/internal/user"

	"github.com/go-chi/chi/v5"
)

// Services is everything the HTTP surface calls into.
type Services struct {
	Users       user.Service
	Products    product.Service
	Collections collection.Service
	Reviews     review.Service
	Tags        tag.Service
	Carts       cart.Service
	Orders      order.Service
	Customers   customer.Service
	Addresses   address.Service
	Admin       admin.Service
	Metrics     *metrics.Registry
}

type Options struct {
	CORSOrigin string
	// Limiter is optional; nil disables rate limiting.
	Limiter *middleware.RateLimiter
}

func NewRouter(s Services, opts Options) http.Handler {
	if s.Metrics == nil {
		s.Metrics = metrics.Default()
	}

	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	if opts.CORSOrigin != "" {
		r.Use(middleware.CORSWithOrigin(opts.CORSOrigin))
	} else {
		r.Use(middleware.CORS)
	}
	r.Use(middleware.AuthMiddleware)
	r.Use(middleware.AccessLog)
	if opts.Limiter != nil {
		r.Use(opts.Limiter.Middleware)
	}

	authH := NewAuthHandler(s.Users)
	products := NewProductHandler(s.Products)
	reviews := NewReviewHandler(s.Reviews)
	tags := NewTagHandler(s.Tags)
	collections := NewCollectionHandler(s.Collections)
	carts := NewCartHandler(s.Carts)
	orders := NewOrderHandler(s.Orders)
	customers := NewCustomerHandler(s.Customers, s.Addresses)
	adminH := NewAdminHandler(s.Admin, s.Products, s.Customers)

	r.Get("/health", health)
	r.Get("/metrics", metricsHandler(s.Metrics))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authH.Register)
		r.Post("/login", authH.Login)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", products.List)
		r.With(middleware.RequireAdmin).Post("/", products.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", products.Get)
			r.With(middleware.RequireAdmin).Put("/", products.Update)
			r.With(middleware.RequireAdmin).Delete("/", products.Delete)

			r.Get("/reviews", reviews.List)
			r.Post("/reviews", reviews.Create)
			r.Get("/reviews/{reviewID}", reviews.Get)
			r.Delete("/reviews/{reviewID}", reviews.Delete)

			r.Get("/tags", tags.List)
			r.With(middleware.RequireAdmin).Post("/tags", tags.Create)
			r.With(middleware.RequireAdmin).Delete("/tags/{tagID}", tags.Delete)
		})
	})

	r.Route("/collections", func(r chi.Router) {
		r.Get("/", collections.List)
		r.Get("/{id}", collections.Get)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/", collections.Create)
			r.Put("/{id}", collections.Update)
			r.Delete("/{id}", collections.Delete)
		})
	})

	r.Route("/carts", func(r chi.Router) {
		r.Post("/", carts.Create)
		r.Get("/{id}", carts.Get)
		r.Delete("/{id}", carts.Delete)
		r.Get("/{id}/items", carts.ListItems)
		r.Post("/{id}/items", carts.AddItem)
		r.Patch("/{id}/items/{itemID}", carts.UpdateItem)
		r.Delete("/{id}/items/{itemID}", carts.RemoveItem)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", orders.Checkout)
		r.Get("/", orders.List)
		r.Get("/{id}", orders.Get)
		r.With(middleware.RequireAdmin).Patch("/{id}", orders.UpdatePaymentStatus)
		r.With(middleware.RequireAdmin).Delete("/{id}", orders.Delete)
	})

	r.Route("/customers/me", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", customers.Me)
		r.Put("/", customers.UpdateMe)
		r.Get("/addresses", customers.ListAddresses)
		r.Post("/addresses", customers.CreateAddress)
		r.Delete("/addresses/{id}", customers.DeleteAddress)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/products", adminH.ListProducts)
		r.Get("/products/export", adminH.ExportProducts)
		r.Patch("/products/{id}", adminH.UpdateProductPrice)
		r.Get("/customers", adminH.ListCustomers)
		r.Patch("/customers/{id}", adminH.SetMembership)
	})

	return r
}
