package http

import (
	"net/http"
	"time"

	obsmw "eshop/internal/observability/middleware"
	"eshop/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	FrontendDomain string
	CORSOrigins    []string
}

func NewRouter(cfg RouterConfig, users service.UserService, orders service.OrderService, tokens service.TokenService) *chi.Mux {
	h := &handler{
		users:          users,
		orders:         orders,
		tokens:         tokens,
		frontendDomain: cfg.FrontendDomain,
	}

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   originsIfSet(cfg.CORSOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(obsmw.WithRequestAndTrace)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/users", func(r chi.Router) {
		r.With(httprate.LimitByIP(20, time.Minute)).Post("/register", h.register)
		r.With(httprate.LimitByIP(30, time.Minute)).Post("/login", h.login)
		r.Get("/verify/{token}", h.verifyEmail)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAuth)
			r.Get("/profile", h.profile)
			r.Put("/profile/update", h.updateProfile)
			r.With(h.requireStaff).Get("/", h.listUsers)
		})
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Post("/add", h.addOrder)
		r.Get("/myorders", h.myOrders)
		r.Get("/{id}", h.getOrder)
	})

	return r
}

func originsIfSet(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
