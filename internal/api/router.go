package api

import (
	"net/http"

	_ "kasjer/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router mounts every handler on bare paths. Host prefixes such as /api are
// removed by the transport layer before a request reaches it.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)

	origins := s.config.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Kasjer działa! Dokumentacja dostępna pod /swagger/index.html"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("doc.json")))
	r.Get("/health", s.HealthCheckHandler)
	r.Get("/ping", s.PingHandler)
	r.Handle("/metrics", promhttp.Handler())

	if s.config.WS.Enabled {
		r.Get("/ws", s.ServeWsHandler)
	}

	r.Post("/auth/signup", s.SignupHandler)
	r.Post("/auth/login", s.LoginHandler)

	r.Post("/deposit", s.DepositHandler)
	r.Post("/withdraw", s.WithdrawHandler)

	r.Get("/messages", s.ListMessagesHandler)
	r.Get("/messages/unread-count", s.UnreadCountHandler)
	r.Post("/messages/read", s.MarkReadHandler)

	r.Group(func(r chi.Router) {
		r.Use(s.RequireAdmin)
		r.Post("/messages/send", s.SendMessageHandler)
		r.Post("/messages/broadcast", s.BroadcastHandler)
		r.Get("/admin/data", s.AdminDataHandler)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "Route not found")
	})

	return r
}
