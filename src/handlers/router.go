package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/username/policyfeed/src/models"
	"github.com/username/policyfeed/src/utils"
)

// RouterConfig carries the middleware settings for NewRouter.
type RouterConfig struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter mounts every API route behind the shared middleware stack.
func NewRouter(cfg RouterConfig, brokerHandler *BrokerHandler, feedHandler *FeedHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORSMiddleware(cfg.AllowedOrigins))
	r.Use(RateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)))

	r.Route("/api", func(r chi.Router) {
		r.Get("/broker1", brokerHandler.HandleGetCollection(models.SourceBroker1))
		r.Get("/broker2", brokerHandler.HandleGetCollection(models.SourceBroker2))
		r.Get("/test-db", brokerHandler.HandleTestDB)

		r.Route("/brokers", func(r chi.Router) {
			r.Get("/standardized", feedHandler.HandleGetStandardized)
			r.Get("/standardized/export", feedHandler.HandleExportStandardized)
			r.Get("/field-mapping", feedHandler.HandleGetFieldMapping)
		})

		r.Get("/doc", HandleGetAPIDoc)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		utils.SendJSON(w, http.StatusOK, map[string]string{"message": "Policy feed backend is running"})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.SendJSONError(w, "route not found", http.StatusNotFound)
	})

	return r
}
