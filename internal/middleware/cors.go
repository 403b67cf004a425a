package middleware

import (
	"net/http"

	"delipucash/internal/config"

	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

var (
	corsMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodDelete, http.MethodOptions, http.MethodPatch,
	}
	corsAllowedHeaders = []string{
		"Content-Type",
		"Authorization",
		"X-Requested-With",
		"Accept",
		"Origin",
		"Access-Control-Request-Method",
		"Access-Control-Request-Headers",
		"x-access-token",
		"x-refresh-token",
	}
	corsExposedHeaders = []string{"Authorization", "x-access-token", "x-refresh-token"}
)

// CORS wraps the whole handler tree. Requests without an Origin header (native
// apps, curl) are not CORS requests and pass through untouched.
func CORS(cfg config.CORSConfig, log logrus.FieldLogger) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			if cfg.Allowed(origin) {
				return true
			}
			if cfg.AllowUnknownInDev {
				log.WithField("origin", origin).Warn("CORS origin not in allow list, permitted outside production")
				return true
			}
			log.WithField("origin", origin).Warn("CORS blocked origin")
			return false
		},
		AllowedMethods:       corsMethods,
		AllowedHeaders:       corsAllowedHeaders,
		ExposedHeaders:       corsExposedHeaders,
		AllowCredentials:     true,
		MaxAge:               86400,
		OptionsSuccessStatus: http.StatusOK,
	})
	return c.Handler
}
