package api

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
	apiContext "idvdemo/internal/api/context"
	"idvdemo/internal/api/handlers"
	"idvdemo/internal/api/middleware"
	"idvdemo/internal/engine/verification"
	"idvdemo/internal/pkg/errors"
	"idvdemo/internal/platform/config"
)

type Dependencies struct {
	WebhookHandler      *handlers.WebhookHandler
	JobHandler          *handlers.JobHandler
	VerificationHandler *handlers.VerificationHandler
	WidgetHandler       *handlers.WidgetHandler
	HandoffHandler      *handlers.HandoffHandler
	HealthHandler       *handlers.HealthHandler
	MetricsHandler      *handlers.MetricsHandler
	AdminMiddleware     *middleware.AdminMiddleware
	RateLimiter         *middleware.RateLimiter
	Webhooks            config.WebhooksConfig
	RateLimit           config.RateLimitConfig
}

var verificationRoutes = map[verification.Product]string{
	verification.CrossCheck: "/api/crosscheck",
	verification.DOB:        "/api/dob-verification",
	verification.SSN:        "/api/ssn-verification",
}

func NewRouter(deps *Dependencies) *httprouter.Router {
	router := httprouter.New()
	router.PanicHandler = middleware.PanicHandler
	router.NotFound = http.HandlerFunc(notFound)
	router.MethodNotAllowed = http.HandlerFunc(methodNotAllowed)

	limiter := deps.RateLimiter
	webhookLimit := limiter.Limit("webhook", deps.RateLimit.WebhookPerMinute)
	verifyLimit := limiter.Limit("verification", deps.RateLimit.VerificationPerMinute)
	bodyLimit := middleware.LimitBody(deps.Webhooks.MaxBodyBytes)

	// Vendor callback receiver
	router.POST("/webhook-callback",
		chain(deps.WebhookHandler.Receive, webhookLimit, bodyLimit, middleware.RequireSignature(deps.Webhooks.SigningSecret)))
	router.GET("/webhook-callback", wrap(deps.WebhookHandler.List))
	router.DELETE("/webhook-callback",
		chain(deps.WebhookHandler.Clear, deps.AdminMiddleware.Handle))

	// Token-indexed store polled by the browser
	router.POST("/webhook", chain(deps.JobHandler.Store, webhookLimit, bodyLimit))
	router.GET("/webhook", wrap(deps.JobHandler.Lookup))

	// Verification proxy
	for _, p := range verification.Products() {
		path := verificationRoutes[p]
		router.POST(path, chain(deps.VerificationHandler.Verify(p), verifyLimit, bodyLimit))
		router.GET(path, wrap(deps.VerificationHandler.Status(p)))
	}

	router.GET("/api/widget-config", wrap(deps.WidgetHandler.Config))
	router.GET("/api/handoff/qr", wrap(deps.HandoffHandler.QRCode))

	router.GET("/healthz", wrap(deps.HealthHandler.Check))
	router.GET("/metrics", wrap(deps.MetricsHandler.Export))

	return router
}

// NewHandler is the router behind per-request logging.
func NewHandler(deps *Dependencies, log zerolog.Logger) http.Handler {
	return middleware.RequestLogger(log)(NewRouter(deps))
}

// Helper function to chain middlewares
func chain(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) httprouter.Handle {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return wrap(handler)
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		// Inject params into context
		ctx := context.WithValue(r.Context(), apiContext.Params, ps)
		handler(w, r.WithContext(ctx))
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Route not found", nil)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	errors.WriteError(w, http.StatusMethodNotAllowed, errors.ErrCodeInvalidInput, "Method not allowed", nil)
}
