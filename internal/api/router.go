package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/relaycrm/crm-api/internal/api/handler"
	"github.com/relaycrm/crm-api/internal/api/metrics"
	"github.com/relaycrm/crm-api/internal/api/middleware"
	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

// Services groups the use cases the router exposes.
type Services struct {
	Auth         ports.AuthService
	Users        ports.UserService
	Customers    ports.CustomerService
	Leads        ports.LeadService
	Tasks        ports.TaskService
	Interactions ports.InteractionService
	Reports      ports.ReportService
	Activity     ports.ActivityService
}

// Options carries the cross-cutting settings of the HTTP surface.
type Options struct {
	Env         string
	CORSOrigins []string
	TrustProxy  bool
	RateLimit   middleware.RateLimitConfig
	Health      *handler.HealthHandler
	Logger      zerolog.Logger
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(s Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger, opts.Env)

	// RealIP keys the rate limiter; client supplied headers count only
	// behind a trusted proxy.
	if opts.TrustProxy {
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	} else {
		e.IPExtractor = echo.ExtractIPDirect()
	}

	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Logger))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: opts.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  metrics.Namespace,
		Registerer: opts.Registerer,
	}))

	// --- Operational surface (no auth required) ---
	if opts.Health != nil {
		e.GET("/health", opts.Health.Readiness)
		e.GET("/health/live", opts.Health.Liveness)
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API ---
	if opts.RateLimit.Store == nil {
		opts.RateLimit.Store = middleware.NewMemoryWindowStore()
	}
	opts.RateLimit.Logger = opts.Logger
	api := e.Group("/api", middleware.RateLimit(opts.RateLimit))

	authn := middleware.Auth(s.Auth)
	staff := middleware.RBAC(domain.RoleAdmin, domain.RoleUser)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	authHandler := handler.NewAuthHandler(s.Auth)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me, authn)
	api.PUT("/auth/password", authHandler.ChangePassword, authn)

	users := api.Group("/users", authn, adminOnly)
	userHandler := handler.NewUserHandler(s.Users)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	customers := api.Group("/customers", authn, staff)
	customerHandler := handler.NewCustomerHandler(s.Customers)
	customers.GET("", customerHandler.List)
	customers.POST("", customerHandler.Create)
	customers.GET("/:id", customerHandler.Get)
	customers.PUT("/:id", customerHandler.Update)
	customers.DELETE("/:id", customerHandler.Delete)

	leads := api.Group("/leads", authn, staff)
	leadHandler := handler.NewLeadHandler(s.Leads)
	leads.GET("", leadHandler.List)
	leads.POST("", leadHandler.Create)
	leads.GET("/:id", leadHandler.Get)
	leads.PUT("/:id", leadHandler.Update)
	leads.PUT("/:id/stage", leadHandler.UpdateStage)
	leads.DELETE("/:id", leadHandler.Delete)

	tasks := api.Group("/tasks", authn, staff)
	taskHandler := handler.NewTaskHandler(s.Tasks)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.PUT("/:id/status", taskHandler.UpdateStatus)
	tasks.DELETE("/:id", taskHandler.Delete)

	interactions := api.Group("/interactions", authn, staff)
	interactionHandler := handler.NewInteractionHandler(s.Interactions)
	interactions.GET("", interactionHandler.List)
	interactions.POST("", interactionHandler.Create)
	interactions.GET("/:id", interactionHandler.Get)
	interactions.PUT("/:id", interactionHandler.Update)
	interactions.DELETE("/:id", interactionHandler.Delete)

	reportHandler := handler.NewReportHandler(s.Reports)
	api.GET("/reports/dashboard", reportHandler.Dashboard, authn, staff)
	api.GET("/reports/conversion", reportHandler.Conversion, authn, staff)

	activityHandler := handler.NewActivityHandler(s.Activity)
	api.GET("/activity", activityHandler.List, authn, staff)

	return e
}

// requestLogger writes one access log line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
