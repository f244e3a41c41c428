package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smartdoor/biometric-api/internal/api/handler"
	"github.com/smartdoor/biometric-api/internal/api/middleware"
	"github.com/smartdoor/biometric-api/internal/core/domain"
	"github.com/smartdoor/biometric-api/internal/core/ports"
)

// Services bundles the use-case implementations the router exposes.
type Services struct {
	Enrollment   ports.EnrollmentService
	Verification ports.VerificationService
	AccessLogs   ports.AccessLogService
	Auth         ports.AuthService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("faceaccess"))

	// --- Handlers ---
	faceHandler := handler.NewFaceHandler(svc.Enrollment, svc.Verification)
	logHandler := handler.NewAccessLogHandler(svc.AccessLogs)
	authHandler := handler.NewAuthHandler(svc.Auth)
	authRequired := middleware.Auth(jwtSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Face routes ---
	// Verification stays open: the door terminal authenticates at the
	// network layer, not with operator JWTs.
	e.POST("/api/face/verify", faceHandler.Verify)
	e.POST("/api/face/enroll", faceHandler.Enroll,
		authRequired, middleware.RBAC(domain.RoleAdmin, domain.RoleOperator))

	// --- Audit trail (admin only) ---
	e.GET("/api/access-logs", logHandler.List,
		authRequired, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
