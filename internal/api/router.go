package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jugendhilfe/casework-system/internal/api/handler"
	"github.com/jugendhilfe/casework-system/internal/api/middleware"
	"github.com/jugendhilfe/casework-system/internal/core/domain"
	"github.com/jugendhilfe/casework-system/internal/core/ports"
	"github.com/jugendhilfe/casework-system/internal/infrastructure/storage"
)

// Dependencies carries everything the router needs, constructed in main and
// injected here.
type Dependencies struct {
	Auth        ports.AuthService
	Clients     ports.ClientService
	Reports     ports.ReportService
	Translation ports.TranslationService
	Spool       *storage.Spool

	Mongo *mongo.Database
	Redis *redis.Client

	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("casework"))

	auth := middleware.Auth(deps.JWTSecret)
	verwaltungOnly := middleware.RBAC(domain.RoleVerwaltung)
	fachkraftOnly := middleware.RBAC(domain.RoleFachkraft)
	anyRole := middleware.RBAC(domain.RoleVerwaltung, domain.RoleFachkraft)

	authHandler := handler.NewAuthHandler(deps.Auth)
	clientHandler := handler.NewClientHandler(deps.Clients)
	reportHandler := handler.NewReportHandler(deps.Reports, deps.Spool)
	translationHandler := handler.NewTranslationHandler(deps.Translation)

	// --- Auth ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register, auth, verwaltungOnly)
	e.GET("/auth/me", authHandler.Me, auth)

	// --- Client management (Verwaltung) ---
	e.POST("/clients", clientHandler.Create, auth, verwaltungOnly)
	e.GET("/clients", clientHandler.List, auth, verwaltungOnly)
	e.PUT("/clients/:id/assign", clientHandler.Assign, auth, verwaltungOnly)
	e.GET("/users/specialists", clientHandler.ListSpecialists, auth, verwaltungOnly)

	// --- Specialist's own caseload ---
	e.GET("/clients/mine", clientHandler.ListMine, auth, fachkraftOnly)

	// --- Reports ---
	e.POST("/reports", reportHandler.Create, auth, fachkraftOnly)
	e.POST("/reports/document", reportHandler.Upload, auth, fachkraftOnly)
	e.GET("/reports/:clientId", reportHandler.List, auth, anyRole)
	e.GET("/reports/download/:reportId", reportHandler.Download, auth)
	e.PUT("/reports/:reportId", reportHandler.Update, auth)
	e.DELETE("/reports/:reportId", reportHandler.Delete, auth)

	// --- Translation ---
	e.POST("/reports/translate", translationHandler.Export, auth)
	e.GET("/reports/translate/:reportId", translationHandler.Translate, auth)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
