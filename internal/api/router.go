package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pageturn/bookshelf-api/internal/api/handler"
	"github.com/pageturn/bookshelf-api/internal/api/middleware"
	"github.com/pageturn/bookshelf-api/internal/core/domain"
	"github.com/pageturn/bookshelf-api/internal/core/ports"
)

// Deps carries the already-constructed collaborators the router wires into
// handlers. Taking services instead of raw database handles keeps the
// route table testable with stub implementations.
type Deps struct {
	Auth   ports.AuthService
	Books  ports.BookService
	Covers ports.CoverService
	Tokens ports.TokenService
	Users  ports.UserRepository
	Mongo  *mongo.Database
	Redis  *redis.Client
	Logger zerolog.Logger
}

// accessLevel classifies a route in the policy table.
type accessLevel int

const (
	// accessPublic routes pass through with no identity resolution attempted.
	accessPublic accessLevel = iota
	// accessAuthenticated routes require any verified subject.
	accessAuthenticated
	// accessRole routes require a verified subject holding the named role.
	accessRole
)

// route is one row of the policy table.
type route struct {
	method  string
	path    string
	access  accessLevel
	role    string // set only for accessRole
	handler echo.HandlerFunc
}

// NewRouter builds the Echo instance and registers every route through the
// central policy table. The table is the single authority on which routes
// are public, which require authentication, and which are role-restricted.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	authHandler := handler.NewAuthHandler(deps.Auth)
	bookHandler := handler.NewBookHandler(deps.Books)
	coverHandler := handler.NewCoverHandler(deps.Covers)
	healthHandler := handler.NewHealthHandler()

	table := []route{
		{echo.GET, "/", accessPublic, "", healthHandler.Root},
		{echo.GET, "/health", accessPublic, "", healthHandler.Liveness},
		{echo.GET, "/metrics", accessPublic, "", echo.WrapHandler(promhttp.Handler())},

		{echo.POST, "/users", accessPublic, "", authHandler.Register},
		{echo.POST, "/login", accessPublic, "", authHandler.Login},

		{echo.GET, "/books", accessPublic, "", bookHandler.List},
		{echo.GET, "/books/:id", accessPublic, "", bookHandler.Get},
		{echo.GET, "/books/:id/cover", accessPublic, "", coverHandler.Download},

		{echo.POST, "/books", accessAuthenticated, "", bookHandler.Create},
		{echo.PUT, "/books/:id", accessAuthenticated, "", bookHandler.Update},
		{echo.DELETE, "/books/:id", accessAuthenticated, "", bookHandler.Delete},

		{echo.POST, "/books/:id/cover", accessRole, domain.RoleUser, coverHandler.Upload},
		{echo.PUT, "/books/:id/cover", accessRole, domain.RoleUser, coverHandler.Upload},
		{echo.DELETE, "/books/:id/cover", accessRole, domain.RoleUser, coverHandler.Remove},
	}

	guard := middleware.Auth(deps.Tokens, deps.Users)
	for _, r := range table {
		switch r.access {
		case accessPublic:
			e.Add(r.method, r.path, r.handler)
		case accessAuthenticated:
			e.Add(r.method, r.path, r.handler, guard)
		case accessRole:
			e.Add(r.method, r.path, r.handler, guard, middleware.RBAC(r.role))
		}
	}

	// Readiness needs live database handles; skip it when the router is
	// assembled without them (handler and router tests).
	if deps.Mongo != nil && deps.Redis != nil {
		readiness := handler.NewReadinessHandler(deps.Mongo, deps.Redis)
		e.GET("/health/ready", readiness.Readiness)
	}

	return e
}
