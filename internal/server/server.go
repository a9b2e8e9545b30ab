package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"cupcake-store/internal/apperr"
	"cupcake-store/internal/auth"
	"cupcake-store/internal/config"
	"cupcake-store/internal/dto"
	"cupcake-store/internal/handler"
	appmw "cupcake-store/internal/middleware"
	"cupcake-store/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Services struct {
	Account  service.AccountService
	Catalog  service.CatalogService
	Favorite service.FavoriteService
	Order    service.OrderService
	Report   service.ReportService
}

type Server struct {
	echo   *echo.Echo
	log    *slog.Logger
	issuer *auth.TokenIssuer

	accountService  service.AccountService
	authHandler     *handler.AuthHandler
	cupcakeHandler  *handler.CupcakeHandler
	favoriteHandler *handler.FavoriteHandler
	orderHandler    *handler.OrderHandler
}

func NewServer(log *slog.Logger, cfg *config.Config, issuer *auth.TokenIssuer, services Services) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:   e,
		log:    log,
		issuer: issuer,

		accountService:  services.Account,
		authHandler:     handler.NewAuthHandler(services.Account, issuer),
		cupcakeHandler:  handler.NewCupcakeHandler(services.Catalog),
		favoriteHandler: handler.NewFavoriteHandler(services.Favorite),
		orderHandler:    handler.NewOrderHandler(services.Order, services.Report),
	}

	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.String("err", v.Error.Error()))
				if v.Status >= http.StatusInternalServerError {
					level = slog.LevelError
				}
			}
			log.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.AllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	if cfg.ImagesDir != "" {
		e.Static("/images", cfg.ImagesDir)
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api", appmw.Authenticate(s.issuer, s.accountService))

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "OK",
			"message": "Cupcake Store API is running",
		})
	})

	requireAccount := appmw.RequireAccount()
	requireAdmin := appmw.RequireAdmin(s.accountService)

	// -------- auth --------
	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.authHandler.Register)
	authGroup.POST("/login", s.authHandler.Login)
	authGroup.GET("/me", s.authHandler.Me, requireAccount)
	authGroup.GET("/check-admin/:userId", s.authHandler.CheckAdmin)

	// -------- catalog --------
	api.GET("/cupcakes", s.cupcakeHandler.ListAvailable)
	api.GET("/cupcakes/:id", s.cupcakeHandler.Get)

	// -------- favorites --------
	favorites := api.Group("/favorites", requireAccount)
	favorites.POST("", s.favoriteHandler.Add)
	favorites.GET("/:userId", s.favoriteHandler.List)
	favorites.GET("/:userId/ids", s.favoriteHandler.ListIDs)
	favorites.GET("/:userId/check/:cupcakeId", s.favoriteHandler.Check)
	favorites.DELETE("/:userId/:cupcakeId", s.favoriteHandler.Remove)

	// -------- orders --------
	api.POST("/orders", s.orderHandler.Create)
	api.GET("/orders", s.orderHandler.List, requireAdmin)
	api.GET("/orders/mine", s.orderHandler.ListMine, requireAccount)

	// -------- admin --------
	admin := api.Group("/admin", requireAdmin)
	admin.GET("/cupcakes", s.cupcakeHandler.ListAll)
	admin.POST("/cupcakes", s.cupcakeHandler.Create)
	admin.PUT("/cupcakes/:id", s.cupcakeHandler.Update)
	admin.DELETE("/cupcakes/:id", s.cupcakeHandler.Delete)
	admin.GET("/orders/:id", s.orderHandler.Detail)
	admin.PUT("/orders/:id", s.orderHandler.UpdateStatus)
	admin.GET("/stats", s.orderHandler.Stats)
}

// handleError renders every failure as {"error": "..."}; storage details only
// reach the log.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := apperr.StorageMessage

	var he *echo.HTTPError
	switch {
	case apperr.KindOf(err) != apperr.KindUnknown:
		status = apperr.HTTPStatus(apperr.KindOf(err))
		message = apperr.PublicMessage(err)
	case errors.As(err, &he):
		status = he.Code
		if status < http.StatusInternalServerError {
			message = fmt.Sprint(he.Message)
		}
	}

	if status >= http.StatusInternalServerError {
		s.log.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"err", err,
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, &dto.ErrorResponse{Error: message})
	}
	if err != nil {
		s.log.ErrorContext(c.Request().Context(), "write error response", "err", err)
	}
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
