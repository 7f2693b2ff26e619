// Package rest exposes the user service over HTTP using gin.
package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	"github.com/dmitrijs2005/gatekeeper/internal/server/auth"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
	"github.com/dmitrijs2005/gatekeeper/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type userSvc interface {
	List(ctx context.Context) ([]*models.User, error)
	Register(ctx context.Context, username, password, department string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.LoginResult, error)
}

type tokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

const shutdownTimeout = 5 * time.Second

type Server struct {
	address      string
	users        userSvc
	tokens       tokenParser
	logger       logging.Logger
	cookieSecure bool
	corsOrigins  []string
}

type Option func(*Server)

// WithSecureCookie marks the token cookie Secure (HTTPS only).
func WithSecureCookie(secure bool) Option {
	return func(s *Server) { s.cookieSecure = secure }
}

// WithCORSOrigins enables CORS with credentials for a comma separated origin
// list. "*" allows any origin.
func WithCORSOrigins(origins string) Option {
	return func(s *Server) {
		s.corsOrigins = s.corsOrigins[:0]
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				s.corsOrigins = append(s.corsOrigins, o)
			}
		}
	}
}

func NewServer(address string, l logging.Logger, us userSvc, tp tokenParser, opts ...Option) *Server {
	s := &Server{
		address: address,
		users:   us,
		tokens:  tp,
		logger:  l.With("module", "http_server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the gin engine with all middleware and routes.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(requestID(), accessLog(s.logger), recovery(s.logger))
	if len(s.corsOrigins) > 0 {
		r.Use(cors.New(s.corsConfig()))
	}
	r.Use(errorResponder(s.logger))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, messageResponse{Message: msgRouteNotFound})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, messageResponse{Message: msgMethodNotAllowed})
	})

	api := r.Group("/api")
	{
		api.GET("/ping", s.ping)
		api.GET("/users", s.restrict(common.RoleNormal), s.listUsers)
		api.POST("/register", s.register)
		api.POST("/login", s.login)
	}

	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowCredentials = true
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}

	for _, o := range s.corsOrigins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = s.corsOrigins
	return cfg
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
