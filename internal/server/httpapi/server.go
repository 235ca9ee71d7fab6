// Package httpapi exposes the server's HTTP surface: session endpoints,
// protected sample routes, and blog routes, built on gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/avagulans/inkpost/internal/logging"
	"github.com/avagulans/inkpost/internal/server/auth"
	"github.com/avagulans/inkpost/internal/server/config"
	"github.com/avagulans/inkpost/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address    string
	logger     logging.Logger
	cookieAuth bool
	cookieTTL  time.Duration
	origins    []string
	users      *services.UserService
	blogs      *services.BlogService
	codec      *auth.Codec
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, us *services.UserService, bs *services.BlogService, codec *auth.Codec) (*HTTPServer, error) {
	return &HTTPServer{
		address:    cfg.EndpointAddr,
		logger:     l.With("module", "http_server"),
		cookieAuth: cfg.CookieAuth,
		cookieTTL:  codec.Validity(),
		origins:    strings.Split(cfg.AllowedOrigins, ","),
		users:      us,
		blogs:      bs,
		codec:      codec,
	}, nil
}

// Handler assembles the gin engine with middleware and routes. It is exported
// for HTTP-level tests.
func (s *HTTPServer) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = s.origins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.Use(s.securityHeaders())

	r.GET("/healthz", s.handleHealth)
	r.POST("/signup", s.handleSignup)
	r.POST("/login", s.handleLogin)
	r.POST("/logout", s.handleLogout)
	r.GET("/blogs", s.handleListBlogs)

	protected := r.Group("")
	protected.Use(s.authRequired())
	{
		protected.GET("/protected", s.handleProtected)
		protected.GET("/me", s.handleMe)
		protected.POST("/blogs", s.handleCreateBlog)
		protected.GET("/blogs/my", s.handleMyBlogs)
	}

	return r
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
