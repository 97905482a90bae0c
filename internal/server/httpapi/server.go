// Package httpapi exposes the gateway over a JSON HTTP API built on gin.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/astrochat/internal/logging"
	"github.com/dmitrijs2005/astrochat/internal/server/gateway"
)

// Options configures the HTTP server.
type Options struct {
	Address              string
	SecretKey            string
	SessionValidity      time.Duration
	ResetTokenInResponse bool
	GinMode              string
}

type HTTPServer struct {
	address      string
	gateway      *gateway.Gateway
	logger       logging.Logger
	jwtSecret    []byte
	tokenTTL     time.Duration
	exposeTokens bool
	engine       *gin.Engine
}

func NewHTTPServer(g *gateway.Gateway, l logging.Logger, opts Options) *HTTPServer {
	if opts.GinMode != "" {
		gin.SetMode(opts.GinMode)
	}
	InitValidation()

	s := &HTTPServer{
		address:      opts.Address,
		gateway:      g,
		logger:       l.With("module", "http_server"),
		jwtSecret:    []byte(opts.SecretKey),
		tokenTTL:     opts.SessionValidity,
		exposeTokens: opts.ResetTokenInResponse,
	}
	s.engine = s.routes()
	return s
}

// Handler returns the routed gin engine.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

func (s *HTTPServer) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.accessLog())

	r.GET("/healthz", s.health)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)
	authGroup.POST("/logout", s.accessToken(), s.logout)
	authGroup.POST("/password/forgot", s.forgotPassword)
	authGroup.POST("/password/validate", s.validateResetToken)
	authGroup.POST("/password/reset", s.resetPassword)

	profile := api.Group("/profile", s.accessToken())
	profile.GET("", s.getProfile)
	profile.PUT("", s.saveProfile)
	profile.GET("/status", s.profileStatus)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if sl, ok := s.logger.(*logging.SlogLogger); ok {
		srv.ErrorLog = sl.StdLogger(slog.LevelError)
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "error stopping HTTP server", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
