package inspect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/danmuck/datumctl/internal/auth"
	"github.com/danmuck/datumctl/internal/config"
	"github.com/danmuck/datumctl/internal/datum"
	"github.com/danmuck/datumctl/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Version is reported by /health and /ready.
var Version = "dev"

const shutdownTimeout = 5 * time.Second

// Server is the HTTP header inspection service.
type Server struct {
	Name       string
	Addr       string
	TimeLayout string
	Started    time.Time

	tlsCert   string
	tlsKey    string
	authToken string
	router    *gin.Engine
}

// New builds the service engine. It fails when cfg.TrustedProxies holds an
// entry gin cannot parse.
func New(cfg config.ServerConfig, timeLayout string) (*Server, error) {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(cfg.Name))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(cfg.CorsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("inspect trusted proxies invalid: %w", err)
	}

	return &Server{
		Name:       cfg.Name,
		Addr:       cfg.Addr,
		TimeLayout: timeLayout,
		Started:    time.Now(),
		tlsCert:    cfg.TLSCertFile,
		tlsKey:     cfg.TLSKeyFile,
		authToken:  cfg.AuthToken,
		router:     r,
	}, nil
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

func (s *Server) RegisterRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Started).String(),
			"service": s.Name,
			"version": Version,
		})
	})

	s.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   true,
			"uptime":  time.Since(s.Started).String(),
			"service": s.Name,
			"version": Version,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/v1")
	if s.authToken != "" {
		v1.Use(auth.Middleware(auth.StaticToken{Token: s.authToken}))
	}
	v1.POST("/inspect", s.inspect)
}

func (s *Server) inspect(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, datum.HeaderSize))
	if err != nil {
		c.Set(observability.ResultKey, observability.ResultIO)
		observability.RecordHeaderCheck("http", observability.ResultIO, "")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(body) < datum.HeaderSize {
		c.Set(observability.ResultKey, observability.ResultIO)
		observability.RecordHeaderCheck("http", observability.ResultIO, "")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("body has %d bytes, header needs %d", len(body), datum.HeaderSize),
		})
		return
	}

	report := Classify(body, s.TimeLayout)
	c.Set(observability.ResultKey, report.Result)
	observability.RecordHeaderCheck("http", report.Result, report.Rule)

	status := http.StatusOK
	switch report.Result {
	case observability.ResultInvalid:
		status = http.StatusUnprocessableEntity
	case observability.ResultUnsupported:
		status = http.StatusUnsupportedMediaType
	}
	c.JSON(status, report)
}

// Serve listens on s.Addr until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("inspect listen failed (%s): %w", s.Addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener registers routes and serves on ln until ctx is cancelled,
// then shuts down gracefully. TLS is used when a certificate is configured.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	s.RegisterRoutes()
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("service", s.Name).
			Str("addr", ln.Addr().String()).
			Bool("tls", s.tlsCert != "").
			Msg("inspect service listening")
		if s.tlsCert != "" {
			errCh <- srv.ServeTLS(ln, s.tlsCert, s.tlsKey)
			return
		}
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("inspect shutdown failed: %w", err)
	}
	log.Info().Str("service", s.Name).Msg("inspect service stopped")
	return nil
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
