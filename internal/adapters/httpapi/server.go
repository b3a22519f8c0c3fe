// Package httpapi exposes health, metrics and read-only tracker state over
// HTTP.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"cdr.dev/slog/v3"
	"github.com/bnema/riftwatch/internal/application"
	"github.com/bnema/riftwatch/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// StatusReader is the read side the API serves. *application.StatusService
// implements it.
type StatusReader interface {
	Summoners(ctx context.Context) ([]application.SummonerStatus, error)
	PendingEvents(ctx context.Context) ([]domain.NotificationEvent, error)
}

type Server struct {
	status   StatusReader
	gatherer prometheus.Gatherer
	log      slog.Logger
	now      func() time.Time
}

func NewServer(status StatusReader, gatherer prometheus.Gatherer, log slog.Logger) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Server{
		status:   status,
		gatherer: gatherer,
		log:      log.Named("http"),
		now:      time.Now,
	}
}

// Handler builds the gin router.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.healthz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.GET("/summoners", s.summoners)
	api.GET("/events/pending", s.pendingEvents)

	return r
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.log.Info(ctx, "http api listening", slog.F("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug(c.Request.Context(), "request",
			slog.F("method", c.Request.Method),
			slog.F("path", c.Request.URL.Path),
			slog.F("status", c.Writer.Status()),
			slog.F("duration", time.Since(start)),
		)
	}
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) summoners(c *gin.Context) {
	statuses, err := s.status.Summoners(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summoners": SummonerViews(statuses)})
}

func (s *Server) pendingEvents(c *gin.Context) {
	events, err := s.status.PendingEvents(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": EventViews(events, s.now())})
}

func (s *Server) fail(c *gin.Context, err error) {
	s.log.Error(c.Request.Context(), "request failed", slog.F("path", c.Request.URL.Path), slog.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
