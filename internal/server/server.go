// Package server exposes the assessment over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/probatequiz/internal/advisor"
	"github.com/abhisek/probatequiz/internal/quiz"
	"github.com/abhisek/probatequiz/internal/scoring"
	"github.com/abhisek/probatequiz/internal/session"
)

// Options wires the server's collaborators. Recorder may be nil, in which
// case finished sessions are not persisted.
type Options struct {
	Catalog        *quiz.Catalog
	Engine         *scoring.Engine
	Advisor        *advisor.Advisor
	Registry       Registry
	Recorder       session.Recorder
	HandoffTimeout time.Duration
	CORSOrigins    []string
}

// Server handles the assessment API.
type Server struct {
	catalog        *quiz.Catalog
	engine         *scoring.Engine
	advisor        *advisor.Advisor
	registry       Registry
	recorder       session.Recorder
	handoffTimeout time.Duration

	router *gin.Engine

	// handoffs receives the outcome of each background save. Tests read it.
	handoffs chan error
}

// New builds the router.
func New(o Options) *Server {
	s := &Server{
		catalog:        o.Catalog,
		engine:         o.Engine,
		advisor:        o.Advisor,
		registry:       o.Registry,
		recorder:       o.Recorder,
		handoffTimeout: o.HandoffTimeout,
	}
	if s.advisor == nil {
		s.advisor = advisor.New(o.Catalog, nil)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.Use(cors.New(corsConfig(o.CORSOrigins)))

	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/questions", s.questions)
		v1.GET("/outcomes", s.outcomes)
		v1.POST("/score", s.score)

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", s.createSession)
			sessions.GET("/:id", s.getSession)
			sessions.POST("/:id/answer", s.answer)
			sessions.POST("/:id/next", s.next)
			sessions.POST("/:id/back", s.back)
			sessions.POST("/:id/submit", s.submit)
			sessions.GET("/:id/explanation", s.explanation)
		}
	}

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	return config
}

// requestLogger writes one zerolog event per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client", c.ClientIP()).
			Msg("request")
	}
}
