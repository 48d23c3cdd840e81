// Package server exposes statement validation and normalization over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/sirupsen/logrus"

	"github.com/reoring/xapiskema/jsonschema"
	"github.com/reoring/xapiskema/middleware"
	"github.com/reoring/xapiskema/normalizer"
)

const gracefulShutdownTimeout = 5 * time.Second

// Config holds the HTTP settings.
type Config struct {
	Address string
	// MaxBytes caps request bodies; 0 disables the cap.
	MaxBytes int64
	// RateLimit is the number of requests per client IP and minute; 0
	// disables limiting.
	RateLimit int
}

type Server struct {
	log        logrus.FieldLogger
	cfg        Config
	serializer *normalizer.Serializer
}

func New(log logrus.FieldLogger, cfg Config, s *normalizer.Serializer) *Server {
	return &Server{log: log, cfg: cfg, serializer: s}
}

// Router builds the route table:
//
//	POST /statements/validate   200 {"valid":true,...} or 400 {"issues":[...]}
//	POST /statements/normalize  canonical JSON of the statement
//	GET  /schema                JSON Schema of a statement document
//	GET  /health
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(
		chimiddleware.RequestID,
		chimiddleware.Recoverer,
	)
	if s.cfg.RateLimit > 0 {
		router.Use(httprate.Limit(
			s.cfg.RateLimit,
			time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				middleware.WriteJSON(w, http.StatusTooManyRequests, map[string]any{
					"code":    http.StatusTooManyRequests,
					"message": "rate limit exceeded",
				})
			}),
		))
	}

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/schema", s.handleSchema)
	router.Route("/statements", func(r chi.Router) {
		r.Use(middleware.DecodeStatement(s.serializer, s.cfg.MaxBytes))
		r.Post("/validate", s.handleValidate)
		r.Post("/normalize", s.handleNormalize)
	})
	return router
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	st, _ := middleware.StatementFromContext(r.Context())
	body := map[string]any{
		"valid":      true,
		"objectType": string(st.Object.ObjectType()),
	}
	if st.ID != nil {
		body["id"] = st.ID.String()
	}
	s.log.WithField("request_id", chimiddleware.GetReqID(r.Context())).Debug("statement accepted")
	middleware.WriteJSON(w, http.StatusOK, body)
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	st, _ := middleware.StatementFromContext(r.Context())
	out, err := s.serializer.EncodeStatement(r.Context(), st)
	if err != nil {
		s.log.WithError(err).Error("encoding statement")
		middleware.WriteJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(out)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	b, err := jsonschema.StatementJSON()
	if err != nil {
		middleware.WriteJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	_, _ = w.Write(b)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:      s.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.log.Println("Shutdown signal received")
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
	}()

	s.log.Printf("Listening on %s...", listener.Addr().String())
	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}
