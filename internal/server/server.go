// Package server exposes GPX conversion over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/planbiir/gpxgeo/internal/config"
	"github.com/planbiir/gpxgeo/internal/convert"
	"github.com/planbiir/gpxgeo/internal/httpx"
	"github.com/planbiir/gpxgeo/internal/xmltree"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg config.AppConfig
	log *zap.Logger
}

// New returns a server for cfg. A nil logger discards output.
func New(cfg config.AppConfig, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{cfg: cfg, log: log}
}

func (s *Server) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		s.requestLogger,
		middleware.Recoverer,
		middleware.Timeout(60*time.Second),
	)

	router.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Post("/api/convert", s.convert)

	return router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.cfg.Server.Addr,
		Handler:     s.Routes(),
		ReadTimeout: s.cfg.Server.ReadTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) convert(w http.ResponseWriter, r *http.Request) {
	opts := convert.OptionsFromConfig(s.cfg, s.log)

	query := r.URL.Query()
	if format := query.Get("format"); format != "" {
		opts.Format = format
	}
	if backend := query.Get("backend"); backend != "" {
		opts.Backend = xmltree.Backend(backend)
	}
	if raw := query.Get("bbox"); raw != "" {
		bbox, err := strconv.ParseBool(raw)
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid bbox flag")
			return
		}
		opts.BBox = bbox
	}

	data, err := httpx.ReadBody(w, r, s.cfg.Server.MaxBodyBytes)
	if err != nil {
		if errors.Is(err, httpx.ErrBodyTooLarge) {
			httpx.Error(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		httpx.Error(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	res, err := convert.Bytes(data, opts)
	if err != nil {
		s.log.Info("Conversion rejected",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	s.log.Debug("Converted document",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("format", opts.Format),
		zap.Int("bytes", len(data)),
		zap.Int("features", res.Features))

	httpx.Write(w, http.StatusOK, res.ContentType, s.cfg.Output.Indent, res.Document)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.log.Info("Request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)))
	})
}
