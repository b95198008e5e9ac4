package site

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/grafana/docnav/internal/logging"
	"github.com/grafana/docnav/internal/nav"
)

// Handler returns the HTTP handler of the preview server.
func (s *Site) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)

	r.Handle(StaticPrefix+"*", http.StripPrefix(StaticPrefix, http.FileServerFS(s.static)))
	r.Get("/*", s.servePage)

	return r
}

func (s *Site) servePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.LoggerFromContext(ctx)

	section, err := s.Finder().GetByURLPath(r.URL.Path)
	if err != nil {
		logger.DebugContext(ctx, "No section for path", slog.String("path", r.URL.Path))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		if err := s.RenderNotFound(w, r.URL.Path); err != nil {
			logger.ErrorContext(ctx, "Failed to render not found page", slog.String("error", err.Error()))
		}
		return
	}

	if r.URL.Path != section.URLPath {
		target := nav.EscapePath(section.URLPath)
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusMovedPermanently)
		return
	}

	var buf bytes.Buffer
	report, err := s.RenderPage(&buf, section, r.URL.Path)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to render page",
			slog.String("slug", section.Slug),
			slog.String("error", err.Error()))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	logger.DebugContext(ctx, "Rendered page",
		slog.String("slug", section.Slug),
		slog.Int("current_links", len(report.Current)),
		slog.Int("expanded_sections", len(report.Expanded)),
		slog.Int("scroll_top", report.ScrollTop))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		logger.DebugContext(ctx, "Failed to write response", slog.String("error", err.Error()))
	}
}

// requestLogger puts a request-scoped logger into the context and logs every
// completed request.
func (s *Site) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ctx := logging.ContextWithLogger(r.Context(), s.logger)
		ctx = logging.ContextWithRequestID(ctx, middleware.GetReqID(ctx))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		logging.LoggerFromContext(ctx).InfoContext(ctx, "HTTP request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", time.Since(start)))
	})
}
