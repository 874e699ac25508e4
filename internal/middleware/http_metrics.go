// Package middleware provides HTTP middleware components for the API server.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// staticRoutes are paths recorded in metrics as-is.
var staticRoutes = map[string]bool{
	"/":                      true,
	"/totens":                true,
	"/perguntas":             true,
	"/perguntas/atual":       true,
	"/interacoes":            true,
	"/usuarios":              true,
	"/usuarios/verificar":    true,
	"/usuarios/cadastrar":    true,
	"/usuarios/ranking":      true,
	"/usuarios/estatisticas": true,
	"/servicos":              true,
	"/servicos/proximos":     true,
	"/servicos/tipos":        true,
	"/servicos/estatisticas": true,
	"/servicos/importar":     true,
	"/admin/thanos":          true,
	"/health":                true,
	"/ready":                 true,
	"/metrics":               true,
}

// normalizePath converts paths with dynamic segments to route patterns to
// prevent cardinality explosion in metrics. This maps paths like
// /servicos/abc123 to /servicos/{id}.
func normalizePath(path string) string {
	if staticRoutes[path] {
		return path
	}

	parts := strings.Split(path, "/")

	switch {
	case strings.HasPrefix(path, "/totens/"):
		// /totens/{id}/servicos
		if len(parts) == 4 && parts[3] == "servicos" {
			return "/totens/{id}/servicos"
		}
		if len(parts) == 3 && parts[2] != "" {
			return "/totens/{id}"
		}

	case strings.HasPrefix(path, "/perguntas/"):
		// /perguntas/{id}/resultado
		if len(parts) == 4 && parts[3] == "resultado" {
			return "/perguntas/{id}/resultado"
		}
		if len(parts) == 3 && parts[2] != "" {
			return "/perguntas/{id}"
		}

	case strings.HasPrefix(path, "/usuarios/"):
		if len(parts) == 3 && parts[2] != "" {
			return "/usuarios/{vem_hash}"
		}

	case strings.HasPrefix(path, "/servicos/"):
		// /servicos/{id}/desativar, /servicos/{id}/reativar
		if len(parts) == 4 && (parts[3] == "desativar" || parts[3] == "reativar") {
			return "/servicos/{id}/" + parts[3]
		}
		if len(parts) == 3 && parts[2] != "" {
			return "/servicos/{id}"
		}
	}

	// Unknown patterns pass through unchanged so new routes keep metrics.
	return path
}

// metricsResponseWriter wraps http.ResponseWriter to capture status code and response size.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	size        int64
	wroteHeader bool
}

// WriteHeader captures the status code before writing it.
func (mrw *metricsResponseWriter) WriteHeader(code int) {
	if mrw.wroteHeader {
		return
	}
	mrw.statusCode = code
	mrw.wroteHeader = true
	mrw.ResponseWriter.WriteHeader(code)
}

// Write captures the response size and writes the data.
func (mrw *metricsResponseWriter) Write(b []byte) (int, error) {
	n, err := mrw.ResponseWriter.Write(b)
	mrw.size += int64(n)
	return n, err
}

// newMetricsResponseWriter creates a new metricsResponseWriter with default 200 status.
func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// HTTPMetrics is a middleware that records HTTP request metrics.
// It captures duration, request/response sizes, and request counts.
// Health check endpoints (/health, /ready) are excluded from metrics to avoid cardinality issues.
func HTTPMetrics(metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" || r.URL.Path == "/ready" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			mrw := newMetricsResponseWriter(w)

			requestSize := int64(0)
			if contentLength := r.Header.Get("Content-Length"); contentLength != "" {
				if size, err := strconv.ParseInt(contentLength, 10, 64); err == nil {
					requestSize = size
				}
			}

			next.ServeHTTP(mrw, r)

			metrics.ObserveHTTPRequest(
				r.Method,
				normalizePath(r.URL.Path),
				strconv.Itoa(mrw.statusCode),
				time.Since(start).Seconds(),
				requestSize,
				mrw.size,
			)
		})
	}
}
