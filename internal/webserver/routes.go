package webserver

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/promptlens/promptlens/internal/webapi"
)

// newHandler wires the API, /metrics and middleware into one handler.
func newHandler(cfg Config) (http.Handler, error) {
	store := webapi.NewFileStore(cfg.DataDir)
	if err := store.Reload(); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	webapi.RegisterRoutes(mux, store)
	mux.Handle("GET /metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))

	metrics := NewMetrics(cfg.Registry)
	return webapi.CORSMiddleware(metrics.Middleware(mux), cfg.AllowedOrigins...), nil
}
