package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// startHealthcheck serves the liveness endpoint until stop is called.
func (a *App) startHealthcheck(ctx context.Context) (stop func(), err error) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", a.handleHealthz)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.HealthcheckPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("healthcheck listener: %w", err)
	}

	go func() {
		if serveErr := srv.Serve(ln); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			a.logger.Error("Healthcheck server failed.", "error", serveErr)
		}
	}()
	a.logger.Info("🩺 Healthcheck listening.", "addr", ln.Addr().String())

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("Healthcheck shutdown failed.", "error", err)
		}
	}, nil
}

func (a *App) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	payload := map[string]any{
		"status":     "ok",
		"profile":    a.prof.Name(),
		"extensions": a.extensions.Len(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.logger.Warn("Healthcheck response failed.", "error", err)
	}
}
