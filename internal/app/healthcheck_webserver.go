package app

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vk/tunegridgo/internal/dag"
)

// startHealthcheckServer runs the health/status HTTP server in the
// background. /health answers liveness probes; /status reports the current
// state of every run in the graph.
func (a *App) startHealthcheckServer(port int, graph *dag.Graph) {
	a.logger.Debug("Configuring health check server.")
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(graph.States()); err != nil {
			a.logger.Error("Failed to encode status response.", "error", err)
		}
	})

	addr := fmt.Sprintf(":%d", port)

	go func() {
		a.logger.Info("🩺 Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			a.logger.Error("Health check server failed", "error", err)
		}
	}()
}

// healthHandler answers liveness probes.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}
