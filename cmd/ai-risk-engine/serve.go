package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/manasaranjanbehera/ai-risk-engine/pkg/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// runServe wires collaborators and serves /healthz and /metrics on
// cfg.MetricsAddr until the process is killed. This is the only
// network listener this command exposes; it never accepts workflow
// input over HTTP.
func runServe(cfg *config.Config, stdout io.Writer) int {
	collab, err := buildCollaborators(cfg)
	if err != nil {
		slog.Error("serve: failed to wire collaborators", "error", err)
		return 1
	}
	defer collab.Close()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handleHealthz)
	mux.Handle("/metrics", promhttp.HandlerFor(collab.promRegistry, promhttp.HandlerOpts{}))

	slog.Info("ai-risk-engine listening", "addr", cfg.MetricsAddr)
	if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
		slog.Error("serve: http server exited", "error", err)
		return 1
	}
	return 0
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
