package monitoring

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type HealthServer struct {
	monitor *Monitor
	port    int
	server  *http.Server
}

func NewHealthServer(monitor *Monitor, port int) *HealthServer {
	return &HealthServer{
		monitor: monitor,
		port:    port,
	}
}

// Router builds the health routes; Start serves them
func (h *HealthServer) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/status", h.statusHandler).Methods(http.MethodGet)
	r.Handle("/metrics", h.monitor.Metrics().Handler()).Methods(http.MethodGet)
	return handlers.LoggingHandler(log.Writer(), r)
}

func (h *HealthServer) Start() {
	h.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", h.port),
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("Health check server starting on port %d", h.port)
	go func() {
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Health server error: %v", err)
		}
	}()
}

func (h *HealthServer) Stop(ctx context.Context) error {
	if h.server == nil {
		return nil
	}
	return h.server.Shutdown(ctx)
}

func (h *HealthServer) healthHandler(w http.ResponseWriter, r *http.Request) {
	if h.monitor.IsHealthy() {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK - %s", h.monitor.GetStatusSummary())
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, "Service unhealthy - %s", h.monitor.GetStatusSummary())
	}
}

func (h *HealthServer) statusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "%s", h.monitor.GetStatusSummary())
}
