package http

import (
	"context"
	"net/http"
	"time"
)

// Pinger is implemented by the backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store,omitempty"`
}

// HandleHealth reports liveness, and store reachability when a Pinger is set.
func HandleHealth(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Store: "unreachable"})
			return
		}
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Store: "ok"})
	}
}
