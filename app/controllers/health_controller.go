package controllers

import (
	"context"
	"net/http"
)

// Pinger is satisfied by any store that can report its reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports whether the document store is reachable
type HealthController struct {
	store Pinger
}

func NewHealthController(store Pinger) *HealthController {
	return &HealthController{store: store}
}

// Show pings the store
func (hc *HealthController) Show(w http.ResponseWriter, r *http.Request) {
	if err := hc.store.Ping(r.Context()); err != nil {
		sendError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
