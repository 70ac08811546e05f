package httpapi

import (
	"context"
	"net/http"
	"time"
)

// PingFunc checks one backing service.
type PingFunc func(ctx context.Context) error

// HealthHandler reports the API and its dependencies. A nil check is
// reported as "disabled", as when running on the in-memory store.
type HealthHandler struct {
	DB    PingFunc
	Cache PingFunc
}

type healthResponse struct {
	Status string `json:"status"`
	DB     string `json:"db"`
	Cache  string `json:"cache"`
	Time   string `json:"time"`
}

// Health
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} healthResponse
// @Router /health [get]
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		DB:     probe(ctx, h.DB),
		Cache:  probe(ctx, h.Cache),
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

func probe(ctx context.Context, ping PingFunc) string {
	if ping == nil {
		return "disabled"
	}
	if err := ping(ctx); err != nil {
		return "down"
	}
	return "ok"
}
