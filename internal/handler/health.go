package handler

import (
	"net/http"
	"runtime"
	"time"

	"foodchain-api/pkg/response"
)

// StartTime tracks when the server started for uptime calculation
var StartTime = time.Now()

// Handler contains shared HTTP handlers and their dependencies.
type Handler struct{}

// New creates a new handler.
func New() *Handler {
	return &Handler{}
}

// Ping handles GET /api/ping
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	response.OK(w, response.Payload{
		"ts": time.Now().UnixMilli(),
	})
}

// Status handles GET /api/status - unified health check for monitoring
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	memoryMB := float64(memStats.Alloc) / 1024 / 1024

	response.OK(w, response.Payload{
		"service":        "foodchain-api",
		"status":         "ok",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"uptime_seconds": int64(time.Since(StartTime).Seconds()),
		"memory_mb":      float64(int(memoryMB*100)) / 100,
	})
}
