package controllers

import (
	"fmt"
	"net/http"
	"time"
	"watchlist/internal/response"
	"watchlist/internal/storage/interfaces"

	"go.uber.org/atomic"
)

type HealthController struct {
	source    interfaces.SnapshotSource
	startTime time.Time
	ready     atomic.Bool
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Users         int     `json:"users"`
	Movies        int     `json:"movies"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
	}

	status := http.StatusOK
	if !hc.ready.Load() {
		resp.Status = "starting"
		status = http.StatusServiceUnavailable
	} else if snapshot, err := hc.source.GetSnapshot(r.Context()); err != nil {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	} else {
		resp.Users = len(snapshot.Users)
		resp.Movies = len(snapshot.Movies)
	}

	_ = response.JSON(w, status, resp)
}

// MarkReady flips the health check to ok once startup (backup restore) is done.
func (hc *HealthController) MarkReady() {
	hc.ready.Store(true)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(source interfaces.SnapshotSource) *HealthController {
	return &HealthController{
		source:    source,
		startTime: time.Now(),
	}
}
