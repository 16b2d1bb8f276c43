package controllers

import (
	"cookingapp/internal/services"
	"fmt"
	json "github.com/goccy/go-json"
	"net/http"
	"time"
)

type HealthController struct {
	state     services.CatalogViewStateInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	CatalogStatus string  `json:"catalog_status"`
	Dishes        int     `json:"dishes"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	snap := hc.state.Snapshot()
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		CatalogStatus: string(snap.Status),
		Dishes:        len(snap.Catalog),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(state services.CatalogViewStateInterface) *HealthController {
	return &HealthController{
		state:     state,
		startTime: time.Now(),
	}
}
