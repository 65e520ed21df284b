package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/workbench/internal/database"
	"github.com/aristath/workbench/internal/di"
	"github.com/aristath/workbench/internal/scheduler"
	"github.com/aristath/workbench/internal/version"
)

// SystemHandlers serves process and job status
type SystemHandlers struct {
	container   *di.Container
	jobs        map[string]scheduler.Job
	startupTime time.Time
	log         zerolog.Logger
}

// NewSystemHandlers creates system handlers. jobs may be nil.
func NewSystemHandlers(container *di.Container, jobs *di.JobInstances, log zerolog.Logger) *SystemHandlers {
	h := &SystemHandlers{
		container:   container,
		jobs:        make(map[string]scheduler.Job),
		startupTime: time.Now(),
		log:         log.With().Str("handler", "system").Logger(),
	}

	if jobs != nil {
		for _, job := range []scheduler.Job{jobs.ReloadCues, jobs.Maintenance} {
			h.jobs[job.Name()] = job
		}
		if jobs.Archive != nil {
			h.jobs[jobs.Archive.Name()] = jobs.Archive
		}
	}
	return h
}

// SystemStatusResponse is returned by GET /api/system/status
type SystemStatusResponse struct {
	Status        string          `json:"status"`
	Version       string          `json:"version"`
	StartedAt     time.Time       `json:"started_at"`
	UptimeSeconds float64         `json:"uptime_seconds"`
	CPUPercent    float64         `json:"cpu_percent"`
	MemoryPercent float64         `json:"memory_percent"`
	StoreSeq      uint64          `json:"store_seq"`
	EventsEmitted uint64          `json:"events_emitted"`
	LastEventAt   *time.Time      `json:"last_event_at,omitempty"`
	MarketDB      *MarketDBStatus `json:"market_db,omitempty"`
}

// MarketDBStatus reports the market database connection
type MarketDBStatus struct {
	database.Stats
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, memPercent := h.getSystemStats()

	resp := SystemStatusResponse{
		Status:        "healthy",
		Version:       version.Version,
		StartedAt:     h.startupTime,
		UptimeSeconds: time.Since(h.startupTime).Seconds(),
		CPUPercent:    cpuPercent,
		MemoryPercent: memPercent,
		StoreSeq:      h.container.Store.Seq(),
	}

	if h.container.EventBus != nil {
		emitted, last := h.container.EventBus.Stats()
		resp.EventsEmitted = emitted
		if !last.IsZero() {
			resp.LastEventAt = &last
		}
	}

	if db := h.container.MarketDB; db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := &MarketDBStatus{Stats: db.GetStats(), Healthy: true}
		if err := db.HealthCheck(ctx); err != nil {
			status.Healthy = false
			status.Error = err.Error()
			resp.Status = "degraded"
		}
		resp.MarketDB = status
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// getSystemStats returns CPU and RAM usage percentages.
// The CPU sample is short so the endpoint stays responsive.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return cpuAvg, 0
	}

	return cpuAvg, memStat.UsedPercent
}

// HandleListJobs handles GET /api/system/jobs
func (h *SystemHandlers) HandleListJobs(w http.ResponseWriter, r *http.Request) {
	entries := []scheduler.Entry{}
	if h.container.Scheduler != nil {
		entries = h.container.Scheduler.Entries()
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	names := make([]string, 0, len(h.jobs))
	for name := range h.jobs {
		names = append(names, name)
	}
	sort.Strings(names)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"scheduled": entries,
		"available": names,
	})
}

// HandleRunJob handles POST /api/system/jobs/{name}/run
func (h *SystemHandlers) HandleRunJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	job, ok := h.jobs[name]
	if !ok {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown job: " + name})
		return
	}

	var err error
	if h.container.Scheduler != nil {
		err = h.container.Scheduler.RunNow(job)
	} else {
		err = job.Run()
	}
	if err != nil {
		h.log.Error().Err(err).Str("job", name).Msg("Manual job run failed")
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"job":    name,
			"status": "failed",
			"error":  err.Error(),
		})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"job": name, "status": "completed"})
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
