package httpx

import (
	"context"
	"net/http"
	"sort"
	"time"
)

// HealthResponse is the body of /livez and /readyz. Checks is only set by readyz.
type HealthResponse struct {
	Status  string            `json:"status"`
	Uptime  string            `json:"uptime,omitempty"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// HealthCheck reports whether one dependency is usable.
type HealthCheck func(ctx context.Context) error

// LivezHandler always answers 200 while the process is serving.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler runs every check and answers 503 with status "degraded" if any fails.
func ReadyzHandler(startTime time.Time, version string, checks map[string]HealthCheck) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		results := make(map[string]string, len(names))
		overall := "ok"
		code := http.StatusOK

		for _, name := range names {
			if err := checks[name](r.Context()); err != nil {
				results[name] = "error: " + err.Error()
				overall = "degraded"
				code = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		WriteJSON(w, code, HealthResponse{
			Status:  overall,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  results,
		})
	}
}
