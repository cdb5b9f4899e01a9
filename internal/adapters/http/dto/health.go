package dto

import "slices"

// Health status values.
const (
	HealthOK       = "ok"
	HealthReady    = "ready"
	HealthNotReady = "not_ready"
)

// LivenessResponse is the body of GET /health/live.
type LivenessResponse struct {
	Status string `json:"status"`
}

// ReadinessResponse is the body of GET /health/ready. Checks holds "ok" or
// the error text per component; Failing lists the failed component names in
// sorted order and is omitted when everything is healthy.
type ReadinessResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Failing []string          `json:"failing,omitempty"`
}

// Ready reports whether every check passed.
func (r ReadinessResponse) Ready() bool { return len(r.Failing) == 0 }

// NewReadinessResponse folds registry results into a response.
func NewReadinessResponse(results map[string]error) ReadinessResponse {
	resp := ReadinessResponse{Status: HealthReady, Checks: make(map[string]string, len(results))}
	for name, err := range results {
		if err != nil {
			resp.Checks[name] = err.Error()
			resp.Failing = append(resp.Failing, name)
			continue
		}
		resp.Checks[name] = HealthOK
	}
	if len(resp.Failing) > 0 {
		slices.Sort(resp.Failing)
		resp.Status = HealthNotReady
	}
	return resp
}
