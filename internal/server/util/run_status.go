package util

import (
	"encoding/json"

	"github.com/OFFIS-RIT/greenlens/internal/jobs"
)

// RunResponse renders a run the way pollers expect it: the status next to
// the pipeline outputs once completed, the error once failed, and the
// current stage while running.
func RunResponse(run jobs.Run) (map[string]any, error) {
	out := map[string]any{"status": string(run.Status)}

	switch run.Status {
	case jobs.StatusFailed:
		out["error"] = run.Error
	case jobs.StatusCompleted:
		if run.Result == nil {
			break
		}
		data, err := json.Marshal(run.Result)
		if err != nil {
			return nil, err
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, err
		}
		for k, v := range fields {
			if k == "context" || k == "company_name" {
				continue
			}
			out[k] = v
		}
	default:
		if run.Stage != "" {
			out["stage"] = run.Stage
		}
	}
	return out, nil
}
