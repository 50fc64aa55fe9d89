package queue

// AuditMessage asks the worker to execute one audit run.
type AuditMessage struct {
	RunID       string `json:"run_id"`
	CompanyName string `json:"company_name"`
}

// IngestMessage asks the worker to ingest reports from a local folder or an
// s3:// prefix.
type IngestMessage struct {
	Source string `json:"source"`
}

// StatusEvent is published on the status exchange when a run finished.
type StatusEvent struct {
	RunID       string `json:"run_id"`
	CompanyName string `json:"company_name"`
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
}
