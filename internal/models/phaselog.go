package models

// PhaseLog is an immutable append-only history record. Entries are written
// as a side effect of job creation and of updates that change status or
// assignment, and are never mutated or deleted afterwards. Deleting a job
// leaves its entries in place: the log is the only record the store keeps.
type PhaseLog struct {
	ID         string `json:"id"` // time-derived unique token, e.g. L1767225600000
	JobID      string `json:"jobId"`
	Phase      string `json:"phase"` // status name or a synthetic label ("assigned to X", "Job created")
	Start      string `json:"start"` // RFC 3339 instant
	End        string `json:"end"`
	PhaseState string `json:"phaseState"`
	Actor      string `json:"actor"` // operator name who made the change
	Notes      string `json:"notes"`
}

// PhaseStateInProgress is the phase-state label stamped on new entries.
const PhaseStateInProgress = "in progress"

// PhaseCreated is the synthetic phase label written at job creation.
const PhaseCreated = "Job created"

// AssignmentLabel builds the synthetic phase label for an assignment change.
func AssignmentLabel(operatorName string) string {
	return "assigned to " + operatorName
}
