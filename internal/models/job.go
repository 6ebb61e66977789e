package models

// Status is a job's production stage. The ordering in StatusOrder is
// advisory only: any status may follow any other, because the shop floor
// routinely rewinds jobs (for example Completed back to Missing Materials).
type Status string

const (
	StatusQuote            Status = "Quote"
	StatusMissingMaterials Status = "Missing Materials"
	StatusInProgress       Status = "In Progress"
	StatusCutting          Status = "Cutting"
	StatusProcessing       Status = "Processing"
	StatusAssembly         Status = "Assembly"
	StatusShipping         Status = "Shipping"
	StatusPickup           Status = "Pickup"
	StatusCompleted        Status = "Completed"
)

// StatusOrder is the advisory display ordering of production stages.
var StatusOrder = []Status{
	StatusQuote,
	StatusMissingMaterials,
	StatusInProgress,
	StatusCutting,
	StatusProcessing,
	StatusAssembly,
	StatusShipping,
	StatusPickup,
	StatusCompleted,
}

// StatusIndex returns the advisory ordering index of s, or -1 if unknown.
func StatusIndex(s Status) int {
	for i, known := range StatusOrder {
		if s == known {
			return i
		}
	}
	return -1
}

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s Status) bool {
	return StatusIndex(s) >= 0
}

// Completion is the coarse open/closed flag. It is independent of Status:
// a job is finished when either Status or Completion says completed, and
// both must be checked wherever that question is asked.
type Completion string

const (
	CompletionOpen      Completion = "Open"
	CompletionCompleted Completion = "Completed"
)

// Job is the central entity (a "commessa"): a manufacturing work order
// tracked through production phases. Dates are wire-format YYYY-MM-DD
// strings, empty meaning unset, matching the spreadsheet rows.
type Job struct {
	ID                string     `json:"id"`
	Code              string     `json:"code"`
	Client            string     `json:"client"` // client name, by-value reference
	Category          string     `json:"category"`
	Priority          int        `json:"priority"` // 1-5
	RequestedDelivery string     `json:"requestedDelivery"`
	AssignedOperator  string     `json:"assignedOperator"` // operator name, empty when unassigned
	Department        Department `json:"department"`
	Status            Status     `json:"status"`
	CreatedOn         string     `json:"createdOn"`
	TakenInCharge     string     `json:"takenInCharge"`
	ExpectedFinish    string     `json:"expectedFinish"`
	MissingMaterials  string     `json:"missingMaterials"` // meaningful only while Status is Missing Materials
	TechnicalNotes    string     `json:"technicalNotes"`
	EstimatedHours    int        `json:"estimatedHours"`
	Completion        Completion `json:"completion"`
	Color             string     `json:"color"`  // derived from Priority, never set independently
	Locked            bool       `json:"locked"` // visual warning only, no behavioral gating
}

// Completed reports whether the job is finished, checking both indicators.
func (j Job) Completed() bool {
	return j.Status == StatusCompleted || j.Completion == CompletionCompleted
}

// ValidPriority reports whether p is inside the allowed 1-5 range.
func ValidPriority(p int) bool {
	return p >= 1 && p <= 5
}

// Validate checks structural validity on creation.
func (j Job) Validate() error {
	if j.ID == "" {
		return fieldError("job id is required")
	}
	if j.Client == "" {
		return fieldError("job client is required")
	}
	if !ValidPriority(j.Priority) {
		return fieldError("job priority must be between 1 and 5")
	}
	if !ValidStatus(j.Status) {
		return fieldError("unknown job status: " + string(j.Status))
	}
	return nil
}
