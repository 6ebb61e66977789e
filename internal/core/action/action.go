// Package action decodes the structured output of the natural-language
// interpreter into a closed set of dispatchable variants. The decoder
// fails closed: anything that does not match the fixed schema maps to the
// unknown variant or an error status, never to a crash or a guessed
// action.
package action

import (
	"errors"
	"fmt"

	"github.com/example/commesse/internal/models"
)

// Kind enumerates the recognized action variants. The set is closed;
// unrecognized kinds decode to KindUnknown and stay inert.
type Kind string

const (
	KindTakeCharge  Kind = "take_charge"
	KindUpdateJob   Kind = "update_job"
	KindGetCalendar Kind = "get_calendar"
	KindListJobs    Kind = "list_jobs"
	KindAddNote     Kind = "add_note"
	KindUnknown     Kind = "unknown"
)

// Statuses the interpreter reports on its own envelope.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ErrPayload signals a recognized action whose payload misses a required
// field. It is surfaced to the user the same way an upstream error status
// is, never silently dropped.
var ErrPayload = errors.New("invalid action payload")

// Action is a decoded interpreter response. Exactly one payload field is
// set, matching Kind; the rest are nil.
type Action struct {
	Kind    Kind
	Status  string
	Message string

	TakeCharge *TakeChargePayload
	Update     *UpdatePayload
	Calendar   *CalendarPayload
	Note       *NotePayload
	List       *ListPayload
}

// TakeChargePayload carries a take-charge request. AssignedOperator and
// TakenInCharge are optional; the dispatcher defaults them to the acting
// operator and today.
type TakeChargePayload struct {
	JobID            string `json:"jobId"`
	AssignedOperator string `json:"assignedOperator"`
	TakenInCharge    string `json:"takenInCharge"`
}

// UpdatePayload carries a generic job update. Absent fields stay nil and
// are not forwarded.
type UpdatePayload struct {
	JobID             string             `json:"jobId"`
	Code              *string            `json:"code"`
	Client            *string            `json:"client"`
	Category          *string            `json:"category"`
	Priority          *int               `json:"priority"`
	RequestedDelivery *string            `json:"requestedDelivery"`
	AssignedOperator  *string            `json:"assignedOperator"`
	Department        *models.Department `json:"department"`
	Status            *models.Status     `json:"status"`
	TakenInCharge     *string            `json:"takenInCharge"`
	ExpectedFinish    *string            `json:"expectedFinish"`
	MissingMaterials  *string            `json:"missingMaterials"`
	TechnicalNotes    *string            `json:"technicalNotes"`
	EstimatedHours    *int               `json:"estimatedHours"`
	Completion        *models.Completion `json:"completion"`
	Locked            *bool              `json:"locked"`
}

// CalendarPayload anchors the calendar view at the first day of a month.
type CalendarPayload struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// NotePayload sets the technical notes of a job.
type NotePayload struct {
	JobID string `json:"jobId"`
	Note  string `json:"note"`
}

// ListPayload carries optional list filters.
type ListPayload struct {
	Department models.Department `json:"department"`
	Status     models.Status     `json:"status"`
}

func payloadError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPayload, fmt.Sprintf(format, args...))
}
