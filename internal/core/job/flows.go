package job

import (
	"time"

	"github.com/example/commesse/internal/models"
)

// DateLayout is the wire format for day-granularity job dates.
const DateLayout = "2006-01-02"

func strPtr(s string) *string { return &s }

// TakeChargePlan builds the update handing a job to assignee: assignment,
// taken-in-charge stamp and a forced move to In Progress regardless of
// the current status. An empty taken date stamps today. Whether the
// caller may take charge is the policy's call.
func TakeChargePlan(assignee, taken string, today time.Time) Update {
	if taken == "" {
		taken = today.Format(DateLayout)
	}
	status := models.StatusInProgress
	return Update{
		AssignedOperator: strPtr(assignee),
		TakenInCharge:    strPtr(taken),
		Status:           &status,
	}
}

// AssignPlan builds the admin reassignment update. A non-empty operator
// name backfills the taken-in-charge date only when the job has none;
// an empty name clears both assignment and date.
func AssignPlan(current models.Job, operatorName string, today time.Time) Update {
	if operatorName == "" {
		return Update{
			AssignedOperator: strPtr(""),
			TakenInCharge:    strPtr(""),
		}
	}

	taken := current.TakenInCharge
	if taken == "" {
		taken = today.Format(DateLayout)
	}
	return Update{
		AssignedOperator: strPtr(operatorName),
		TakenInCharge:    strPtr(taken),
	}
}

// Reset rewinds a job to the quote state: assignment, taken-in-charge
// date and missing-materials text cleared, completion reopened. The
// operation is irreversible and deliberately off the record - it writes
// no phase-log entry.
func Reset(current models.Job) models.Job {
	next := current
	next.AssignedOperator = ""
	next.Status = models.StatusQuote
	next.TakenInCharge = ""
	next.Completion = models.CompletionOpen
	next.MissingMaterials = ""
	return next
}

// MaterialArrived clears the missing-materials text without touching the
// status; moving the job out of Missing Materials happens separately.
// Direct transform rather than an Update: ApplyUpdate ignores every
// missing-materials write outside that status, and this shortcut must
// clear lingering text in any status.
func MaterialArrived(current models.Job) models.Job {
	next := current
	next.MissingMaterials = ""
	return next
}

// NewJob assembles a freshly created job plus its creation log entry.
// New jobs always start as quotes with the color derived from priority.
func NewJob(j models.Job, creator models.Operator, now time.Time) (models.Job, models.PhaseLog, error) {
	j.Status = models.StatusQuote
	if j.Completion == "" {
		j.Completion = models.CompletionOpen
	}
	if j.CreatedOn == "" {
		j.CreatedOn = now.Format(DateLayout)
	}
	j.Color = ColorForPriority(j.Priority)

	if err := j.Validate(); err != nil {
		return models.Job{}, models.PhaseLog{}, err
	}

	entry := models.PhaseLog{
		ID:         LogID(now, 0),
		JobID:      j.ID,
		Phase:      models.PhaseCreated,
		Start:      now.Format(time.RFC3339),
		PhaseState: models.PhaseStateInProgress,
		Actor:      creator.Name,
	}
	return j, entry, nil
}
