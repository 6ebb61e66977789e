// Package primary defines the primary ports (driving adapters) for the
// application: the interfaces through which the outside world drives it.
// Implementations live in internal/app; HTTP and CLI adapters consume them.
package primary

import (
	"context"
	"time"

	corejob "github.com/example/commesse/internal/core/job"
	"github.com/example/commesse/internal/models"
)

// JobService is the primary port for job lifecycle operations. Every
// method takes the acting operator; authorization is enforced here, not
// in the callers.
type JobService interface {
	// ListJobs returns the jobs visible to actor, in snapshot order.
	ListJobs(ctx context.Context, actor models.Operator) ([]models.Job, error)

	// GetJob returns one visible job.
	GetJob(ctx context.Context, actor models.Operator, jobID string) (models.Job, error)

	// JobsOn returns the jobs visible to actor that occupy date.
	JobsOn(ctx context.Context, actor models.Operator, date time.Time) ([]models.Job, error)

	// CreateJob creates a job (initial status Quote) and its creation log.
	CreateJob(ctx context.Context, actor models.Operator, req CreateJobRequest) (models.Job, error)

	// UpdateJob applies a partial update through the lifecycle engine.
	UpdateJob(ctx context.Context, actor models.Operator, jobID string, upd corejob.Update) (models.Job, error)

	// TakeCharge assigns a job and forces it into In Progress. A zero
	// request self-assigns actor, which requires an unassigned job;
	// naming another operator is admin-only reassignment. Visibility does
	// not gate this: an operator takes charge of a quote the list view
	// hides from them.
	TakeCharge(ctx context.Context, actor models.Operator, jobID string, req TakeChargeRequest) (models.Job, error)

	// Assign sets or clears the assignee (admin only).
	Assign(ctx context.Context, actor models.Operator, jobID, operatorName string) (models.Job, error)

	// MaterialArrived clears the missing-materials text.
	MaterialArrived(ctx context.Context, actor models.Operator, jobID string) (models.Job, error)

	// ResetJob rewinds a job to the quote state (admin only, irreversible,
	// writes no log entry). Callers must confirm with the human first.
	ResetJob(ctx context.Context, actor models.Operator, jobID string) (models.Job, error)

	// DeleteJob removes a job (admin only, hard delete). Phase logs are
	// retained. Callers must confirm with the human first.
	DeleteJob(ctx context.Context, actor models.Operator, jobID string) error

	// JobLogs returns the phase history of one job, newest first.
	JobLogs(ctx context.Context, actor models.Operator, jobID string) ([]models.PhaseLog, error)
}

// TakeChargeRequest carries the optional take-charge parameters. Both
// fields default when empty: Operator to the actor, TakenInCharge to
// today.
type TakeChargeRequest struct {
	Operator      string
	TakenInCharge string
}

// CreateJobRequest contains the fields settable at job creation.
type CreateJobRequest struct {
	Code              string
	Client            string
	Category          string
	Priority          int
	RequestedDelivery string
	Department        models.Department
	ExpectedFinish    string
	TechnicalNotes    string
	EstimatedHours    int
}
