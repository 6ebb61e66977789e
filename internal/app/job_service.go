package app

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	corejob "github.com/example/commesse/internal/core/job"
	"github.com/example/commesse/internal/core/policy"
	"github.com/example/commesse/internal/models"
	"github.com/example/commesse/internal/ports/primary"
	"github.com/example/commesse/internal/ports/secondary"
)

// JobServiceImpl implements primary.JobService. Flow per mutation:
// resolve the job from the snapshot, check capabilities against the
// policy core, run the pure lifecycle engine, commit and persist through
// the sync coordinator.
type JobServiceImpl struct {
	store *SnapshotStore
	sync  *SyncCoordinator
	log   *slog.Logger
	now   func() time.Time
}

// NewJobService creates a JobService with injected dependencies.
// now is injectable for tests; pass time.Now in production wiring.
func NewJobService(store *SnapshotStore, sync *SyncCoordinator, log *slog.Logger, now func() time.Time) *JobServiceImpl {
	return &JobServiceImpl{store: store, sync: sync, log: log, now: now}
}

// ListJobs returns the jobs visible to actor.
func (s *JobServiceImpl) ListJobs(ctx context.Context, actor models.Operator) ([]models.Job, error) {
	return policy.VisibleJobs(s.store.View().Jobs, actor), nil
}

// GetJob returns one job if actor may see it.
func (s *JobServiceImpl) GetJob(ctx context.Context, actor models.Operator, jobID string) (models.Job, error) {
	job, ok := s.findJob(jobID)
	if !ok || !policy.IsJobVisible(job, actor) {
		return models.Job{}, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	return job, nil
}

// JobsOn returns the visible jobs active on date.
func (s *JobServiceImpl) JobsOn(ctx context.Context, actor models.Operator, date time.Time) ([]models.Job, error) {
	visible := policy.VisibleJobs(s.store.View().Jobs, actor)
	return corejob.ActiveJobsOn(visible, date), nil
}

// CreateJob creates a job in the quote state plus its creation log entry.
func (s *JobServiceImpl) CreateJob(ctx context.Context, actor models.Operator, req primary.CreateJobRequest) (models.Job, error) {
	if !policy.CanManageData(actor.Department) {
		return models.Job{}, fmt.Errorf("%w: %s cannot create jobs", ErrForbidden, actor.Department)
	}

	now := s.now()
	job := models.Job{
		ID:                s.nextJobID(),
		Code:              req.Code,
		Client:            req.Client,
		Category:          req.Category,
		Priority:          req.Priority,
		RequestedDelivery: req.RequestedDelivery,
		Department:        req.Department,
		ExpectedFinish:    req.ExpectedFinish,
		TechnicalNotes:    req.TechnicalNotes,
		EstimatedHours:    req.EstimatedHours,
	}

	created, entry, err := corejob.NewJob(job, actor, now)
	if err != nil {
		return models.Job{}, err
	}

	s.sync.CommitAndPersist(ctx, func(snap *secondary.Snapshot) {
		snap.Jobs = append(snap.Jobs, created)
		snap.Logs = append(snap.Logs, entry)
	})
	s.log.Info("job created", "job", created.ID, "actor", actor.Name)
	return created, nil
}

// UpdateJob applies a partial update after an authorization pass: every
// present field must be covered by a capability of the acting operator.
func (s *JobServiceImpl) UpdateJob(ctx context.Context, actor models.Operator, jobID string, upd corejob.Update) (models.Job, error) {
	current, ok := s.findJob(jobID)
	if !ok || !policy.IsJobVisible(current, actor) {
		return models.Job{}, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}

	if err := authorizeUpdate(policy.CapabilitiesFor(actor, current), upd); err != nil {
		return models.Job{}, err
	}

	return s.applyAndCommit(ctx, current, upd, actor)
}

// TakeCharge assigns a job and forces it to In Progress. No visibility
// gate: the flow exists precisely so an operator can claim a quote the
// list view hides from them.
func (s *JobServiceImpl) TakeCharge(ctx context.Context, actor models.Operator, jobID string, req primary.TakeChargeRequest) (models.Job, error) {
	current, ok := s.findJob(jobID)
	if !ok {
		return models.Job{}, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}

	assignee := req.Operator
	if assignee == "" {
		assignee = actor.Name
	}
	caps := policy.CapabilitiesFor(actor, current)
	if assignee == actor.Name {
		if !caps.TakeCharge {
			return models.Job{}, fmt.Errorf("%w: job %s already assigned", ErrForbidden, jobID)
		}
	} else {
		if !caps.AssignAnyOperator {
			return models.Job{}, fmt.Errorf("%w: only admins hand a job to someone else", ErrForbidden)
		}
		if !s.operatorExists(assignee) {
			return models.Job{}, fmt.Errorf("%w: %s", ErrOperatorNotFound, assignee)
		}
	}

	return s.applyAndCommit(ctx, current, corejob.TakeChargePlan(assignee, req.TakenInCharge, s.now()), actor)
}

// Assign sets or clears the assignee. Admin only: take-charge is the
// self-service path, this one reaches any operator.
func (s *JobServiceImpl) Assign(ctx context.Context, actor models.Operator, jobID, operatorName string) (models.Job, error) {
	current, ok := s.findJob(jobID)
	if !ok {
		return models.Job{}, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	if caps := policy.CapabilitiesFor(actor, current); !caps.AssignAnyOperator {
		return models.Job{}, fmt.Errorf("%w: only admins reassign jobs", ErrForbidden)
	}
	if operatorName != "" && !s.operatorExists(operatorName) {
		return models.Job{}, fmt.Errorf("%w: %s", ErrOperatorNotFound, operatorName)
	}

	return s.applyAndCommit(ctx, current, corejob.AssignPlan(current, operatorName, s.now()), actor)
}

// MaterialArrived clears the missing-materials text, status untouched.
// Direct transform: it must clear text lingering in any status, which the
// engine's write guard refuses. No log entry is appended, matching the
// engine (neither status nor assignee changes).
func (s *JobServiceImpl) MaterialArrived(ctx context.Context, actor models.Operator, jobID string) (models.Job, error) {
	current, ok := s.findJob(jobID)
	if !ok || !policy.IsJobVisible(current, actor) {
		return models.Job{}, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}

	next := corejob.MaterialArrived(current)
	s.sync.CommitAndPersist(ctx, func(snap *secondary.Snapshot) {
		replaceJob(snap, next)
	})
	s.log.Info("material arrived", "job", jobID, "actor", actor.Name)
	return next, nil
}

// ResetJob rewinds a job to the quote state. Irreversible, admin only,
// and deliberately writes no phase-log entry.
func (s *JobServiceImpl) ResetJob(ctx context.Context, actor models.Operator, jobID string) (models.Job, error) {
	current, ok := s.findJob(jobID)
	if !ok {
		return models.Job{}, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	if caps := policy.CapabilitiesFor(actor, current); !caps.Reset {
		return models.Job{}, fmt.Errorf("%w: only admins reset jobs", ErrForbidden)
	}

	next := corejob.Reset(current)
	s.sync.CommitAndPersist(ctx, func(snap *secondary.Snapshot) {
		replaceJob(snap, next)
	})
	s.log.Info("job reset", "job", jobID, "actor", actor.Name)
	return next, nil
}

// DeleteJob removes a job. Hard delete; phase logs are retained as the
// remaining audit trail.
func (s *JobServiceImpl) DeleteJob(ctx context.Context, actor models.Operator, jobID string) error {
	current, ok := s.findJob(jobID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	if caps := policy.CapabilitiesFor(actor, current); !caps.Delete {
		return fmt.Errorf("%w: only admins delete jobs", ErrForbidden)
	}

	s.sync.CommitAndPersist(ctx, func(snap *secondary.Snapshot) {
		kept := snap.Jobs[:0]
		for _, j := range snap.Jobs {
			if j.ID != jobID {
				kept = append(kept, j)
			}
		}
		snap.Jobs = kept
	})
	s.log.Info("job deleted", "job", jobID, "actor", actor.Name)
	return nil
}

// JobLogs returns the phase history of one job, newest first.
func (s *JobServiceImpl) JobLogs(ctx context.Context, actor models.Operator, jobID string) ([]models.PhaseLog, error) {
	if _, err := s.GetJob(ctx, actor, jobID); err != nil {
		return nil, err
	}

	var entries []models.PhaseLog
	for _, l := range s.store.View().Logs {
		if l.JobID == jobID {
			entries = append(entries, l)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start > entries[j].Start
	})
	return entries, nil
}

func (s *JobServiceImpl) applyAndCommit(ctx context.Context, current models.Job, upd corejob.Update, actor models.Operator) (models.Job, error) {
	next, entries, err := corejob.ApplyUpdate(current, upd, actor, s.now())
	if err != nil {
		return models.Job{}, err
	}

	s.sync.CommitAndPersist(ctx, func(snap *secondary.Snapshot) {
		replaceJob(snap, next)
		snap.Logs = append(snap.Logs, entries...)
	})
	s.log.Info("job updated", "job", next.ID, "actor", actor.Name, "logEntries", len(entries))
	return next, nil
}

// authorizeUpdate rejects any present field the capabilities do not
// cover. Field gating lives here so the HTTP, CLI, and assistant paths
// cannot drift apart; the engine below stays a trusted pure transform.
func authorizeUpdate(caps policy.Capabilities, upd corejob.Update) error {
	deny := func(field string) error {
		return fmt.Errorf("%w: not allowed to edit %s", ErrForbidden, field)
	}

	if upd.Priority != nil && !caps.EditPriority {
		return deny("priority")
	}
	if (upd.RequestedDelivery != nil || upd.ExpectedFinish != nil) && !caps.EditDates {
		return deny("dates")
	}
	if upd.Status != nil && !caps.EditStatus {
		return deny("status")
	}
	if upd.TechnicalNotes != nil && !caps.EditNotes {
		return deny("notes")
	}
	if upd.EstimatedHours != nil && !caps.EditEstimatedHours {
		return deny("estimated hours")
	}
	if upd.AssignedOperator != nil && !caps.AssignAnyOperator {
		return deny("assignment")
	}
	if upd.Completion != nil && !caps.EditStatus {
		return deny("completion")
	}
	return nil
}

func (s *JobServiceImpl) findJob(jobID string) (models.Job, bool) {
	for _, j := range s.store.View().Jobs {
		if j.ID == jobID {
			return j, true
		}
	}
	return models.Job{}, false
}

func (s *JobServiceImpl) operatorExists(name string) bool {
	for _, op := range s.store.View().Operators {
		if op.Name == name {
			return true
		}
	}
	return false
}

func (s *JobServiceImpl) nextJobID() string {
	max := 0
	for _, j := range s.store.View().Jobs {
		var n int
		if _, err := fmt.Sscanf(j.ID, "C%d", &n); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("C%03d", max+1)
}

func replaceJob(snap *secondary.Snapshot, next models.Job) {
	for i, j := range snap.Jobs {
		if j.ID == next.ID {
			snap.Jobs[i] = next
			return
		}
	}
}
