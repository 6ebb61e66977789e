package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/commesse/internal/core/action"
	corejob "github.com/example/commesse/internal/core/job"
	"github.com/example/commesse/internal/core/policy"
	"github.com/example/commesse/internal/models"
	"github.com/example/commesse/internal/ports/primary"
	"github.com/example/commesse/internal/ports/secondary"
)

// AssistantServiceImpl implements primary.AssistantService: free text to
// the interpreter, strict decode, dispatch onto the same JobService the
// UI uses. Interpreter-sourced updates pass the same policy gates as any
// other caller.
type AssistantServiceImpl struct {
	interpreter secondary.Interpreter
	jobs        primary.JobService
	store       *SnapshotStore
	log         *slog.Logger
}

// NewAssistantService creates an AssistantService with injected dependencies.
func NewAssistantService(interpreter secondary.Interpreter, jobs primary.JobService, store *SnapshotStore, log *slog.Logger) *AssistantServiceImpl {
	return &AssistantServiceImpl{
		interpreter: interpreter,
		jobs:        jobs,
		store:       store,
		log:         log,
	}
}

// HandleCommand interprets text and dispatches the decoded action. An
// upstream error status and a payload validation failure surface the same
// way: a user-facing message, no state change.
func (s *AssistantServiceImpl) HandleCommand(ctx context.Context, actor models.Operator, text string) (primary.AssistantOutcome, error) {
	if s.interpreter == nil {
		return primary.AssistantOutcome{Message: "the assistant is not configured"}, nil
	}

	// Reduced job list only: id, code, client, status, assignee.
	visible := policy.VisibleJobs(s.store.View().Jobs, actor)
	reduced := make([]models.Job, len(visible))
	for i, j := range visible {
		reduced[i] = models.Job{
			ID:               j.ID,
			Code:             j.Code,
			Client:           j.Client,
			Status:           j.Status,
			AssignedOperator: j.AssignedOperator,
		}
	}

	raw, err := s.interpreter.Interpret(ctx, text, actor, reduced)
	if err != nil {
		return primary.AssistantOutcome{}, fmt.Errorf("interpreter call failed: %w", err)
	}

	act, err := action.Decode(raw)
	if err != nil {
		// Recognized action, unusable payload: user-facing, no state change.
		if errors.Is(err, action.ErrPayload) {
			return primary.AssistantOutcome{Message: err.Error()}, nil
		}
		return primary.AssistantOutcome{}, err
	}

	if act.Status == action.StatusError {
		return primary.AssistantOutcome{Message: act.Message}, nil
	}

	return s.dispatch(ctx, actor, act)
}

func (s *AssistantServiceImpl) dispatch(ctx context.Context, actor models.Operator, act action.Action) (primary.AssistantOutcome, error) {
	out := primary.AssistantOutcome{Message: act.Message}

	switch act.Kind {
	case action.KindTakeCharge:
		// One update regardless of assignee: status is forced to
		// In Progress, and a payload date overrides today's stamp.
		job, err := s.jobs.TakeCharge(ctx, actor, act.TakeCharge.JobID, primary.TakeChargeRequest{
			Operator:      act.TakeCharge.AssignedOperator,
			TakenInCharge: act.TakeCharge.TakenInCharge,
		})
		if err != nil {
			return primary.AssistantOutcome{}, err
		}
		out.Job = &job

	case action.KindUpdateJob:
		job, err := s.jobs.UpdateJob(ctx, actor, act.Update.JobID, updateFromPayload(act.Update))
		if err != nil {
			return primary.AssistantOutcome{}, err
		}
		out.Job = &job

	case action.KindAddNote:
		// Appended, never replaced: existing technical notes survive.
		current, err := s.jobs.GetJob(ctx, actor, act.Note.JobID)
		if err != nil {
			return primary.AssistantOutcome{}, err
		}
		note := act.Note.Note
		if current.TechnicalNotes != "" {
			note = current.TechnicalNotes + "\n" + note
		}
		job, err := s.jobs.UpdateJob(ctx, actor, act.Note.JobID, corejob.Update{TechnicalNotes: &note})
		if err != nil {
			return primary.AssistantOutcome{}, err
		}
		out.Job = &job

	case action.KindGetCalendar:
		out.CalendarMonth = act.Calendar.Month
		out.CalendarYear = act.Calendar.Year

	case action.KindListJobs:
		jobs, err := s.jobs.ListJobs(ctx, actor)
		if err != nil {
			return primary.AssistantOutcome{}, err
		}
		if act.List != nil {
			jobs = filterJobs(jobs, *act.List)
		}
		out.Jobs = jobs

	case action.KindUnknown:
		// Inert by contract; the message alone goes back to the user.
	}

	s.log.Info("assistant action dispatched", "kind", act.Kind, "actor", actor.Name)
	return out, nil
}

func updateFromPayload(p *action.UpdatePayload) corejob.Update {
	return corejob.Update{
		Code:              p.Code,
		Client:            p.Client,
		Category:          p.Category,
		Priority:          p.Priority,
		RequestedDelivery: p.RequestedDelivery,
		AssignedOperator:  p.AssignedOperator,
		Department:        p.Department,
		Status:            p.Status,
		TakenInCharge:     p.TakenInCharge,
		ExpectedFinish:    p.ExpectedFinish,
		MissingMaterials:  p.MissingMaterials,
		TechnicalNotes:    p.TechnicalNotes,
		EstimatedHours:    p.EstimatedHours,
		Completion:        p.Completion,
		Locked:            p.Locked,
	}
}

func filterJobs(jobs []models.Job, f action.ListPayload) []models.Job {
	out := jobs[:0:0]
	for _, j := range jobs {
		if f.Department != "" && j.Department != f.Department {
			continue
		}
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		out = append(out, j)
	}
	return out
}
