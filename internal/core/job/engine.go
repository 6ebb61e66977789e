// Package job contains the pure business logic for the job lifecycle.
// This is part of the functional core - no I/O, only pure functions.
// The caller passes the current time to keep transforms deterministic.
package job

import (
	"errors"
	"fmt"
	"time"

	"github.com/example/commesse/internal/models"
)

// ErrInvalidOperation signals an update against a missing job or without
// an acting operator.
var ErrInvalidOperation = errors.New("invalid operation")

// Update is a partial overwrite of a job. Nil fields are left untouched;
// present fields replace the current value (shallow merge). Color is
// absent on purpose: it is derived from Priority and never set directly.
type Update struct {
	Code              *string
	Client            *string
	Category          *string
	Priority          *int
	RequestedDelivery *string
	AssignedOperator  *string
	Department        *models.Department
	Status            *models.Status
	TakenInCharge     *string
	ExpectedFinish    *string
	MissingMaterials  *string
	TechnicalNotes    *string
	EstimatedHours    *int
	Completion        *models.Completion
	Locked            *bool
}

// Derived job colors by priority threshold.
const (
	ColorRed    = "#ef4444" // priority >= 4
	ColorYellow = "#eab308" // priority == 3
	ColorBlue   = "#3b82f6" // priority <= 2
)

// ColorForPriority derives the display color from a priority value.
func ColorForPriority(priority int) string {
	switch {
	case priority >= 4:
		return ColorRed
	case priority == 3:
		return ColorYellow
	default:
		return ColorBlue
	}
}

// LogID builds the time-derived unique token for a phase-log entry.
// offset disambiguates entries minted at the same instant.
func LogID(now time.Time, offset int) string {
	return fmt.Sprintf("L%d", now.UnixMilli()+int64(offset))
}

// ApplyUpdate merges upd over current and derives side effects: the
// priority color, and one phase-log entry per changed status and per new
// assignment (two independent entries when one update touches both).
//
// The transform trusts its caller on authorization - role gating happens
// in the application layer against the policy package. The one state rule
// enforced here is the missing-materials write guard: the field only
// sticks while the job already sits in Missing Materials. Reset and
// material-arrived clear the text through their own direct transforms.
func ApplyUpdate(current models.Job, upd Update, actor models.Operator, now time.Time) (models.Job, []models.PhaseLog, error) {
	if current.ID == "" {
		return models.Job{}, nil, fmt.Errorf("%w: job does not exist", ErrInvalidOperation)
	}
	if actor.Name == "" {
		return models.Job{}, nil, fmt.Errorf("%w: no acting operator", ErrInvalidOperation)
	}
	if upd.Priority != nil && !models.ValidPriority(*upd.Priority) {
		return models.Job{}, nil, fmt.Errorf("%w: priority %d out of range 1-5", models.ErrValidation, *upd.Priority)
	}

	var entries []models.PhaseLog

	if upd.Status != nil && *upd.Status != current.Status {
		entries = append(entries, models.PhaseLog{
			ID:         LogID(now, len(entries)),
			JobID:      current.ID,
			Phase:      string(*upd.Status),
			Start:      now.Format(time.RFC3339),
			PhaseState: models.PhaseStateInProgress,
			Actor:      actor.Name,
		})
	}

	// Clearing an assignment is not logged: the synthetic label only makes
	// sense for a concrete assignee.
	if upd.AssignedOperator != nil && *upd.AssignedOperator != "" && *upd.AssignedOperator != current.AssignedOperator {
		entries = append(entries, models.PhaseLog{
			ID:         LogID(now, len(entries)),
			JobID:      current.ID,
			Phase:      models.AssignmentLabel(*upd.AssignedOperator),
			Start:      now.Format(time.RFC3339),
			PhaseState: models.PhaseStateInProgress,
			Actor:      actor.Name,
		})
	}

	next := merge(current, upd)

	if upd.Priority != nil {
		next.Color = ColorForPriority(*upd.Priority)
	}

	return next, entries, nil
}

func merge(current models.Job, upd Update) models.Job {
	next := current

	if upd.Code != nil {
		next.Code = *upd.Code
	}
	if upd.Client != nil {
		next.Client = *upd.Client
	}
	if upd.Category != nil {
		next.Category = *upd.Category
	}
	if upd.Priority != nil {
		next.Priority = *upd.Priority
	}
	if upd.RequestedDelivery != nil {
		next.RequestedDelivery = *upd.RequestedDelivery
	}
	if upd.AssignedOperator != nil {
		next.AssignedOperator = *upd.AssignedOperator
	}
	if upd.Department != nil {
		next.Department = *upd.Department
	}
	if upd.Status != nil {
		next.Status = *upd.Status
	}
	if upd.TakenInCharge != nil {
		next.TakenInCharge = *upd.TakenInCharge
	}
	if upd.ExpectedFinish != nil {
		next.ExpectedFinish = *upd.ExpectedFinish
	}
	if upd.MissingMaterials != nil {
		// Writable only while already in Missing Materials; a silent
		// no-op otherwise, clears included. The material-arrived shortcut
		// bypasses this through its own transform.
		if current.Status == models.StatusMissingMaterials {
			next.MissingMaterials = *upd.MissingMaterials
		}
	}
	if upd.TechnicalNotes != nil {
		next.TechnicalNotes = *upd.TechnicalNotes
	}
	if upd.EstimatedHours != nil {
		next.EstimatedHours = *upd.EstimatedHours
	}
	if upd.Completion != nil {
		next.Completion = *upd.Completion
	}
	if upd.Locked != nil {
		next.Locked = *upd.Locked
	}

	return next
}
