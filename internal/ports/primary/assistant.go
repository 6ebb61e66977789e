package primary

import (
	"context"

	"github.com/example/commesse/internal/models"
)

// AssistantService is the primary port for the natural-language command
// surface: free text in, a dispatched state change or view switch out.
type AssistantService interface {
	HandleCommand(ctx context.Context, actor models.Operator, text string) (AssistantOutcome, error)
}

// AssistantOutcome describes what the assistant did. Message is always
// set and user-facing; the remaining fields depend on the dispatched
// action kind.
type AssistantOutcome struct {
	Message string `json:"message"`

	// Job is the updated job after a mutating action, nil otherwise.
	Job *models.Job `json:"job,omitempty"`

	// Jobs is the listing result of a list action, nil otherwise.
	Jobs []models.Job `json:"jobs,omitempty"`

	// CalendarMonth/CalendarYear anchor the calendar view when the action
	// switched it; both zero otherwise.
	CalendarMonth int `json:"calendarMonth,omitempty"`
	CalendarYear  int `json:"calendarYear,omitempty"`
}
