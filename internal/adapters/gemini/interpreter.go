// Package gemini turns free-text operator commands into the structured
// action JSON the dispatcher consumes, using a Gemini model constrained
// to JSON-only output.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	genlang "google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/option"

	"github.com/example/commesse/internal/models"
	"github.com/example/commesse/internal/ports/secondary"
)

// Interpreter implements secondary.Interpreter over the Generative
// Language API.
type Interpreter struct {
	svc   *genlang.Service
	model string
}

// New builds an Interpreter for model (e.g. "models/gemini-2.5-flash")
// authenticating with apiKey.
func New(ctx context.Context, model, apiKey string) (*Interpreter, error) {
	svc, err := genlang.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to build generative language client: %w", err)
	}
	return &Interpreter{svc: svc, model: model}, nil
}

// contextJob is the reduced job shape shared with the model. Keeping the
// prompt small matters more than completeness here; the dispatcher
// re-reads the real job before acting.
type contextJob struct {
	ID               string `json:"id"`
	Code             string `json:"code"`
	Client           string `json:"client"`
	Status           string `json:"status"`
	AssignedOperator string `json:"assignedOperator"`
}

// Interpret sends text with the actor identity and visible jobs as
// context, and returns the model's raw JSON response bytes. Decoding and
// validation stay with the caller.
func (i *Interpreter) Interpret(ctx context.Context, text string, actor models.Operator, jobs []models.Job) ([]byte, error) {
	reduced := make([]contextJob, len(jobs))
	for n, j := range jobs {
		reduced[n] = contextJob{
			ID:               j.ID,
			Code:             j.Code,
			Client:           j.Client,
			Status:           string(j.Status),
			AssignedOperator: j.AssignedOperator,
		}
	}
	jobsJSON, err := json.Marshal(reduced)
	if err != nil {
		return nil, fmt.Errorf("failed to encode job context: %w", err)
	}

	instruction := systemInstruction(actor, string(jobsJSON))

	resp, err := i.svc.Models.GenerateContent(i.model, &genlang.GenerateContentRequest{
		SystemInstruction: &genlang.Content{
			Parts: []*genlang.Part{{Text: instruction}},
		},
		Contents: []*genlang.Content{
			{Role: "user", Parts: []*genlang.Part{{Text: text}}},
		},
		GenerationConfig: &genlang.GenerationConfig{
			ResponseMimeType: "application/json",
		},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("generate content failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("model returned no candidates")
	}
	return []byte(resp.Candidates[0].Content.Parts[0].Text), nil
}

func systemInstruction(actor models.Operator, jobsJSON string) string {
	return fmt.Sprintf(`You are the production management assistant.
Current user: %s (%s, email: %s).
Current jobs (reduced JSON): %s

Analyze the user's request and reply with NOTHING but a structured JSON object.
No prose outside the JSON.

Business rules:
1. Workshop/Warehouse operators may not set estimated hours.
2. Only Technical/Sales/Admin may see or change estimated hours.
3. "Take charge" assigns the current user to the job.

OUTPUT JSON SCHEMA:
{
  "action": "take_charge" | "update_job" | "get_calendar" | "list_jobs" | "add_note" | "unknown",
  "status": "ok" | "error",
  "message": "short message for the user",
  "payload": { ... }
}

Payload examples:
- list_jobs: { "department": "Workshop" }
- take_charge: { "jobId": "C001", "assignedOperator": "%s" }
- add_note: { "jobId": "C001", "note": "note text" }
- update_job: { "jobId": "C001", "status": "Assembly" }
- get_calendar: { "month": 11, "year": 2025 }

If the request is ambiguous, return action "unknown" with status "error"
and ask for clarification in the message.`,
		actor.Name, actor.Department, actor.Email, jobsJSON, actor.Name)
}

// Ensure Interpreter implements the interface
var _ secondary.Interpreter = (*Interpreter)(nil)
