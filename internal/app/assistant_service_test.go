package app

import (
	"context"
	"testing"

	corejob "github.com/example/commesse/internal/core/job"
	"github.com/example/commesse/internal/models"
)

func newAssistantFixture(response string) (*fixture, *fakeInterpreter, *AssistantServiceImpl) {
	fx := newFixture(testSnapshot())
	interp := &fakeInterpreter{response: []byte(response)}
	svc := NewAssistantService(interp, fx.jobs, fx.store, testLogger())
	return fx, interp, svc
}

func TestHandleCommandPassesReducedJobList(t *testing.T) {
	fx, interp, svc := newAssistantFixture(`{"action":"list_jobs","status":"ok","message":"here"}`)

	_, err := svc.HandleCommand(context.Background(), fx.operator("Neri"), "what's open?")
	if err != nil {
		t.Fatal(err)
	}

	if interp.gotText != "what's open?" {
		t.Errorf("text = %q", interp.gotText)
	}
	if len(interp.gotJobs) != 2 {
		t.Fatalf("jobs = %d", len(interp.gotJobs))
	}
	for _, j := range interp.gotJobs {
		if j.TechnicalNotes != "" || j.EstimatedHours != 0 || j.Priority != 0 {
			t.Errorf("job %s carries more than the reduced fields: %+v", j.ID, j)
		}
	}
}

func TestHandleCommandVisibilityLimitsContext(t *testing.T) {
	fx, interp, svc := newAssistantFixture(`{"action":"list_jobs","status":"ok","message":"here"}`)

	// Rossi cannot see the quote C001, so the interpreter must not either.
	if _, err := svc.HandleCommand(context.Background(), fx.operator("Rossi"), "list"); err != nil {
		t.Fatal(err)
	}
	if len(interp.gotJobs) != 1 || interp.gotJobs[0].ID != "C002" {
		t.Errorf("jobs = %v", interp.gotJobs)
	}
}

func TestHandleCommandErrorStatusIsInert(t *testing.T) {
	fx, _, svc := newAssistantFixture(`{"action":"update_job","status":"error","message":"which job did you mean?"}`)

	out, err := svc.HandleCommand(context.Background(), fx.operator("Neri"), "update it")
	if err != nil {
		t.Fatal(err)
	}
	if out.Message != "which job did you mean?" {
		t.Errorf("message = %q", out.Message)
	}
	if out.Job != nil || out.Jobs != nil {
		t.Error("error status must not carry results")
	}
}

func TestHandleCommandBadPayloadIsInert(t *testing.T) {
	fx, _, svc := newAssistantFixture(`{"action":"update_job","status":"ok","message":"ok","payload":{"priority":5}}`)

	logsBefore := len(fx.store.View().Logs)
	out, err := svc.HandleCommand(context.Background(), fx.operator("Neri"), "bump priority")
	if err != nil {
		t.Fatal(err)
	}
	if out.Message == "" {
		t.Error("payload failure must surface a message")
	}
	if len(fx.store.View().Logs) != logsBefore {
		t.Error("state changed on a rejected payload")
	}
}

func TestHandleCommandUnreadableResponse(t *testing.T) {
	fx, _, svc := newAssistantFixture(`not json at all`)

	out, err := svc.HandleCommand(context.Background(), fx.operator("Neri"), "hello")
	if err != nil {
		t.Fatal(err)
	}
	if out.Message == "" {
		t.Error("unreadable response must surface a message")
	}
}

func TestHandleCommandTakeCharge(t *testing.T) {
	fx, _, svc := newAssistantFixture(`{"action":"take_charge","status":"ok","message":"done","payload":{"jobId":"C001"}}`)

	out, err := svc.HandleCommand(context.Background(), fx.operator("Neri"), "I'll take C001")
	if err != nil {
		t.Fatal(err)
	}
	if out.Job == nil || out.Job.AssignedOperator != "Neri" || out.Job.Status != models.StatusInProgress {
		t.Errorf("job = %+v", out.Job)
	}
}

func TestHandleCommandTakeChargeForOther(t *testing.T) {
	// Naming someone else still forces In Progress; the job must not be
	// left in its previous status.
	fx, _, svc := newAssistantFixture(`{"action":"take_charge","status":"ok","message":"done","payload":{"jobId":"C001","assignedOperator":"Rossi"}}`)

	out, err := svc.HandleCommand(context.Background(), fx.operator("Neri"), "give C001 to Rossi")
	if err != nil {
		t.Fatal(err)
	}
	if out.Job == nil || out.Job.AssignedOperator != "Rossi" || out.Job.Status != models.StatusInProgress {
		t.Errorf("job = %+v", out.Job)
	}
}

func TestHandleCommandTakeChargeHonorsPayloadDate(t *testing.T) {
	fx, _, svc := newAssistantFixture(`{"action":"take_charge","status":"ok","message":"done","payload":{"jobId":"C001","takenInCharge":"2026-02-15"}}`)

	out, err := svc.HandleCommand(context.Background(), fx.operator("Neri"), "I took C001 a while back")
	if err != nil {
		t.Fatal(err)
	}
	if out.Job == nil || out.Job.TakenInCharge != "2026-02-15" {
		t.Errorf("job = %+v", out.Job)
	}
}

func TestHandleCommandUpdateJobEnforcesPolicy(t *testing.T) {
	fx, _, svc := newAssistantFixture(`{"action":"update_job","status":"ok","message":"done","payload":{"jobId":"C002","priority":5}}`)

	// The interpreter cannot launder an edit the operator may not make.
	if _, err := svc.HandleCommand(context.Background(), fx.operator("Rossi"), "priority 5 on C002"); err == nil {
		t.Fatal("workshop priority edit slipped through the assistant")
	}

	out, err := svc.HandleCommand(context.Background(), fx.operator("Verdi"), "priority 5 on C002")
	if err != nil {
		t.Fatal(err)
	}
	if out.Job == nil || out.Job.Priority != 5 {
		t.Errorf("job = %+v", out.Job)
	}
}

func TestHandleCommandAddNote(t *testing.T) {
	fx, _, svc := newAssistantFixture(`{"action":"add_note","status":"ok","message":"noted","payload":{"jobId":"C002","note":"check tolerances"}}`)

	out, err := svc.HandleCommand(context.Background(), fx.operator("Rossi"), "note on C002")
	if err != nil {
		t.Fatal(err)
	}
	if out.Job == nil || out.Job.TechnicalNotes != "check tolerances" {
		t.Errorf("job = %+v", out.Job)
	}
}

func TestHandleCommandAddNoteAppends(t *testing.T) {
	fx, _, svc := newAssistantFixture(`{"action":"add_note","status":"ok","message":"noted","payload":{"jobId":"C002","note":"second note"}}`)
	rossi := fx.operator("Rossi")

	existing := "first note"
	if _, err := fx.jobs.UpdateJob(context.Background(), rossi, "C002", corejob.Update{TechnicalNotes: &existing}); err != nil {
		t.Fatal(err)
	}

	out, err := svc.HandleCommand(context.Background(), rossi, "note on C002")
	if err != nil {
		t.Fatal(err)
	}
	if out.Job == nil || out.Job.TechnicalNotes != "first note\nsecond note" {
		t.Errorf("notes = %+v", out.Job)
	}
}

func TestHandleCommandCalendar(t *testing.T) {
	fx, _, svc := newAssistantFixture(`{"action":"get_calendar","status":"ok","message":"march","payload":{"month":3,"year":2026}}`)

	out, err := svc.HandleCommand(context.Background(), fx.operator("Neri"), "show me march")
	if err != nil {
		t.Fatal(err)
	}
	if out.CalendarMonth != 3 || out.CalendarYear != 2026 {
		t.Errorf("outcome = %+v", out)
	}
}

func TestHandleCommandListWithFilter(t *testing.T) {
	fx, _, svc := newAssistantFixture(`{"action":"list_jobs","status":"ok","message":"cutting","payload":{"status":"Cutting"}}`)

	out, err := svc.HandleCommand(context.Background(), fx.operator("Neri"), "jobs in cutting")
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Jobs) != 1 || out.Jobs[0].ID != "C002" {
		t.Errorf("jobs = %v", out.Jobs)
	}
}

func TestHandleCommandUnknownKindInert(t *testing.T) {
	fx, _, svc := newAssistantFixture(`{"action":"launch_rockets","status":"ok","message":"sure"}`)

	logsBefore := len(fx.store.View().Logs)
	out, err := svc.HandleCommand(context.Background(), fx.operator("Neri"), "do something weird")
	if err != nil {
		t.Fatal(err)
	}
	if out.Message != "sure" {
		t.Errorf("message = %q", out.Message)
	}
	if len(fx.store.View().Logs) != logsBefore {
		t.Error("unrecognized action mutated state")
	}
}

func TestHandleCommandNilInterpreter(t *testing.T) {
	fx := newFixture(testSnapshot())
	svc := NewAssistantService(nil, fx.jobs, fx.store, testLogger())

	out, err := svc.HandleCommand(context.Background(), fx.operator("Neri"), "hello")
	if err != nil {
		t.Fatal(err)
	}
	if out.Message == "" {
		t.Error("unconfigured assistant must explain itself")
	}
}
