package action

import (
	"errors"
	"testing"

	"github.com/example/commesse/internal/models"
)

func TestDecodeTakeCharge(t *testing.T) {
	raw := []byte(`{"action":"take_charge","status":"ok","message":"done","payload":{"jobId":"C001"}}`)
	act, err := Decode(raw)
	if err != nil {
		t.Fatal(err)
	}
	if act.Kind != KindTakeCharge {
		t.Errorf("kind = %s", act.Kind)
	}
	if act.TakeCharge == nil || act.TakeCharge.JobID != "C001" {
		t.Errorf("payload = %+v", act.TakeCharge)
	}
}

func TestDecodeUpdateJob(t *testing.T) {
	raw := []byte(`{"action":"update_job","status":"ok","message":"","payload":{"jobId":"C001","status":"Assembly","priority":4}}`)
	act, err := Decode(raw)
	if err != nil {
		t.Fatal(err)
	}
	if act.Kind != KindUpdateJob {
		t.Fatalf("kind = %s", act.Kind)
	}
	p := act.Update
	if p.JobID != "C001" {
		t.Errorf("jobId = %q", p.JobID)
	}
	if p.Status == nil || *p.Status != models.StatusAssembly {
		t.Errorf("status = %v", p.Status)
	}
	if p.Priority == nil || *p.Priority != 4 {
		t.Errorf("priority = %v", p.Priority)
	}
	if p.AssignedOperator != nil {
		t.Error("absent fields must stay nil")
	}
}

func TestDecodeGetCalendar(t *testing.T) {
	raw := []byte(`{"action":"get_calendar","status":"ok","message":"","payload":{"month":11,"year":2026}}`)
	act, err := Decode(raw)
	if err != nil {
		t.Fatal(err)
	}
	if act.Kind != KindGetCalendar || act.Calendar.Month != 11 || act.Calendar.Year != 2026 {
		t.Errorf("act = %+v calendar = %+v", act, act.Calendar)
	}
}

func TestDecodeErrorStatusPassesThrough(t *testing.T) {
	raw := []byte(`{"action":"update_job","status":"error","message":"job not found"}`)
	act, err := Decode(raw)
	if err != nil {
		t.Fatal(err)
	}
	if act.Kind != KindUnknown {
		t.Errorf("error envelope must stay inert, kind = %s", act.Kind)
	}
	if act.Status != StatusError || act.Message != "job not found" {
		t.Errorf("act = %+v", act)
	}
}

func TestDecodeMissingRequiredField(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"take_charge without jobId", `{"action":"take_charge","status":"ok","payload":{}}`},
		{"update_job without payload", `{"action":"update_job","status":"ok"}`},
		{"get_calendar month out of range", `{"action":"get_calendar","status":"ok","payload":{"month":13,"year":2026}}`},
		{"get_calendar without year", `{"action":"get_calendar","status":"ok","payload":{"month":5}}`},
		{"add_note without jobId", `{"action":"add_note","status":"ok","payload":{"note":"x"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.raw))
			if !errors.Is(err, ErrPayload) {
				t.Errorf("err = %v, want ErrPayload", err)
			}
		})
	}
}

func TestDecodeFailsClosed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"malformed json", `this is not json`},
		{"empty", ``},
		{"wrong shape", `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act, err := Decode([]byte(tt.raw))
			if err != nil {
				t.Fatalf("malformed input must not error out: %v", err)
			}
			if act.Kind != KindUnknown || act.Status != StatusError {
				t.Errorf("act = %+v, want inert error variant", act)
			}
		})
	}
}

func TestDecodeUnrecognizedKindStaysInert(t *testing.T) {
	raw := []byte(`{"action":"delete_everything","status":"ok","message":"sure"}`)
	act, err := Decode(raw)
	if err != nil {
		t.Fatal(err)
	}
	if act.Kind != KindUnknown {
		t.Errorf("kind = %s", act.Kind)
	}
}

func TestDecodeStripsMarkdownFences(t *testing.T) {
	raw := []byte("```json\n{\"action\":\"list_jobs\",\"status\":\"ok\",\"message\":\"\"}\n```")
	act, err := Decode(raw)
	if err != nil {
		t.Fatal(err)
	}
	if act.Kind != KindListJobs {
		t.Errorf("kind = %s", act.Kind)
	}
}
