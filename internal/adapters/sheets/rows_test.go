package sheets

import (
	"testing"

	"github.com/example/commesse/internal/models"
)

func TestJobRowRoundTrip(t *testing.T) {
	job := models.Job{
		ID:                "C001",
		Code:              "JOB-001",
		Client:            "Ferrari SpA",
		Category:          "Carpentry",
		Priority:          4,
		RequestedDelivery: "2026-04-01",
		AssignedOperator:  "Rossi",
		Department:        models.DeptWorkshop,
		Status:            models.StatusCutting,
		CreatedOn:         "2026-03-01",
		TakenInCharge:     "2026-03-02",
		ExpectedFinish:    "2026-03-20",
		MissingMaterials:  "gaskets",
		TechnicalNotes:    "check tolerances",
		EstimatedHours:    16,
		Completion:        models.CompletionOpen,
		Color:             "#ef4444",
		Locked:            true,
	}

	got := rowToJob(jobToRow(job))
	if got != job {
		t.Errorf("round trip = %+v, want %+v", got, job)
	}
}

func TestRowToJobShortRow(t *testing.T) {
	// The API drops trailing empty cells; a short row must not panic and
	// missing fields decode to zero values.
	got := rowToJob([]any{"C002", "JOB-002", "Lambo"})
	want := models.Job{ID: "C002", Code: "JOB-002", Client: "Lambo"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestRowToJobBadNumbers(t *testing.T) {
	row := jobToRow(models.Job{ID: "C003"})
	row[4] = "not a number"
	row[14] = ""

	got := rowToJob(row)
	if got.Priority != 0 || got.EstimatedHours != 0 {
		t.Errorf("unparseable numbers must decode to zero: %+v", got)
	}
}

func TestOperatorRowRoundTrip(t *testing.T) {
	op := models.Operator{
		ID:                 3,
		Name:               "Verdi",
		Department:         models.DeptSales,
		PersonalColor:      "#22c55e",
		ShowEstimatedHours: true,
		Email:              "verdi@example.com",
	}
	if got := rowToOperator(operatorToRow(op)); got != op {
		t.Errorf("round trip = %+v, want %+v", got, op)
	}

	// The boolean column is spelled TRUE/FALSE on the wire.
	row := operatorToRow(op)
	if row[5] != "TRUE" {
		t.Errorf("show-estimated-hours cell = %v", row[5])
	}
}

func TestClientAndLogRows(t *testing.T) {
	c := models.Client{ID: "CL01", Name: "Ferrari SpA", Email: "f@example.com", Phone: "+39 000"}
	if got := rowToClient(clientToRow(c)); got != c {
		t.Errorf("client round trip = %+v", got)
	}

	l := models.PhaseLog{
		ID: "L1756710000000", JobID: "C001", Phase: "Cutting",
		Start: "2026-03-01T08:00:00Z", PhaseState: "in progress", Actor: "Rossi",
	}
	if got := rowToLog(logToRow(l)); got != l {
		t.Errorf("log round trip = %+v", got)
	}
}

func TestHeaderWidthsMatchRanges(t *testing.T) {
	tests := []struct {
		name   string
		header []any
		want   int
	}{
		{"jobs", jobsHeader, 18},
		{"operators", operatorsHeader, 6},
		{"clients", clientsHeader, 4},
		{"logs", logsHeader, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.header) != tt.want {
				t.Errorf("header width = %d, want %d", len(tt.header), tt.want)
			}
		})
	}
}

func TestRowWidthsMatchHeaders(t *testing.T) {
	if got := len(jobToRow(models.Job{})); got != len(jobsHeader) {
		t.Errorf("job row width = %d", got)
	}
	if got := len(operatorToRow(models.Operator{})); got != len(operatorsHeader) {
		t.Errorf("operator row width = %d", got)
	}
	if got := len(clientToRow(models.Client{})); got != len(clientsHeader) {
		t.Errorf("client row width = %d", got)
	}
	if got := len(logToRow(models.PhaseLog{})); got != len(logsHeader) {
		t.Errorf("log row width = %d", got)
	}
}
