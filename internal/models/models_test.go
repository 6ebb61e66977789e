package models

import (
	"errors"
	"testing"
)

func TestJobValidate(t *testing.T) {
	valid := Job{
		ID:       "C001",
		Client:   "Ferrari SpA",
		Priority: 3,
		Status:   StatusQuote,
	}

	tests := []struct {
		name    string
		mutate  func(j *Job)
		wantErr bool
	}{
		{name: "valid job", mutate: func(j *Job) {}, wantErr: false},
		{name: "missing id", mutate: func(j *Job) { j.ID = "" }, wantErr: true},
		{name: "missing client", mutate: func(j *Job) { j.Client = "" }, wantErr: true},
		{name: "priority below range", mutate: func(j *Job) { j.Priority = 0 }, wantErr: true},
		{name: "priority above range", mutate: func(j *Job) { j.Priority = 6 }, wantErr: true},
		{name: "unknown status", mutate: func(j *Job) { j.Status = "Polishing" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := valid
			tt.mutate(&j)
			err := j.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("Validate() error %v is not ErrValidation", err)
			}
		})
	}
}

func TestJobCompleted(t *testing.T) {
	tests := []struct {
		name string
		job  Job
		want bool
	}{
		{name: "open in progress", job: Job{Status: StatusInProgress, Completion: CompletionOpen}, want: false},
		{name: "status completed", job: Job{Status: StatusCompleted, Completion: CompletionOpen}, want: true},
		{name: "flag completed", job: Job{Status: StatusCutting, Completion: CompletionCompleted}, want: true},
		{name: "both completed", job: Job{Status: StatusCompleted, Completion: CompletionCompleted}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.job.Completed(); got != tt.want {
				t.Errorf("Completed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusIndex(t *testing.T) {
	if got := StatusIndex(StatusQuote); got != 0 {
		t.Errorf("StatusIndex(Quote) = %d, want 0", got)
	}
	if got := StatusIndex(StatusCompleted); got != len(StatusOrder)-1 {
		t.Errorf("StatusIndex(Completed) = %d, want %d", got, len(StatusOrder)-1)
	}
	if got := StatusIndex("Polishing"); got != -1 {
		t.Errorf("StatusIndex(unknown) = %d, want -1", got)
	}
}

func TestOperatorValidate(t *testing.T) {
	op := Operator{ID: 1, Name: "Rossi", Department: DeptWorkshop}
	if err := op.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}

	op.Department = "Painting"
	if err := op.Validate(); err == nil {
		t.Fatal("Validate() expected error for unknown department")
	}
}

func TestAssignmentLabel(t *testing.T) {
	if got := AssignmentLabel("Rossi"); got != "assigned to Rossi" {
		t.Errorf("AssignmentLabel = %q", got)
	}
}
