package policy

import (
	"testing"

	"github.com/example/commesse/internal/models"
)

func TestCanManageData(t *testing.T) {
	tests := []struct {
		dept models.Department
		want bool
	}{
		{models.DeptAdmin, true},
		{models.DeptTechnical, true},
		{models.DeptSales, true},
		{models.DeptWorkshop, false},
		{models.DeptWarehouse, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.dept), func(t *testing.T) {
			if got := CanManageData(tt.dept); got != tt.want {
				t.Errorf("CanManageData(%s) = %v, want %v", tt.dept, got, tt.want)
			}
		})
	}
}

func TestIsJobVisible(t *testing.T) {
	workshop := models.Operator{ID: 1, Name: "Rossi", Department: models.DeptWorkshop}
	warehouse := models.Operator{ID: 2, Name: "Bianchi", Department: models.DeptWarehouse}
	sales := models.Operator{ID: 3, Name: "Verdi", Department: models.DeptSales}

	tests := []struct {
		name string
		job  models.Job
		op   models.Operator
		want bool
	}{
		{
			name: "workshop never sees quotes even when assigned",
			job:  models.Job{Status: models.StatusQuote, AssignedOperator: "Rossi", Completion: models.CompletionOpen},
			op:   workshop,
			want: false,
		},
		{
			name: "workshop never sees completed flag even when assigned",
			job:  models.Job{Status: models.StatusCutting, AssignedOperator: "Rossi", Completion: models.CompletionCompleted},
			op:   workshop,
			want: false,
		},
		{
			name: "workshop never sees completed status",
			job:  models.Job{Status: models.StatusCompleted, Department: models.DeptWorkshop, Completion: models.CompletionOpen},
			op:   workshop,
			want: false,
		},
		{
			name: "sales sees quotes",
			job:  models.Job{Status: models.StatusQuote, Completion: models.CompletionOpen},
			op:   sales,
			want: true,
		},
		{
			name: "sales sees completed",
			job:  models.Job{Status: models.StatusCompleted, Completion: models.CompletionCompleted},
			op:   sales,
			want: true,
		},
		{
			name: "workshop sees cutting job of another department unassigned",
			job:  models.Job{Status: models.StatusCutting, Department: models.DeptWarehouse, Completion: models.CompletionOpen},
			op:   workshop,
			want: true,
		},
		{
			name: "warehouse sees own-department job in any visible state",
			job:  models.Job{Status: models.StatusMissingMaterials, Department: models.DeptWarehouse, Completion: models.CompletionOpen},
			op:   warehouse,
			want: true,
		},
		{
			name: "workshop sees job assigned to self",
			job:  models.Job{Status: models.StatusMissingMaterials, Department: models.DeptWarehouse, AssignedOperator: "Rossi", Completion: models.CompletionOpen},
			op:   workshop,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsJobVisible(tt.job, tt.op); got != tt.want {
				t.Errorf("IsJobVisible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVisibleJobs(t *testing.T) {
	workshop := models.Operator{ID: 1, Name: "Rossi", Department: models.DeptWorkshop}
	jobs := []models.Job{
		{ID: "C001", Status: models.StatusQuote, Completion: models.CompletionOpen},
		{ID: "C002", Status: models.StatusCutting, Completion: models.CompletionOpen},
		{ID: "C003", Status: models.StatusCompleted, Completion: models.CompletionOpen},
	}

	got := VisibleJobs(jobs, workshop)
	if len(got) != 1 || got[0].ID != "C002" {
		t.Errorf("VisibleJobs() = %v, want only C002", got)
	}
}
