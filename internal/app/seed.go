package app

import (
	"github.com/example/commesse/internal/models"
	"github.com/example/commesse/internal/ports/secondary"
)

// SeedSnapshot is the fallback data set used until the first successful
// fetch, and as the starting content of a fresh local store. It mirrors a
// plausible small-shop roster so the dashboard is usable offline.
func SeedSnapshot() secondary.Snapshot {
	return secondary.Snapshot{
		Operators: []models.Operator{
			{ID: 1, Name: "Tirrito", Department: models.DeptWorkshop, PersonalColor: "Green", Email: "production@example.com"},
			{ID: 2, Name: "Meridda", Department: models.DeptWarehouse, PersonalColor: "Blue", Email: "warehouse@example.com"},
			{ID: 3, Name: "Cravero", Department: models.DeptTechnical, PersonalColor: "Violet", ShowEstimatedHours: true, Email: "technical@example.com"},
			{ID: 4, Name: "Rigano", Department: models.DeptSales, PersonalColor: "Orange", ShowEstimatedHours: true, Email: "sales@example.com"},
			{ID: 5, Name: "Merolla", Department: models.DeptAdmin, PersonalColor: "Gold", ShowEstimatedHours: true, Email: "info@example.com"},
		},
		Clients: []models.Client{
			{ID: "CL01", Name: "Ferrari SpA"},
			{ID: "CL02", Name: "Barilla"},
		},
		Jobs: []models.Job{
			{
				ID:                "C001",
				Code:              "JOB-2026-001",
				Client:            "Ferrari SpA",
				Category:          "Automotive",
				Priority:          5,
				RequestedDelivery: "2026-11-20",
				AssignedOperator:  "Tirrito",
				Department:        models.DeptWorkshop,
				Status:            models.StatusInProgress,
				CreatedOn:         "2026-10-01",
				TakenInCharge:     "2026-11-10",
				ExpectedFinish:    "2026-11-25",
				TechnicalNotes:    "Mind the frame tolerances.",
				EstimatedHours:    40,
				Completion:        models.CompletionOpen,
				Color:             "#ef4444",
			},
		},
	}
}
