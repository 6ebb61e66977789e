// Package policy contains the pure visibility and authorization rules.
// This is part of the functional core: no I/O, only predicates over
// (operator, job) pairs. Every caller - HTTP handlers, CLI commands and
// the assistant dispatcher - consults this package rather than encoding
// role checks inline.
package policy

import "github.com/example/commesse/internal/models"

// CanManageData reports whether the role reaches the table view, job and
// client creation, and the settings surface.
func CanManageData(dept models.Department) bool {
	switch dept {
	case models.DeptAdmin, models.DeptTechnical, models.DeptSales:
		return true
	}
	return false
}

// IsAdmin reports whether the role may manage operators, override
// priority and dates, reset jobs, and assign any operator to any job.
func IsAdmin(dept models.Department) bool {
	return dept == models.DeptAdmin
}

// CanSeeEstimatedHours reports whether estimated-hours figures are shown
// to this operator. The flag is configured per operator, not derived from
// the role, though by convention only Technical/Sales/Admin have it set.
func CanSeeEstimatedHours(op models.Operator) bool {
	return op.ShowEstimatedHours
}

// activeProductionStatuses are the in-flight phases every production
// operator can see system-wide, regardless of department or assignment.
// This intentionally maximizes cross-coverage on the shop floor.
var activeProductionStatuses = map[models.Status]bool{
	models.StatusInProgress:       true,
	models.StatusCutting:          true,
	models.StatusProcessing:       true,
	models.StatusAssembly:         true,
	models.StatusShipping:         true,
	models.StatusPickup:           true,
	models.StatusMissingMaterials: true,
}

// IsActiveProductionStatus reports whether s is an in-flight production phase.
func IsActiveProductionStatus(s models.Status) bool {
	return activeProductionStatuses[s]
}

// IsJobVisible decides whether op may see job at all.
//
// Admin/Technical/Sales see everything. Workshop/Warehouse never see
// quotes or finished jobs (either completion indicator), and otherwise see
// a job when it belongs to their department, is assigned to them, or sits
// in any active production phase.
func IsJobVisible(job models.Job, op models.Operator) bool {
	if CanManageData(op.Department) {
		return true
	}

	if job.Status == models.StatusQuote {
		return false
	}
	if job.Completed() {
		return false
	}

	if job.Department == op.Department {
		return true
	}
	if job.AssignedOperator != "" && job.AssignedOperator == op.Name {
		return true
	}
	return IsActiveProductionStatus(job.Status)
}

// VisibleJobs filters jobs down to those op may see, preserving order.
func VisibleJobs(jobs []models.Job, op models.Operator) []models.Job {
	out := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if IsJobVisible(j, op) {
			out = append(out, j)
		}
	}
	return out
}
