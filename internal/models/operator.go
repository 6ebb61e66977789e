// Package models contains domain types for the production tracking system.
// Persistence lives behind the SheetStore port in ports/secondary.
package models

// Department is an operator's organizational unit. It doubles as the
// routing target on a job (RepartoResponsabile in the sheet).
type Department string

const (
	DeptWorkshop  Department = "Workshop"
	DeptWarehouse Department = "Warehouse"
	DeptTechnical Department = "Technical"
	DeptSales     Department = "Sales"
	DeptAdmin     Department = "Admin"
)

// Departments lists every valid department.
var Departments = []Department{DeptWorkshop, DeptWarehouse, DeptTechnical, DeptSales, DeptAdmin}

// ValidDepartment reports whether d is one of the known departments.
func ValidDepartment(d Department) bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}

// Operator represents a person who logs into the dashboard.
// Jobs reference operators by Name, not ID; renames are handled by the
// directory service, which rewrites job references in the same commit.
type Operator struct {
	ID                 int        `json:"id"`
	Name               string     `json:"name"`
	Department         Department `json:"department"`
	PersonalColor      string     `json:"personalColor"`      // cosmetic tag, free text
	ShowEstimatedHours bool       `json:"showEstimatedHours"` // per-operator flag, not derived from role
	Email              string     `json:"email"`
}

// Validate checks structural validity on creation or edit.
func (o Operator) Validate() error {
	if o.ID <= 0 {
		return fieldError("operator id must be positive")
	}
	if o.Name == "" {
		return fieldError("operator name is required")
	}
	if !ValidDepartment(o.Department) {
		return fieldError("unknown department: " + string(o.Department))
	}
	return nil
}
