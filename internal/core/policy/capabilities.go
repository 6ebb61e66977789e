package policy

import "github.com/example/commesse/internal/models"

// Capabilities is the explicit set of flags for one (operator, job) pair.
// The presentation layer uses it to decide which controls to render; the
// application layer consults the same flags before mutating, so a caller
// that bypasses the UI gains nothing.
type Capabilities struct {
	ManageData           bool // table view, job/client creation, settings
	Admin                bool // operator management, reset, delete, free assignment
	SeeEstimatedHours    bool
	EditEstimatedHours   bool
	EditPriority         bool
	EditDates            bool // requested delivery / expected finish override
	EditStatus           bool
	EditNotes            bool
	EditMissingMaterials bool // only meaningful while the job is in Missing Materials
	TakeCharge           bool // self-assignment of an unassigned job
	AssignAnyOperator    bool
	Reset                bool
	Delete               bool
}

// CapabilitiesFor evaluates every capability flag for op against job.
func CapabilitiesFor(op models.Operator, job models.Job) Capabilities {
	admin := IsAdmin(op.Department)
	visible := IsJobVisible(job, op)

	return Capabilities{
		ManageData:           CanManageData(op.Department),
		Admin:                admin,
		SeeEstimatedHours:    CanSeeEstimatedHours(op),
		EditEstimatedHours:   CanSeeEstimatedHours(op) && CanManageData(op.Department),
		EditPriority:         admin || op.Department == models.DeptSales,
		EditDates:            admin || op.Department == models.DeptSales,
		EditStatus:           visible,
		EditNotes:            visible,
		EditMissingMaterials: visible && job.Status == models.StatusMissingMaterials,
		// Take-charge is conditioned only on the job being unassigned.
		// Visibility stays a display concern: a Workshop operator takes
		// charge of a quote even though the list view hides quotes.
		TakeCharge:           job.AssignedOperator == "",
		AssignAnyOperator:    admin,
		Reset:                admin,
		Delete:               admin,
	}
}
