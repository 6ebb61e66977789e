package sheets

import (
	"strconv"

	"github.com/example/commesse/internal/models"
)

// The four tabs and their data ranges. Row 1 holds headers, data starts
// at row 2; the column spans match the row codecs below.
const (
	jobsRange      = "Commesse!A2:R"
	operatorsRange = "Operatori!A2:F"
	clientsRange   = "Clienti!A2:D"
	logsRange      = "Logs!A2:H"

	jobsHeaderRange      = "Commesse!A1:R1"
	operatorsHeaderRange = "Operatori!A1:F1"
	clientsHeaderRange   = "Clienti!A1:D1"
	logsHeaderRange      = "Logs!A1:H1"
)

var (
	jobsHeader = []any{
		"ID", "Code", "Client", "Category", "Priority", "RequestedDelivery",
		"AssignedOperator", "Department", "Status", "CreatedOn", "TakenInCharge",
		"ExpectedFinish", "MissingMaterials", "TechnicalNotes", "EstimatedHours",
		"Completion", "Color", "Locked",
	}
	operatorsHeader = []any{"ID", "Name", "Department", "Email", "PersonalColor", "ShowEstimatedHours"}
	clientsHeader   = []any{"ID", "Name", "Email", "Phone"}
	logsHeader      = []any{"ID", "JobID", "Phase", "Start", "End", "PhaseState", "Actor", "Notes"}
)

// cell reads column i of a row, tolerating short rows. The API omits
// trailing empty cells, so a row may legitimately be shorter than its
// column span.
func cell(row []any, i int) string {
	if i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return s
}

func cellInt(row []any, i int) int {
	n, _ := strconv.Atoi(cell(row, i))
	return n
}

func cellBool(row []any, i int) bool {
	return cell(row, i) == "TRUE"
}

func boolCell(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func rowToJob(row []any) models.Job {
	return models.Job{
		ID:                cell(row, 0),
		Code:              cell(row, 1),
		Client:            cell(row, 2),
		Category:          cell(row, 3),
		Priority:          cellInt(row, 4),
		RequestedDelivery: cell(row, 5),
		AssignedOperator:  cell(row, 6),
		Department:        models.Department(cell(row, 7)),
		Status:            models.Status(cell(row, 8)),
		CreatedOn:         cell(row, 9),
		TakenInCharge:     cell(row, 10),
		ExpectedFinish:    cell(row, 11),
		MissingMaterials:  cell(row, 12),
		TechnicalNotes:    cell(row, 13),
		EstimatedHours:    cellInt(row, 14),
		Completion:        models.Completion(cell(row, 15)),
		Color:             cell(row, 16),
		Locked:            cellBool(row, 17),
	}
}

func jobToRow(j models.Job) []any {
	return []any{
		j.ID, j.Code, j.Client, j.Category, strconv.Itoa(j.Priority),
		j.RequestedDelivery, j.AssignedOperator, string(j.Department),
		string(j.Status), j.CreatedOn, j.TakenInCharge, j.ExpectedFinish,
		j.MissingMaterials, j.TechnicalNotes, strconv.Itoa(j.EstimatedHours),
		string(j.Completion), j.Color, boolCell(j.Locked),
	}
}

func rowToOperator(row []any) models.Operator {
	return models.Operator{
		ID:                 cellInt(row, 0),
		Name:               cell(row, 1),
		Department:         models.Department(cell(row, 2)),
		Email:              cell(row, 3),
		PersonalColor:      cell(row, 4),
		ShowEstimatedHours: cellBool(row, 5),
	}
}

func operatorToRow(o models.Operator) []any {
	return []any{
		strconv.Itoa(o.ID), o.Name, string(o.Department),
		o.Email, o.PersonalColor, boolCell(o.ShowEstimatedHours),
	}
}

func rowToClient(row []any) models.Client {
	return models.Client{
		ID:    cell(row, 0),
		Name:  cell(row, 1),
		Email: cell(row, 2),
		Phone: cell(row, 3),
	}
}

func clientToRow(c models.Client) []any {
	return []any{c.ID, c.Name, c.Email, c.Phone}
}

func rowToLog(row []any) models.PhaseLog {
	return models.PhaseLog{
		ID:         cell(row, 0),
		JobID:      cell(row, 1),
		Phase:      cell(row, 2),
		Start:      cell(row, 3),
		End:        cell(row, 4),
		PhaseState: cell(row, 5),
		Actor:      cell(row, 6),
		Notes:      cell(row, 7),
	}
}

func logToRow(l models.PhaseLog) []any {
	return []any{l.ID, l.JobID, l.Phase, l.Start, l.End, l.PhaseState, l.Actor, l.Notes}
}
