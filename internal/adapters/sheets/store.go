// Package sheets is the remote SheetStore backed by a Google Sheets
// spreadsheet, the system of record shared with other tools.
package sheets

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/example/commesse/internal/ports/secondary"
)

// Store implements secondary.SheetStore over the Sheets v4 API.
type Store struct {
	svc           *sheetsv4.Service
	spreadsheetID string
}

// New builds a Store for spreadsheetID, authenticating with the service
// account credentials file at credentialsPath.
func New(ctx context.Context, spreadsheetID, credentialsPath string) (*Store, error) {
	svc, err := sheetsv4.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build sheets client: %w", err)
	}
	return &Store{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Fetch reads the four data ranges in one batch call.
func (s *Store) Fetch(ctx context.Context) (secondary.Snapshot, error) {
	resp, err := s.svc.Spreadsheets.Values.
		BatchGet(s.spreadsheetID).
		Ranges(jobsRange, operatorsRange, clientsRange, logsRange).
		Context(ctx).
		Do()
	if err != nil {
		return secondary.Snapshot{}, mapErr("fetch", err)
	}
	if len(resp.ValueRanges) != 4 {
		return secondary.Snapshot{}, fmt.Errorf("fetch returned %d ranges, want 4", len(resp.ValueRanges))
	}

	var snap secondary.Snapshot
	for _, row := range resp.ValueRanges[0].Values {
		snap.Jobs = append(snap.Jobs, rowToJob(row))
	}
	for _, row := range resp.ValueRanges[1].Values {
		snap.Operators = append(snap.Operators, rowToOperator(row))
	}
	for _, row := range resp.ValueRanges[2].Values {
		snap.Clients = append(snap.Clients, rowToClient(row))
	}
	for _, row := range resp.ValueRanges[3].Values {
		snap.Logs = append(snap.Logs, rowToLog(row))
	}
	return snap, nil
}

// Push clears the four data ranges and rewrites them from snap. The
// clear pass prevents ghost rows when the new data is shorter than what
// the sheet currently holds.
func (s *Store) Push(ctx context.Context, snap secondary.Snapshot) error {
	_, err := s.svc.Spreadsheets.Values.
		BatchClear(s.spreadsheetID, &sheetsv4.BatchClearValuesRequest{
			Ranges: []string{jobsRange, operatorsRange, clientsRange, logsRange},
		}).
		Context(ctx).
		Do()
	if err != nil {
		return mapErr("clear", err)
	}

	jobRows := make([][]any, len(snap.Jobs))
	for i, j := range snap.Jobs {
		jobRows[i] = jobToRow(j)
	}
	opRows := make([][]any, len(snap.Operators))
	for i, o := range snap.Operators {
		opRows[i] = operatorToRow(o)
	}
	clientRows := make([][]any, len(snap.Clients))
	for i, c := range snap.Clients {
		clientRows[i] = clientToRow(c)
	}
	logRows := make([][]any, len(snap.Logs))
	for i, l := range snap.Logs {
		logRows[i] = logToRow(l)
	}

	_, err = s.svc.Spreadsheets.Values.
		BatchUpdate(s.spreadsheetID, &sheetsv4.BatchUpdateValuesRequest{
			ValueInputOption: "USER_ENTERED",
			Data: []*sheetsv4.ValueRange{
				{Range: jobsRange, Values: jobRows},
				{Range: operatorsRange, Values: opRows},
				{Range: clientsRange, Values: clientRows},
				{Range: logsRange, Values: logRows},
			},
		}).
		Context(ctx).
		Do()
	if err != nil {
		return mapErr("push", err)
	}
	return nil
}

// WriteHeaders writes the four header rows. One-time setup for a fresh
// spreadsheet.
func (s *Store) WriteHeaders(ctx context.Context) error {
	_, err := s.svc.Spreadsheets.Values.
		BatchUpdate(s.spreadsheetID, &sheetsv4.BatchUpdateValuesRequest{
			ValueInputOption: "USER_ENTERED",
			Data: []*sheetsv4.ValueRange{
				{Range: jobsHeaderRange, Values: [][]any{jobsHeader}},
				{Range: operatorsHeaderRange, Values: [][]any{operatorsHeader}},
				{Range: clientsHeaderRange, Values: [][]any{clientsHeader}},
				{Range: logsHeaderRange, Values: [][]any{logsHeader}},
			},
		}).
		Context(ctx).
		Do()
	if err != nil {
		return mapErr("write headers", err)
	}
	return nil
}

// mapErr translates expired or revoked credentials into ErrAuthExpired
// so the sync layer can drop to disconnected mode instead of retrying.
func mapErr(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == 401 || apiErr.Code == 403 {
			return fmt.Errorf("%s: %w", op, secondary.ErrAuthExpired)
		}
	}
	return fmt.Errorf("%s failed: %w", op, err)
}

// Ensure Store implements the interface
var _ secondary.SheetStore = (*Store)(nil)
