package export

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const rosterSheet = "Employees"

// WriteRosterXLSX writes the roster as a single-sheet workbook with the same
// columns as the CSV export.
func WriteRosterXLSX(w io.Writer, rows []RosterRow) error {
	if len(rows) == 0 {
		return ErrEmptyExportSet
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), rosterSheet); err != nil {
		return err
	}
	header := make([]any, 0, len(rosterHeader))
	for _, h := range rosterHeader {
		header = append(header, h)
	}
	if err := f.SetSheetRow(rosterSheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		salary, _ := row.Salary.Float64()
		values := []any{row.ID, row.Name, row.Email, row.Role, salary, row.JoinedDate.Format(dateLayout)}
		if err := f.SetSheetRow(rosterSheet, cellRef, &values); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(rosterSheet, "A", "F", 22); err != nil {
		return err
	}
	return f.Write(w)
}
