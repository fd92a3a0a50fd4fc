package export

import (
	"bytes"
	"io"
	"strconv"
	"strings"
)

type csvRecord []string

// quoted wraps a string field in double quotes, doubling embedded quotes.
func quoted(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func writeCSV(w io.Writer, header []string, records []csvRecord) error {
	if len(records) == 0 {
		return ErrEmptyExportSet
	}
	var buf bytes.Buffer
	buf.WriteString(strings.Join(header, ","))
	buf.WriteString("\n")
	for _, record := range records {
		buf.WriteString(strings.Join(record, ","))
		buf.WriteString("\n")
	}
	_, err := buf.WriteTo(w)
	return err
}

func WriteRosterCSV(w io.Writer, rows []RosterRow) error {
	records := make([]csvRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, csvRecord{
			quoted(row.ID),
			quoted(row.Name),
			quoted(row.Email),
			quoted(row.Role),
			row.Salary.String(),
			quoted(row.JoinedDate.Format(dateLayout)),
		})
	}
	return writeCSV(w, rosterHeader, records)
}

func WritePayslipCSV(w io.Writer, rows []PayslipRow) error {
	records := make([]csvRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, csvRecord{quoted(row.Component), row.Amount.String()})
	}
	return writeCSV(w, payslipHeader, records)
}

func WriteLedgerCSV(w io.Writer, rows []LedgerRow) error {
	records := make([]csvRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, csvRecord{
			quoted(row.Month),
			strconv.Itoa(row.Year),
			row.Amount.String(),
			quoted(row.Status),
			quoted(row.PaymentDate.Format(dateLayout)),
		})
	}
	return writeCSV(w, ledgerHeader, records)
}
