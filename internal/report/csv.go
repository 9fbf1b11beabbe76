// Package report renders expense collections for download: CSV tables and
// PNG charts.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/spendwise/expense-api/internal/models"
)

// Header is the first row of every export.
var Header = []string{"Date", "Category", "Amount", "Payment Mode", "Note"}

// ExportCSV renders expenses in the given order. Every field is quoted and
// embedded quotes are doubled. CRLF inside a field is written as LF, which is
// what CSV readers return for it anyway. Dates are ISO 8601 calendar dates;
// amounts carry two decimals.
func ExportCSV(expenses []models.Expense) []byte {
	var buf bytes.Buffer
	writeRow(&buf, Header)
	for i := range expenses {
		e := &expenses[i]
		writeRow(&buf, []string{
			e.OccurredAt().Format(models.DateLayout),
			e.Category,
			e.Amount.StringFixed(2),
			string(e.PaymentMode),
			e.Note,
		})
	}
	return buf.Bytes()
}

func writeRow(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(normalizeNewlines(f), `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}

// normalizeNewlines folds CRLF to LF until none is left, so "\r\r\n" cannot
// turn back into a CRLF.
func normalizeNewlines(s string) string {
	for strings.Contains(s, "\r\n") {
		s = strings.ReplaceAll(s, "\r\n", "\n")
	}
	return s
}

// Filename returns the download name of a report generated at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("expense-report-%s.csv", now.Format(models.DateLayout))
}
