package report

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/spendwise/expense-api/internal/models"
)

func parse(t require.TestingT, data []byte) [][]string {
	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportCSV(t *testing.T) {
	t.Parallel()

	t.Run("writes header and rows in caller order", func(t *testing.T) {
		t.Parallel()
		expenses := []models.Expense{
			{
				Amount:      decimal.RequireFromString("10.5"),
				Category:    "Food",
				Date:        models.MustDate("2024-03-15"),
				Note:        "lunch",
				PaymentMode: models.PaymentCard,
			},
			{
				Amount:      decimal.RequireFromString("3"),
				Category:    "Transport",
				Date:        models.MustDate("2024-03-01"),
				PaymentMode: models.PaymentCash,
			},
		}

		records := parse(t, ExportCSV(expenses))
		require.Equal(t, [][]string{
			{"Date", "Category", "Amount", "Payment Mode", "Note"},
			{"2024-03-15", "Food", "10.50", "Card", "lunch"},
			{"2024-03-01", "Transport", "3.00", "Cash", ""},
		}, records)
	})

	t.Run("quotes every field", func(t *testing.T) {
		t.Parallel()
		out := string(ExportCSV(nil))
		require.Equal(t, "\"Date\",\"Category\",\"Amount\",\"Payment Mode\",\"Note\"\r\n", out)
	})

	t.Run("note with comma and quote survives", func(t *testing.T) {
		t.Parallel()
		note := `dinner, "fancy" place`
		records := parse(t, ExportCSV([]models.Expense{{
			Amount:      decimal.RequireFromString("42"),
			Category:    "Food",
			Date:        models.MustDate("2024-01-02"),
			Note:        note,
			PaymentMode: models.PaymentUPI,
		}}))
		require.Len(t, records, 2)
		require.Equal(t, note, records[1][4])
	})

	t.Run("CRLF in a note comes back as LF", func(t *testing.T) {
		t.Parallel()
		records := parse(t, ExportCSV([]models.Expense{{
			Amount:   decimal.RequireFromString("1"),
			Category: "Food",
			Date:     models.MustDate("2024-01-02"),
			Note:     "line one\r\nline two\r\r\nthree\rfour",
		}}))
		require.Equal(t, "line one\nline two\nthree\rfour", records[1][4])
	})

	t.Run("undated expense uses creation day", func(t *testing.T) {
		t.Parallel()
		records := parse(t, ExportCSV([]models.Expense{{
			Amount:    decimal.RequireFromString("1"),
			Category:  "Other",
			CreatedAt: time.Date(2024, 7, 4, 18, 30, 0, 0, time.UTC),
		}}))
		require.Equal(t, "2024-07-04", records[1][0])
	})
}

func TestExportCSV_RoundTrip(t *testing.T) {
	t.Parallel()

	text := rapid.StringMatching(`[a-zA-Z0-9 ,"'.;\r\n-]{0,24}`)
	modes := rapid.SampledFrom(models.PaymentModes)
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(t, "n")
		expenses := make([]models.Expense, n)
		for i := range expenses {
			expenses[i] = models.Expense{
				Amount:      decimal.New(rapid.Int64Range(0, 100_000_000).Draw(t, "cents"), -2),
				Category:    text.Draw(t, "category"),
				Date:        models.NewDate(base.AddDate(0, 0, rapid.IntRange(0, 3000).Draw(t, "day"))),
				Note:        text.Draw(t, "note"),
				PaymentMode: modes.Draw(t, "mode"),
			}
		}

		records := parse(t, ExportCSV(expenses))
		if len(records) != n+1 {
			t.Fatalf("got %d records, want %d", len(records), n+1)
		}
		for i, e := range expenses {
			want := []string{
				e.Date.String(),
				normalizeNewlines(e.Category),
				e.Amount.StringFixed(2),
				string(e.PaymentMode),
				normalizeNewlines(e.Note),
			}
			got := records[i+1]
			for j := range want {
				if got[j] != want[j] {
					t.Fatalf("row %d field %d: got %q, want %q", i, j, got[j], want[j])
				}
			}
		}
	})
}

func TestFilename(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)
	require.Equal(t, "expense-report-2024-03-09.csv", Filename(now))
}
