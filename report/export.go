package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/lu-ally/AllyTimeTracking/generic"
	"github.com/lu-ally/AllyTimeTracking/timekeeping"
)

// ExportFilename is the attachment name for an export of p.
func ExportFilename(p generic.Period) string {
	return fmt.Sprintf("zeiterfassung-%s-%s.csv", p.Start, p.End)
}

var exportHeader = []string{
	"Mitarbeiter",
	"E-Mail",
	"Datum",
	"Start",
	"Ende",
	"Pause (min)",
	"Gearbeitet (Std)",
	"Soll (Std)",
	"Saldo (Std)",
	"Notizen",
}

// utf8BOM makes spreadsheet programs detect the encoding.
const utf8BOM = "\uFEFF"

// ExportCSV writes one row per stored time entry of an active user inside
// p, ordered by user name and date. Semicolon separated, German dates,
// hours with two decimals.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer, p generic.Period) error {
	if p.IsEmpty() {
		return &generic.ValidationError{Field: "endDate", Message: "must be on or after startDate", Err: generic.ErrInvalidPeriod}
	}

	users, err := s.activeUsers(ctx)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(exportHeader); err != nil {
		return err
	}

	for _, u := range users {
		records, err := s.store.ListTimeEntries(ctx, u.ID, p)
		if err != nil {
			return err
		}
		for _, r := range records {
			worked := r.Worked()
			target := timekeeping.DailyTargetHours(r.Date, u.WeeklyHours, u.State)
			row := []string{
				u.Name,
				u.Email,
				r.Date.Time().Format("02.01.2006"),
				r.StartTime,
				r.EndTime,
				fmt.Sprint(r.BreakMinutes),
				timekeeping.FormatHours(worked),
				timekeeping.FormatHours(target),
				timekeeping.FormatHours(worked.Sub(target)),
				r.Notes,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
