package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/zeiterfassung/internal/models"
	"github.com/username/zeiterfassung/internal/timesheet"
	"github.com/username/zeiterfassung/internal/validation"
	"github.com/username/zeiterfassung/pkg/dateutil"
	"go.uber.org/zap"
)

func recordCmd() *cobra.Command {
	var (
		date      string
		entryType string
		begin     string
		end       string
		breakMins int
		halfDay   bool
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record an entry for one day",
		Long:  "Record a home-office day with working times or an absence for a single date. Warnings can be overridden with --force",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if date == "" {
				date = dateutil.FormatDate(dateutil.Today())
			}
			if !validation.IsValidDateString(date) {
				return fmt.Errorf("invalid date: %s (expected YYYY-MM-DD)", date)
			}

			t := models.EntryType(entryType)
			if !t.IsValid() {
				return fmt.Errorf("invalid type: %s (valid: %s)", entryType, typeList())
			}

			entry := models.Entry{
				Type:       t,
				RecordedOn: dateutil.FormatDate(dateutil.Today()),
			}

			var warnings []string

			if t == models.TypeHomeOffice {
				if begin == "" {
					begin = a.cfg.Defaults.Begin
				}
				if end == "" {
					end = a.cfg.Defaults.End
				}
				if !cmd.Flags().Changed("break") {
					breakMins = a.cfg.Defaults.BreakMinutes
				}
				if !validation.IsValidTimeString(begin) {
					return fmt.Errorf("invalid begin time: %s (expected HH:MM)", begin)
				}
				if !validation.IsValidTimeString(end) {
					return fmt.Errorf("invalid end time: %s (expected HH:MM)", end)
				}

				hours, ok := timesheet.CalculateDuration(begin, end, breakMins, halfDay)
				if !ok {
					return fmt.Errorf("invalid time range: end %s is not after begin %s", end, begin)
				}

				entry.Begin = begin
				entry.End = end
				entry.BreakMinutes = models.IntPtr(breakMins)
				entry.IsHalfDay = halfDay
				entry.Duration = models.FloatPtr(hours)

				policy := timesheet.Policy{
					HalfDayMaxHours: a.cfg.Policy.HalfDayMaxHours,
					FullDayMaxHours: a.cfg.Policy.FullDayMaxHours,
					MinBreakMinutes: a.cfg.Policy.MinBreakMinutes,
				}
				warnings = append(warnings, policy.Check(hours, breakMins, halfDay)...)
			}

			day, err := dateutil.ParseDate(date)
			if err != nil {
				return fmt.Errorf("invalid date: %s", date)
			}
			if name, ok := a.cal.HolidayName(day); ok {
				warnings = append(warnings, fmt.Sprintf("%s is a public holiday (%s)", date, name))
			} else if a.cal.IsWeekend(day) {
				warnings = append(warnings, fmt.Sprintf("%s is a weekend day", date))
			}

			existing, exists, err := a.store.Entry(date)
			if err != nil {
				return err
			}
			if exists {
				if t == models.TypeHomeOffice && existing.Type == models.TypeHomeOffice &&
					timesheet.TimeRangesOverlap(entry.Begin, entry.End, existing.Begin, existing.End) {
					warnings = append(warnings, fmt.Sprintf(
						"an entry %s-%s already exists for %s and overlaps the new times, it will be replaced",
						existing.Begin, existing.End, date))
				} else {
					warnings = append(warnings, fmt.Sprintf(
						"an entry (%s) already exists for %s, it will be replaced",
						existing.Type.Label(), date))
				}
			}

			if len(warnings) > 0 && !force {
				for _, w := range warnings {
					fmt.Printf("⚠️  %s\n", w)
				}
				return fmt.Errorf("not saved, use --force to save anyway")
			}

			if err := a.store.SaveEntry(date, entry); err != nil {
				return err
			}

			logger.Info("Entry recorded",
				zap.String("date", date),
				zap.String("type", string(t)))

			fmt.Println(saveConfirmation(date, entry))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to record (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&entryType, "type", "homeoffice", "Entry type: "+typeList())
	cmd.Flags().StringVar(&begin, "begin", "", "Begin time (HH:MM, default from config)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, default from config)")
	cmd.Flags().IntVar(&breakMins, "break", 0, "Break in minutes (default from config)")
	cmd.Flags().BoolVar(&halfDay, "half-day", false, "Record a half day (break is ignored)")
	cmd.Flags().BoolVar(&force, "force", false, "Save despite warnings")

	return cmd
}

func absenceCmd() *cobra.Command {
	var (
		from      string
		to        string
		entryType string
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "absence",
		Short: "Record an absence over a date range",
		Long:  "Record the same absence type for every working day in a date range. Weekends and holidays are skipped",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if !validation.IsValidDateString(from) {
				return fmt.Errorf("invalid --from date: %s (expected YYYY-MM-DD)", from)
			}
			if !validation.IsValidDateString(to) {
				return fmt.Errorf("invalid --to date: %s (expected YYYY-MM-DD)", to)
			}

			t := models.EntryType(entryType)
			if !t.IsValid() {
				return fmt.Errorf("invalid type: %s (valid: %s)", entryType, typeList())
			}
			if t == models.TypeHomeOffice {
				return fmt.Errorf("use the record command for home-office entries")
			}

			start, err := dateutil.ParseDate(from)
			if err != nil {
				return fmt.Errorf("invalid --from date: %s", from)
			}
			endDate, err := dateutil.ParseDate(to)
			if err != nil {
				return fmt.Errorf("invalid --to date: %s", to)
			}
			if endDate.Before(start) {
				return fmt.Errorf("--to must not be before --from")
			}

			today := dateutil.FormatDate(dateutil.Today())
			saved, skippedNonWorking, skippedExisting := 0, 0, 0

			for day := start; !day.After(endDate); day = day.AddDate(0, 0, 1) {
				if a.cal.IsNonWorkingDay(day) {
					skippedNonWorking++
					continue
				}
				key := dateutil.FormatDate(day)
				if _, exists, err := a.store.Entry(key); err != nil {
					return err
				} else if exists && !force {
					skippedExisting++
					continue
				}
				entry := models.Entry{Type: t, RecordedOn: today}
				if err := a.store.SaveEntry(key, entry); err != nil {
					return err
				}
				saved++
			}

			logger.Info("Absence range recorded",
				zap.String("type", string(t)),
				zap.String("from", from),
				zap.String("to", to),
				zap.Int("saved", saved))

			fmt.Printf("✅ %s recorded for %d day(s)\n", t.Label(), saved)
			if skippedNonWorking > 0 {
				fmt.Printf("   • Skipped %d non-working day(s)\n", skippedNonWorking)
			}
			if skippedExisting > 0 {
				fmt.Printf("   • Skipped %d day(s) with existing entries (use --force to overwrite)\n", skippedExisting)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First date of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last date of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&entryType, "type", "", "Absence type: "+typeList())
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing entries")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <date>",
		Short: "Delete the entry of one day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()

			date := args[0]
			if !validation.IsValidDateString(date) {
				return fmt.Errorf("invalid date: %s (expected YYYY-MM-DD)", date)
			}

			_, exists, err := a.store.Entry(date)
			if err != nil {
				return err
			}
			if !exists {
				fmt.Printf("No entry for %s\n", date)
				return nil
			}

			if err := a.store.DeleteEntry(date); err != nil {
				return err
			}
			logger.Info("Entry deleted", zap.String("date", date))
			fmt.Printf("✅ Entry for %s deleted\n", date)
			return nil
		},
	}
}

func clearMonthCmd() *cobra.Command {
	var (
		year  int
		month int
		force bool
	)

	cmd := &cobra.Command{
		Use:   "clear-month",
		Short: "Delete all entries of one month",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if !force {
				return fmt.Errorf("clearing a month deletes all its entries, use --force to confirm")
			}

			removed, err := a.store.ClearMonth(year, time.Month(month))
			if err != nil {
				return err
			}
			logger.Info("Month cleared",
				zap.Int("year", year),
				zap.Int("month", month),
				zap.Int("removed", removed))
			fmt.Printf("✅ Removed %d entrie(s) for %04d-%02d\n", removed, year, month)
			return nil
		},
	}

	now := dateutil.Today()
	cmd.Flags().IntVar(&year, "year", now.Year(), "Year")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "Month (1-12)")
	cmd.Flags().BoolVar(&force, "force", false, "Confirm deletion")

	return cmd
}

// saveConfirmation builds the success line from the entry just saved, so
// the output never depends on a second store read.
func saveConfirmation(date string, entry models.Entry) string {
	if entry.Type == models.TypeHomeOffice {
		return fmt.Sprintf("✅ %s: %s %s-%s (%s h)",
			date, entry.Type.Label(), entry.Begin, entry.End,
			timesheet.FormatNumber(entry.DurationHours(), 1))
	}
	return fmt.Sprintf("✅ %s: %s", date, entry.Type.Label())
}

func typeList() string {
	list := ""
	for i, t := range models.AllTypes() {
		if i > 0 {
			list += ", "
		}
		list += string(t)
	}
	return list
}
