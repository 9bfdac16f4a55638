package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/zeiterfassung/internal/report"
	"github.com/username/zeiterfassung/internal/validation"
	"github.com/username/zeiterfassung/pkg/dateutil"
)

func reportCmd() *cobra.Command {
	var (
		year  int
		month int
	)

	cmd := &cobra.Command{
		Use:   "report [month|year]",
		Short: "Print a monthly or yearly report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := "month"
			if len(args) == 1 {
				scope = args[0]
			}

			if err := validatePeriod(year, month); err != nil {
				return err
			}

			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()

			reporter := report.NewReporter(a.store, a.cal, a.cfg.Policy.FullDayMaxHours)

			var text string
			switch scope {
			case "month":
				text, err = reporter.FormatMonthly(year, time.Month(month))
			case "year":
				text, err = reporter.FormatYearly(year)
			default:
				return fmt.Errorf("unknown report scope: %s (expected month or year)", scope)
			}
			if err != nil {
				return err
			}

			fmt.Print(text)
			return nil
		},
	}

	now := dateutil.Today()
	cmd.Flags().IntVar(&year, "year", now.Year(), "Year")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "Month (1-12), ignored for yearly reports")

	return cmd
}

// validatePeriod rejects out-of-range report flags before any store
// access, so a bad month cannot silently shift into the next year.
func validatePeriod(year, month int) error {
	if year < validation.YearLimits.Min || year > validation.YearLimits.Max {
		return fmt.Errorf("year must be between %d and %d", validation.YearLimits.Min, validation.YearLimits.Max)
	}
	if month < validation.MonthLimits.Min || month > validation.MonthLimits.Max {
		return fmt.Errorf("month must be between %d and %d", validation.MonthLimits.Min, validation.MonthLimits.Max)
	}
	return nil
}

func holidaysCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List the public holidays of a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if year < validation.YearLimits.Min || year > validation.YearLimits.Max {
				return fmt.Errorf("year must be between %d and %d", validation.YearLimits.Min, validation.YearLimits.Max)
			}

			holidays := a.cal.Holidays(year)
			dates := make([]string, 0, len(holidays))
			for date := range holidays {
				dates = append(dates, date)
			}
			sort.Strings(dates)

			fmt.Printf("Feiertage %d (NRW):\n", year)
			for _, date := range dates {
				day, err := dateutil.ParseDate(date)
				if err != nil {
					continue
				}
				fmt.Printf("  %s (%s)  %s\n",
					dateutil.FormatGermanDate(day),
					dateutil.GermanWeekdayName(day.Weekday()),
					holidays[date])
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", dateutil.Today().Year(), "Year")

	return cmd
}
