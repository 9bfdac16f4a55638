package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/zeiterfassung/internal/backup"
	"github.com/username/zeiterfassung/internal/export"
	"github.com/username/zeiterfassung/pkg/dateutil"
)

func exportCmd() *cobra.Command {
	var (
		year  int
		month int
		dir   string
	)

	cmd := &cobra.Command{
		Use:   "export <excel|pdf>",
		Short: "Export a monthly timesheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if dir == "" {
				dir = a.cfg.Export.Dir
			}

			exporter := export.NewExporter(a.store, a.cal, logger)

			var path string
			switch args[0] {
			case "excel":
				path, err = exporter.Excel(year, time.Month(month), dir)
			case "pdf":
				path, err = exporter.PDF(year, time.Month(month), dir)
			default:
				return fmt.Errorf("unknown export format: %s (expected excel or pdf)", args[0])
			}
			if err != nil {
				return err
			}

			fmt.Printf("✅ Export written to %s\n", path)
			return nil
		},
	}

	now := dateutil.Today()
	cmd.Flags().IntVar(&year, "year", now.Year(), "Year")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "Month (1-12)")
	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (default from config)")

	return cmd
}

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create or restore data backups",
	}

	var dir string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Write a backup of all data",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if dir == "" {
				dir = a.cfg.Export.BackupDir
			}

			path, err := backup.NewManager(a.store, logger).Create(dir)
			if err != nil {
				return err
			}
			fmt.Printf("✅ Backup written to %s\n", path)
			return nil
		},
	}
	createCmd.Flags().StringVar(&dir, "dir", "", "Backup directory (default from config)")

	var force bool
	restoreCmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore data from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if !force {
				return fmt.Errorf("restoring overwrites existing entries, use --force to confirm")
			}

			restored, skipped, err := backup.NewManager(a.store, logger).Restore(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("✅ Restored %d entrie(s)\n", restored)
			if skipped > 0 {
				fmt.Printf("   • Skipped %d invalid record(s)\n", skipped)
			}
			return nil
		},
	}
	restoreCmd.Flags().BoolVar(&force, "force", false, "Confirm restore")

	cmd.AddCommand(createCmd)
	cmd.AddCommand(restoreCmd)
	return cmd
}
