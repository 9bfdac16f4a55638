package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/username/zeiterfassung/internal/models"
)

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage the identity printed on exported timesheets",
	}

	var (
		lastName    string
		firstName   string
		personnelNo string
		department  string
	)
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Set the user info fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()

			info, err := a.store.UserInfo()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("last-name") {
				info.LastName = lastName
			}
			if cmd.Flags().Changed("first-name") {
				info.FirstName = firstName
			}
			if cmd.Flags().Changed("personnel-no") {
				info.PersonnelNo = personnelNo
			}
			if cmd.Flags().Changed("department") {
				info.Department = department
			}

			if err := a.store.SaveUserInfo(info); err != nil {
				return err
			}
			fmt.Println("✅ User info saved")
			return nil
		},
	}
	setCmd.Flags().StringVar(&lastName, "last-name", "", "Last name (Nachname)")
	setCmd.Flags().StringVar(&firstName, "first-name", "", "First name (Vorname)")
	setCmd.Flags().StringVar(&personnelNo, "personnel-no", "", "Personnel number (Pers.-Nr.)")
	setCmd.Flags().StringVar(&department, "department", "", "Department (Abteilung)")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored user info",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()

			info, err := a.store.UserInfo()
			if err != nil {
				return err
			}
			printUserInfo(info)
			return nil
		},
	}

	cmd.AddCommand(setCmd)
	cmd.AddCommand(showCmd)
	return cmd
}

func printUserInfo(info models.UserInfo) {
	fmt.Printf("Nachname:   %s\n", info.LastName)
	fmt.Printf("Vorname:    %s\n", info.FirstName)
	fmt.Printf("Pers.-Nr.:  %s\n", info.PersonnelNo)
	fmt.Printf("Abteilung:  %s\n", info.Department)
}
