package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pharmago/clientkit/pkg/api"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theApp.requireAuth(); err != nil {
			return err
		}

		user := theApp.session.User()
		fmt.Printf("name:    %s\n", user.Name)
		fmt.Printf("email:   %s\n", user.Email)
		fmt.Printf("contact: %s\n", user.ContactNumber)
		if user.Address != "" {
			fmt.Printf("address: %s, %s %s %s\n", user.Address, user.City, user.State, user.PostalCode)
		}
		return nil
	},
}

var profileUpdate api.ProfileUpdate

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theApp.requireAuth(); err != nil {
			return err
		}

		if err := theApp.session.UpdateProfile(cmd.Context(), profileUpdate); err != nil {
			return err
		}
		color.Green("profile updated")
		return nil
	},
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileUpdate.Name, "name", "", "full name")
	profileUpdateCmd.Flags().StringVar(&profileUpdate.ContactNumber, "contact", "", "contact number")
	profileUpdateCmd.Flags().StringVar(&profileUpdate.Address, "address", "", "street address")
	profileUpdateCmd.Flags().StringVar(&profileUpdate.City, "city", "", "city")
	profileUpdateCmd.Flags().StringVar(&profileUpdate.State, "state", "", "state")
	profileUpdateCmd.Flags().StringVar(&profileUpdate.PostalCode, "postal", "", "postal code")
	profileUpdateCmd.Flags().StringVar(&profileUpdate.DateOfBirth, "dob", "", "date of birth (YYYY-MM-DD)")

	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}
