package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pharmago/clientkit/pkg/api"
	"github.com/pharmago/clientkit/pkg/session"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to PharmaGo",
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginEmail == "" {
			return fmt.Errorf("--email is required")
		}

		password := loginPassword
		if password == "" {
			fmt.Print("Password: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return err
			}
			password = strings.TrimRight(line, "\r\n")
		}

		err := theApp.session.Login(cmd.Context(), api.Credentials{Email: loginEmail, Password: password})
		if err != nil {
			return err
		}

		user := theApp.session.User()
		color.Green("Signed in as %s <%s>", user.Name, user.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		theApp.session.Logout(cmd.Context())
		color.Yellow("Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch theApp.session.State() {
		case session.StateAuthenticated, session.StateOptimisticallyAuthenticated:
			user := theApp.session.User()
			fmt.Printf("%s <%s>\n", user.Name, user.Email)
			fmt.Printf("role: %s\n", user.Role)
		default:
			fmt.Println("not signed in")
		}
		return nil
	},
}

var (
	regName     string
	regEmail    string
	regContact  string
	regPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new PharmaGo account",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := theApp.session.Register(cmd.Context(), api.Registration{
			Name:            regName,
			Email:           regEmail,
			ContactNumber:   regContact,
			Password:        regPassword,
			ConfirmPassword: regPassword,
		})
		if err != nil {
			return err
		}

		color.Green("Account created, sign in with `pharmago login -e %s`", regEmail)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password (prompted if omitted)")

	registerCmd.Flags().StringVar(&regName, "name", "", "full name")
	registerCmd.Flags().StringVarP(&regEmail, "email", "e", "", "account email")
	registerCmd.Flags().StringVar(&regContact, "contact", "", "contact number")
	registerCmd.Flags().StringVarP(&regPassword, "password", "p", "", "account password")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("contact")
	_ = registerCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, registerCmd)
}
