package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Authenticate against the registry and store the session",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session identity",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create a new registry account",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegister,
}

func init() {
	loginCmd.Flags().String("password", "", "password (or REGCTL_PASSWORD env)")
	loginCmd.Flags().Bool("admin", false, "request an admin session")

	registerCmd.Flags().String("password", "", "password for the new account")
	registerCmd.Flags().String("email", "", "email for the new account (default <username>@example.com)")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, registerCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	s, err := newStack()
	if err != nil {
		return err
	}
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = os.Getenv("REGCTL_PASSWORD")
	}
	if password == "" {
		return fmt.Errorf("no password given (use --password or REGCTL_PASSWORD)")
	}
	admin, _ := cmd.Flags().GetBool("admin")

	if err := s.store.Login(cmd.Context(), args[0], password, admin); err != nil {
		return err
	}
	slog.Debug("session stored", "username", args[0], "admin", admin)
	fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", args[0])
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	s, err := newStack()
	if err != nil {
		return err
	}
	if err := s.store.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	s, err := newHydratedStack(cmd)
	if err != nil {
		return err
	}
	if !s.store.IsAuthenticated() {
		fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
		return nil
	}
	role := "user"
	if s.store.IsAdmin() {
		role = "admin"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", s.store.Username(), role)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	s, err := newHydratedStack(cmd)
	if err != nil {
		return err
	}
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		return fmt.Errorf("no password given (use --password)")
	}
	email, _ := cmd.Flags().GetString("email")

	if err := s.reg.RegisterUser(cmd.Context(), args[0], password, email); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created user %s\n", args[0])
	return nil
}
