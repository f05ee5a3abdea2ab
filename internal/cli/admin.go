package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check registry liveness",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the registry to its default state (admin only)",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().Bool("yes", false, "skip the confirmation prompt")
	rootCmd.AddCommand(healthCmd, resetCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	s, err := newStack()
	if err != nil {
		return err
	}
	health, err := s.reg.CheckHealth(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "status: %s\ndatabase: %s\n", health.Status, health.DatabaseStatus)
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		return fmt.Errorf("reset wipes the registry; re-run with --yes to confirm")
	}
	s, err := newHydratedStack(cmd)
	if err != nil {
		return err
	}
	if err := s.reg.ResetRegistry(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "registry reset")
	return nil
}
