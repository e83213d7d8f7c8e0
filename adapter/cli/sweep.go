package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Purge items deleted more than 30 days ago",
	Long: `Run one purge sweep against the remote backend, permanently removing
tasks and notes whose soft-delete outlived the retention window.

Local backends sweep automatically on every load and save; this command
only applies to the postgres driver.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireContainer()
		if err != nil {
			return err
		}
		if c.Purger == nil {
			return fmt.Errorf("sweep requires the postgres storage driver")
		}
		if err := c.Purger.RunOnce(cmd.Context()); err != nil {
			return fmt.Errorf("sweep failed: %w", err)
		}
		fmt.Println("Sweep complete.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}
