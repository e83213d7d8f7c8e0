// Package cli implements the cobra command tree.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/voxplan/voxplan/internal/app"
)

var (
	verbose       bool
	logger        *slog.Logger
	container     *app.Container
	currentUserID uuid.UUID
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "voxplan",
	Short: "Voxplan - voice notes and prioritized tasks",
	Long: `Voxplan captures voice and text notes and keeps a to-do list ordered
by a computed priority score. Notes can spawn linked tasks, items can be
archived or soft-deleted, and deleted items are purged after 30 days.

Storage is local by default (SQLite under ~/.voxplan); set DATABASE_URL
or REDIS_URL to use a remote backend.`,
}

// Execute runs the command tree with the given context.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// SetContainer injects the wired application container.
func SetContainer(c *app.Container) {
	container = c
}

// SetCurrentUserID scopes CLI operations to a user. The zero UUID selects
// the shared local namespace used by single-user setups.
func SetCurrentUserID(id uuid.UUID) {
	currentUserID = id
}

func requireContainer() (*app.Container, error) {
	if container == nil {
		return nil, fmt.Errorf("storage is not available; check your configuration")
	}
	return container, nil
}
