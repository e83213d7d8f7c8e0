package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/voxplan/voxplan/internal/app"
	"github.com/voxplan/voxplan/internal/planner/application/commands"
	"github.com/voxplan/voxplan/internal/planner/application/queries"
	"github.com/voxplan/voxplan/internal/planner/domain"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage prioritized tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Long: `Add a task to the list. The priority score is computed from urgency
and due date proximity; overdue tasks score highest.

Examples:
  voxplan task add "Buy groceries"
  voxplan task add "Finish report" --due 2026-09-05 --urgency high`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireContainer()
		if err != nil {
			return err
		}

		urgency, err := parseUrgency(cmd.Flag("urgency").Value.String())
		if err != nil {
			return err
		}

		result, err := c.CreateTask.Handle(cmd.Context(), commands.CreateTaskCommand{
			UserID:  currentUserID,
			Title:   args[0],
			Details: cmd.Flag("details").Value.String(),
			DueDate: cmd.Flag("due").Value.String(),
			Urgency: urgency,
		})
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		task := result.Task
		fmt.Println("Task created!")
		fmt.Printf("  ID:      %s\n", task.ID.String()[:8])
		fmt.Printf("  Title:   %s\n", task.Title)
		fmt.Printf("  Urgency: %s\n", task.Urgency)
		fmt.Printf("  Score:   %d\n", task.Score)
		if task.DueDate != "" {
			fmt.Printf("  Due:     %s\n", task.DueDate)
		}
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks ordered by priority score",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireContainer()
		if err != nil {
			return err
		}

		page, _ := cmd.Flags().GetInt("page")
		size, _ := cmd.Flags().GetInt("size")
		result, err := c.ListTasks.Handle(cmd.Context(), queries.ListTasksQuery{
			UserID:   currentUserID,
			View:     cmd.Flag("view").Value.String(),
			DateFrom: cmd.Flag("from").Value.String(),
			DateTo:   cmd.Flag("to").Value.String(),
			Page:     page,
			PageSize: size,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if len(result.Tasks) == 0 {
			fmt.Println("No tasks.")
			return nil
		}
		for _, t := range result.Tasks {
			due := "-"
			if t.DueDate != "" {
				due = t.DueDate
			}
			fmt.Printf("%s  [%-6s] %4d  %-10s  %s\n",
				t.ID.String()[:8], t.Tier, t.Score, due, t.Title)
		}
		fmt.Printf("\nPage %d of %d\n", result.Page, result.TotalPages)
		return nil
	},
}

var taskArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTaskLifecycle(cmd, args[0], "archived", func(c *app.Container) taskLifecycleFn {
			return c.ArchiveTask.Handle
		})
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Move a task to the recently deleted list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTaskLifecycle(cmd, args[0], "deleted", func(c *app.Container) taskLifecycleFn {
			return c.DeleteTask.Handle
		})
	},
}

var taskRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore an archived or deleted task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTaskLifecycle(cmd, args[0], "restored", func(c *app.Container) taskLifecycleFn {
			return c.RestoreTask.Handle
		})
	},
}

type taskLifecycleFn func(ctx context.Context, cmd commands.TaskLifecycleCommand) error

func runTaskLifecycle(cmd *cobra.Command, rawID, verb string, pick func(*app.Container) taskLifecycleFn) error {
	c, err := requireContainer()
	if err != nil {
		return err
	}
	taskID, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid task id %q", rawID)
	}

	lc := commands.TaskLifecycleCommand{UserID: currentUserID, TaskID: taskID}
	if err := pick(c)(cmd.Context(), lc); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	fmt.Printf("Task %s %s.\n", rawID[:8], verb)
	return nil
}

func parseUrgency(raw string) (domain.Urgency, error) {
	switch raw {
	case "", "medium", "2":
		return domain.UrgencyMedium, nil
	case "low", "1":
		return domain.UrgencyLow, nil
	case "high", "3":
		return domain.UrgencyHigh, nil
	default:
		return 0, fmt.Errorf("invalid urgency %q (want low, medium, or high)", raw)
	}
}

func init() {
	taskAddCmd.Flags().String("details", "", "task details")
	taskAddCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	taskAddCmd.Flags().String("urgency", "medium", "urgency: low, medium, or high")

	taskListCmd.Flags().String("view", "active", "view: active, archived, or deleted")
	taskListCmd.Flags().String("from", "", "filter from date (YYYY-MM-DD)")
	taskListCmd.Flags().String("to", "", "filter to date (YYYY-MM-DD)")
	taskListCmd.Flags().Int("page", 1, "page number")
	taskListCmd.Flags().Int("size", 10, "page size")

	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskArchiveCmd, taskDeleteCmd, taskRestoreCmd)
	rootCmd.AddCommand(taskCmd)
}
