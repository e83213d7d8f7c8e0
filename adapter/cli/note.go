package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/voxplan/voxplan/internal/app"
	"github.com/voxplan/voxplan/internal/planner/application/commands"
	"github.com/voxplan/voxplan/internal/planner/application/queries"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage voice and text notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Capture a note",
	Long: `Capture a note. At least one of --title, --content, or --audio must
be given; an untitled note gets the default title.

Examples:
  voxplan note add --content "Remember to call the dentist"
  voxplan note add --title "Standup" --audio recording.webm.dataurl`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireContainer()
		if err != nil {
			return err
		}

		result, err := c.CaptureNote.Handle(cmd.Context(), commands.CaptureNoteCommand{
			UserID:       currentUserID,
			Title:        cmd.Flag("title").Value.String(),
			Content:      cmd.Flag("content").Value.String(),
			AudioDataURL: cmd.Flag("audio").Value.String(),
		})
		if err != nil {
			return fmt.Errorf("failed to capture note: %w", err)
		}

		note := result.Note
		fmt.Println("Note captured!")
		fmt.Printf("  ID:    %s\n", note.ID.String()[:8])
		fmt.Printf("  Title: %s\n", note.Title)
		fmt.Printf("  Type:  %s\n", note.NoteType)
		return nil
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireContainer()
		if err != nil {
			return err
		}

		page, _ := cmd.Flags().GetInt("page")
		size, _ := cmd.Flags().GetInt("size")
		result, err := c.ListNotes.Handle(cmd.Context(), queries.ListNotesQuery{
			UserID:   currentUserID,
			View:     cmd.Flag("view").Value.String(),
			DateFrom: cmd.Flag("from").Value.String(),
			DateTo:   cmd.Flag("to").Value.String(),
			Page:     page,
			PageSize: size,
		})
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}

		if len(result.Notes) == 0 {
			fmt.Println("No notes.")
			return nil
		}
		for _, n := range result.Notes {
			marker := " "
			if n.TaskCreated {
				marker = "*"
			}
			fmt.Printf("%s %s  %s  %s\n",
				marker, n.ID.String()[:8], n.CreatedAt.Format("2006-01-02 15:04"), n.Title)
		}
		fmt.Printf("\nPage %d of %d (* = task created)\n", result.Page, result.TotalPages)
		return nil
	},
}

var noteLinkCmd = &cobra.Command{
	Use:   "link <note-id>",
	Short: "Create a task from a note",
	Long: `Create a task linked to a note. The task details gain a line pointing
back to the note, and the note is marked so it cannot spawn a second task.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireContainer()
		if err != nil {
			return err
		}
		noteID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid note id %q", args[0])
		}
		urgency, err := parseUrgency(cmd.Flag("urgency").Value.String())
		if err != nil {
			return err
		}

		result, err := c.CreateTaskFromNote.Handle(cmd.Context(), commands.CreateTaskFromNoteCommand{
			UserID:  currentUserID,
			NoteID:  noteID,
			Title:   cmd.Flag("title").Value.String(),
			Details: cmd.Flag("details").Value.String(),
			DueDate: cmd.Flag("due").Value.String(),
			Urgency: urgency,
		})
		if err != nil {
			return fmt.Errorf("failed to create task from note: %w", err)
		}
		if !result.Created {
			fmt.Println("Note already has a linked task; nothing to do.")
			return nil
		}

		fmt.Println("Task created from note!")
		fmt.Printf("  ID:    %s\n", result.Task.ID.String()[:8])
		fmt.Printf("  Title: %s\n", result.Task.Title)
		fmt.Printf("  Score: %d\n", result.Task.Score)
		return nil
	},
}

var noteArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNoteLifecycle(cmd, args[0], "archived", func(c *app.Container) noteLifecycleFn {
			return c.ArchiveNote.Handle
		})
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Move a note to the recently deleted list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNoteLifecycle(cmd, args[0], "deleted", func(c *app.Container) noteLifecycleFn {
			return c.DeleteNote.Handle
		})
	},
}

var noteRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore an archived or deleted note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNoteLifecycle(cmd, args[0], "restored", func(c *app.Container) noteLifecycleFn {
			return c.RestoreNote.Handle
		})
	},
}

type noteLifecycleFn func(ctx context.Context, cmd commands.NoteLifecycleCommand) error

func runNoteLifecycle(cmd *cobra.Command, rawID, verb string, pick func(*app.Container) noteLifecycleFn) error {
	c, err := requireContainer()
	if err != nil {
		return err
	}
	noteID, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid note id %q", rawID)
	}

	lc := commands.NoteLifecycleCommand{UserID: currentUserID, NoteID: noteID}
	if err := pick(c)(cmd.Context(), lc); err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	fmt.Printf("Note %s %s.\n", rawID[:8], verb)
	return nil
}

func init() {
	noteAddCmd.Flags().String("title", "", "note title")
	noteAddCmd.Flags().String("content", "", "note text content")
	noteAddCmd.Flags().String("audio", "", "audio recording as a data URL")

	noteListCmd.Flags().String("view", "active", "view: active, archived, or deleted")
	noteListCmd.Flags().String("from", "", "filter from date (YYYY-MM-DD)")
	noteListCmd.Flags().String("to", "", "filter to date (YYYY-MM-DD)")
	noteListCmd.Flags().Int("page", 1, "page number")
	noteListCmd.Flags().Int("size", 10, "page size")

	noteLinkCmd.Flags().String("title", "", "task title (defaults to the note title)")
	noteLinkCmd.Flags().String("details", "", "task details")
	noteLinkCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	noteLinkCmd.Flags().String("urgency", "medium", "urgency: low, medium, or high")

	noteCmd.AddCommand(noteAddCmd, noteListCmd, noteLinkCmd, noteArchiveCmd, noteDeleteCmd, noteRestoreCmd)
	rootCmd.AddCommand(noteCmd)
}
