package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/taskflow/internal/models"
	"github.com/example/taskflow/internal/ports/primary"
	"github.com/example/taskflow/internal/wire"
)

// TaskCmd returns the task command group.
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "View and update tasks",
		Long:  "List tasks, inspect team progress, record your own progress, and accept completed work.",
	}

	cmd.AddCommand(taskListCmd())
	cmd.AddCommand(taskMineCmd())
	cmd.AddCommand(taskShowCmd())
	cmd.AddCommand(taskProgressCmd())
	cmd.AddCommand(taskAcceptCmd())
	cmd.AddCommand(taskAssignCmd())
	cmd.AddCommand(taskCommentCmd())

	return cmd
}

func taskListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [project-id]",
		Short: "List a project's tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := requireAuth(ctx); err != nil {
				return err
			}

			projectID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}
			status, _ := cmd.Flags().GetString("status")
			page, _ := cmd.Flags().GetInt("page")

			list, err := wire.TaskService().ListProjectTasks(ctx, projectID, primary.TaskFilters{
				Status: status,
				Page:   page,
			})
			if err != nil {
				return presentError(err)
			}

			printTaskTable(list)
			return nil
		},
	}
	cmd.Flags().String("status", "", "Filter by task status")
	cmd.Flags().Int("page", 0, "Page number")
	return cmd
}

func taskMineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List tasks assigned to you",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			state, err := requireAuth(ctx)
			if err != nil {
				return err
			}

			status, _ := cmd.Flags().GetString("status")
			page, _ := cmd.Flags().GetInt("page")

			list, err := wire.TaskService().ListMyTasks(ctx, primary.TaskFilters{
				Status: status,
				Page:   page,
			})
			if err != nil {
				return presentError(err)
			}

			if len(list.Tasks) == 0 {
				fmt.Println("No tasks assigned to you.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPRIORITY\tSTATUS\tMINE\tTEAM\tDUE")
			for _, t := range list.Tasks {
				mine := "-"
				if a := t.AssignmentFor(state.User.ID); a != nil {
					mine = fmt.Sprintf("%d%%", a.Progress)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.Title, formatPriority(t.Priority), formatTaskStatus(t.Status),
					mine, overallProgressLabel(t), formatDue(t))
			}
			w.Flush()
			printPageFooter(list)
			return nil
		},
	}
	cmd.Flags().String("status", "", "Filter by task status")
	cmd.Flags().Int("page", 0, "Page number")
	return cmd
}

func taskShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [project-id] [task-id]",
		Short: "Show a task with team progress",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			state, err := requireAuth(ctx)
			if err != nil {
				return err
			}

			projectID, taskID, err := parseTaskArgs(args)
			if err != nil {
				return err
			}

			task, err := wire.TaskService().GetTask(ctx, projectID, taskID)
			if err != nil {
				return presentError(err)
			}

			fmt.Printf("Task %d: %s\n", task.ID, task.Title)
			if task.Description != "" {
				fmt.Printf("  %s\n", task.Description)
			}
			fmt.Printf("Status: %s   Priority: %s   Due: %s\n",
				formatTaskStatus(task.Status), formatPriority(task.Priority), formatDue(task))

			if task.IsAccepted() {
				accepter := "a manager"
				if task.Accepter != nil {
					accepter = task.Accepter.FullName()
				}
				color.New(color.FgGreen).Printf("Accepted by %s on %s — progress is locked.\n",
					accepter, task.AcceptedAt.Format("Jan 2, 2006"))
			}

			fmt.Println()
			renderTeamProgress(task, state.User.ID)

			if len(task.Comments) > 0 {
				fmt.Printf("\nComments (%d):\n", len(task.Comments))
				for _, c := range task.Comments {
					fmt.Printf("  %s  %s\n    %s\n",
						c.User.FullName(), c.CreatedAt.Format("Jan 2 15:04"), c.Content)
				}
			}
			return nil
		},
	}
}

func taskProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress [project-id] [task-id] [percent]",
		Short: "Record your progress on a task",
		Long: `Record your own progress on a task. A value of 100 marks your
assignment completed regardless of the --status flag. Managers may
target another assignee's row with --assignee.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := requireAuth(ctx); err != nil {
				return err
			}

			projectID, taskID, err := parseTaskArgs(args[:2])
			if err != nil {
				return err
			}
			progress, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid progress %q", args[2])
			}
			status, _ := cmd.Flags().GetString("status")
			assigneeID, _ := cmd.Flags().GetInt("assignee")

			task, err := wire.TaskService().RecordProgress(ctx, primary.RecordProgressRequest{
				ProjectID:  projectID,
				TaskID:     taskID,
				AssigneeID: assigneeID,
				Progress:   progress,
				Status:     status,
			})
			if err != nil {
				return presentError(err)
			}

			fmt.Printf("✓ Progress recorded on task %d\n", task.ID)
			fmt.Printf("  Team progress is now %s\n", overallProgressLabel(task))
			return nil
		},
	}
	cmd.Flags().String("status", "", "Assignment status (pending, in_progress, under_review, completed)")
	cmd.Flags().Int("assignee", 0, "Target another assignee's row (managers only)")
	return cmd
}

func taskAcceptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accept [project-id] [task-id]",
		Short: "Accept a completed task, locking further changes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := requireAuth(ctx); err != nil {
				return err
			}

			projectID, taskID, err := parseTaskArgs(args)
			if err != nil {
				return err
			}

			task, err := wire.TaskService().AcceptTask(ctx, projectID, taskID)
			if err != nil {
				return presentError(err)
			}

			fmt.Printf("✓ Accepted task %d: %s\n", task.ID, task.Title)
			fmt.Println("  Assignee progress is now locked.")
			return nil
		},
	}
}

func taskAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign [project-id] [task-id] [user-id...]",
		Short: "Replace a task's assignee set (managers only)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := requireAuth(ctx); err != nil {
				return err
			}

			projectID, taskID, err := parseTaskArgs(args[:2])
			if err != nil {
				return err
			}
			userIDs := make([]int, 0, len(args)-2)
			for _, arg := range args[2:] {
				id, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid user id %q", arg)
				}
				userIDs = append(userIDs, id)
			}

			task, err := wire.TaskService().AssignUsers(ctx, projectID, taskID, userIDs)
			if err != nil {
				return presentError(err)
			}

			fmt.Printf("✓ Task %d now has %d assignee(s)\n", task.ID, len(task.Assignees))
			return nil
		},
	}
}

func taskCommentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comment [project-id] [task-id] [text]",
		Short: "Add a comment to a task",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := requireAuth(ctx); err != nil {
				return err
			}

			projectID, taskID, err := parseTaskArgs(args[:2])
			if err != nil {
				return err
			}

			task, err := wire.TaskService().AddComment(ctx, projectID, taskID, args[2])
			if err != nil {
				return presentError(err)
			}

			fmt.Printf("✓ Comment added to task %d (%d total)\n", task.ID, len(task.Comments))
			return nil
		},
	}
}

func parseTaskArgs(args []string) (projectID, taskID int, err error) {
	projectID, err = strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid project id %q", args[0])
	}
	taskID, err = strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid task id %q", args[1])
	}
	return projectID, taskID, nil
}

func printTaskTable(list *primary.TaskList) {
	if len(list.Tasks) == 0 {
		fmt.Println("No tasks found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPRIORITY\tSTATUS\tTEAM\tASSIGNEES\tDUE")
	for _, t := range list.Tasks {
		accepted := ""
		if t.IsAccepted() {
			accepted = " ✔"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s%s\t%s\t%d\t%s\n",
			t.ID, t.Title, formatPriority(t.Priority), formatTaskStatus(t.Status), accepted,
			overallProgressLabel(t), len(t.Assignees), formatDue(t))
	}
	w.Flush()
	printPageFooter(list)
}

func printPageFooter(list *primary.TaskList) {
	if list.Total > len(list.Tasks) && list.PerPage > 0 {
		fmt.Printf("\nPage %d — showing %d of %d tasks\n", list.Page, len(list.Tasks), list.Total)
	}
}

func formatDue(t *models.Task) string {
	if t.DueDate == nil {
		return "-"
	}
	due := t.DueDate.Format("2006-01-02")
	if t.IsOverdue(time.Now()) {
		return color.New(color.FgRed).Sprintf("%s (overdue)", due)
	}
	return due
}
