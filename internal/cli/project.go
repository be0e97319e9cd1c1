package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/taskflow/internal/models"
	"github.com/example/taskflow/internal/wire"
)

// ProjectCmd returns the project command group.
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "View projects",
	}

	cmd.AddCommand(projectListCmd())
	cmd.AddCommand(projectShowCmd())

	return cmd
}

func projectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := requireAuth(ctx); err != nil {
				return err
			}

			projects, err := wire.ProjectService().ListProjects(ctx)
			if err != nil {
				return presentError(err)
			}

			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS\tPROGRESS\tMEMBERS")
			for _, p := range projects {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d%%\t%d\n",
					p.ID, p.Name, p.Status, p.Progress, len(p.Users))
			}
			w.Flush()
			return nil
		},
	}
}

func projectShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [project-id]",
		Short: "Show a project and its members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			state, err := requireAuth(ctx)
			if err != nil {
				return err
			}

			projectID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}

			project, err := wire.ProjectService().GetProject(ctx, projectID)
			if err != nil {
				return presentError(err)
			}

			fmt.Printf("Project %d: %s\n", project.ID, project.Name)
			if project.Description != "" {
				fmt.Printf("  %s\n", project.Description)
			}
			fmt.Printf("Status: %s   Progress: %d%%\n", project.Status, project.Progress)

			if state.Capabilities.CanManageProject(project) {
				fmt.Println("You can manage tasks on this project.")
			}

			if len(project.Users) > 0 {
				fmt.Printf("\nMembers (%d):\n", len(project.Users))
				for _, m := range project.Users {
					tag := ""
					if m.Pivot.Role == models.MemberRoleIncharge {
						tag = " (incharge)"
					}
					fmt.Printf("  %s%s\n", m.FullName(), tag)
				}
			}
			return nil
		},
	}
}
