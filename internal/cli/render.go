package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"

	"github.com/example/taskflow/internal/core/fault"
	"github.com/example/taskflow/internal/core/ledger"
	"github.com/example/taskflow/internal/core/segment"
	"github.com/example/taskflow/internal/models"
)

// barWidth is the character width of the stacked progress bar.
const barWidth = 40

// paletteAttrs maps the segment palette onto terminal colors, index
// for index.
var paletteAttrs = []color.Attribute{
	color.FgGreen,     // Emerald
	color.FgBlue,      // Blue
	color.FgMagenta,   // Violet
	color.FgRed,       // Rose
	color.FgYellow,    // Amber
	color.FgCyan,      // Cyan
	color.FgHiMagenta, // Fuchsia
	color.FgHiGreen,   // Lime
}

func segmentColor(paletteIndex int) *color.Color {
	return color.New(paletteAttrs[paletteIndex%len(paletteAttrs)])
}

// renderTeamProgress prints the stacked team-progress bar with its
// legend. Tasks without assignees fall back to the plain task-level
// progress indicator.
func renderTeamProgress(task *models.Task, viewerID int) {
	layout := segment.Allocate(task.Assignees, viewerID)
	if len(layout.Legend) == 0 {
		renderPlainProgress(task.Progress)
		return
	}

	fmt.Printf("Team progress: %d%%\n", int(math.Round(layout.Total)))

	var bar strings.Builder
	filled := 0
	for _, s := range layout.Stack {
		// Cell count per segment follows the cumulative offset so the
		// bar closes exactly on the total.
		end := int(math.Round((s.Start + s.Width) / 100 * barWidth))
		if end > barWidth {
			end = barWidth
		}
		cells := end - filled
		if cells <= 0 {
			continue
		}
		bar.WriteString(segmentColor(s.PaletteIndex).Sprint(strings.Repeat("█", cells)))
		filled = end
	}
	if filled < barWidth {
		bar.WriteString(strings.Repeat("░", barWidth-filled))
	}
	fmt.Printf("  [%s]\n", bar.String())

	// Legend over the canonical order: every assignee appears, zero
	// contributors included.
	for _, s := range layout.Legend {
		name := s.Name
		if s.IsViewer {
			name = "You"
		}
		marker := segmentColor(s.PaletteIndex).Sprint("■")
		fmt.Printf("  %s %-24s %3d%%  %s\n", marker, name, s.Progress, formatAssignmentStatus(s.Status))
	}
}

// renderPlainProgress prints the generic single-color bar used for
// assignee-less tasks.
func renderPlainProgress(progress int) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	filled := progress * barWidth / 100
	fmt.Printf("Progress: %d%%\n", progress)
	fmt.Printf("  [%s%s]\n",
		color.New(color.FgGreen).Sprint(strings.Repeat("█", filled)),
		strings.Repeat("░", barWidth-filled),
	)
}

// formatAssignmentStatus colors an assignment status for the legend.
func formatAssignmentStatus(status string) string {
	label := strings.ReplaceAll(status, "_", " ")
	switch status {
	case models.AssignmentStatusCompleted:
		return color.New(color.FgGreen).Sprint(label)
	case models.AssignmentStatusInProgress:
		return color.New(color.FgBlue).Sprint(label)
	case models.AssignmentStatusUnderReview:
		return color.New(color.FgYellow).Sprint(label)
	default:
		return label
	}
}

// formatTaskStatus colors a task-level status for listings.
func formatTaskStatus(status string) string {
	label := strings.ReplaceAll(status, "_", " ")
	switch status {
	case models.TaskStatusCompleted:
		return color.New(color.FgGreen).Sprint(label)
	case models.TaskStatusInProgress:
		return color.New(color.FgBlue).Sprint(label)
	case models.TaskStatusUnderReview:
		return color.New(color.FgYellow).Sprint(label)
	case models.TaskStatusCancelled:
		return color.New(color.FgHiBlack).Sprint(label)
	default:
		return label
	}
}

// formatPriority colors a task priority for listings.
func formatPriority(priority string) string {
	switch priority {
	case models.PriorityUrgent:
		return color.New(color.FgRed, color.Bold).Sprint(priority)
	case models.PriorityHigh:
		return color.New(color.FgRed).Sprint(priority)
	case models.PriorityMedium:
		return color.New(color.FgYellow).Sprint(priority)
	default:
		return priority
	}
}

// overallProgressLabel renders the aggregate for a task row.
func overallProgressLabel(task *models.Task) string {
	return fmt.Sprintf("%d%%", ledger.OverallProgress(task))
}

// presentError prints a failure in the presentation its kind calls
// for. A Locked failure is a blocking banner: the local view is stale
// or the controls should have been disabled, and a refresh will
// self-correct it. AlreadyAccepted reads as success for display; the
// anomaly was already logged by the service. The returned error is nil
// when the command should exit zero.
func presentError(err error) error {
	if err == nil {
		return nil
	}
	switch fault.KindOf(err) {
	case fault.KindLocked:
		banner := color.New(color.FgWhite, color.BgRed, color.Bold)
		banner.Println(" TASK LOCKED ")
		fmt.Println(err.Error())
		fmt.Println("This task has been accepted and can no longer be modified. Run 'taskflow task show' to refresh.")
		return ErrSilentFailure
	case fault.KindAlreadyAccepted:
		fmt.Println("Task was already accepted.")
		return nil
	case fault.KindForbidden:
		color.New(color.FgYellow).Printf("Not permitted: %s\n", err.Error())
		return ErrSilentFailure
	case fault.KindValidation:
		color.New(color.FgYellow).Printf("Invalid input: %s\n", err.Error())
		return ErrSilentFailure
	case fault.KindUnauthorized:
		fmt.Println("Your session has expired. Run 'taskflow login' to sign in again.")
		return ErrSilentFailure
	default:
		return err
	}
}

// ErrSilentFailure signals a non-zero exit after the failure has
// already been presented.
var ErrSilentFailure = fmt.Errorf("command failed")
