package ledger

import (
	"math"

	"github.com/example/taskflow/internal/models"
)

// Normalize applies the authoritative progress/status derivation to a
// single write. A progress of 100 forces status to completed regardless
// of any explicitly supplied status; a caller may set progress to 100
// without naming a status at all. An empty status with progress below
// 100 is left for the caller's current value.
//
// This is a deliberate normalization, not a silent override: reaching
// 100 always means completed, on every write.
func Normalize(progress int, status string) (int, string) {
	if progress == 100 {
		return progress, models.AssignmentStatusCompleted
	}
	return progress, status
}

// AggregateProgress returns the arithmetic mean of all assignment
// progress values for a task, carrying full precision. A task with no
// assignees aggregates to 0; that is a defined result, not an error.
func AggregateProgress(assignees []models.Assignee) float64 {
	if len(assignees) == 0 {
		return 0
	}
	sum := 0.0
	for _, a := range assignees {
		sum += float64(a.Pivot.Progress)
	}
	return sum / float64(len(assignees))
}

// DisplayProgress rounds the aggregate for presentation.
func DisplayProgress(assignees []models.Assignee) int {
	return int(math.Round(AggregateProgress(assignees)))
}

// OverallProgress resolves the progress shown for a task: the mean of
// the assignment rows when assignees exist, otherwise the legacy
// task-level progress field retained for assignee-less tasks.
func OverallProgress(task *models.Task) int {
	if len(task.Assignees) == 0 {
		return task.Progress
	}
	return DisplayProgress(task.Assignees)
}

// DeriveDisplayStatus returns an assignment's status as stored. The
// only derivation in the system is the completed-at-100 normalization
// applied at write time; reads add nothing further. An empty status is
// shown as pending, matching rows the backend created without one.
func DeriveDisplayStatus(a *models.Assignment) string {
	if a.Status == "" {
		return models.AssignmentStatusPending
	}
	return a.Status
}
