package models

import "time"

// Task represents a task with its embedded assignment rows.
// Assignees carry a per-user relationship payload (pivot) with that
// user's own progress and status, independent of the task-level Status
// field which is manager-set.
type Task struct {
	ID          int        `json:"id"`
	ProjectID   int        `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Progress    int        `json:"progress"` // legacy task-level field, drives display for assignee-less tasks
	DueDate     *time.Time `json:"due_date"`
	AcceptedAt  *time.Time `json:"accepted_at"`
	Accepter    *User      `json:"accepter"`
	Assignees   []Assignee `json:"assignees"`
	Comments    []Comment  `json:"comments"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Assignee is a user assigned to a task together with that user's
// assignment row.
type Assignee struct {
	User
	Pivot Assignment `json:"pivot"`
}

// Assignment is the per-user relationship record under a task.
type Assignment struct {
	Progress int    `json:"progress"`
	Status   string `json:"status"`
}

// Task status constants (task-level, manager-set)
const (
	TaskStatusPending     = "pending"
	TaskStatusInProgress  = "in_progress"
	TaskStatusUnderReview = "under_review"
	TaskStatusCompleted   = "completed"
	TaskStatusCancelled   = "cancelled"
)

// Assignment status constants. Cancelled does not exist at the
// assignment level; it is a task-level state only.
const (
	AssignmentStatusPending     = "pending"
	AssignmentStatusInProgress  = "in_progress"
	AssignmentStatusUnderReview = "under_review"
	AssignmentStatusCompleted   = "completed"
)

// Task priority constants
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// IsAccepted reports whether the one-way acceptance lock has been applied.
func (t *Task) IsAccepted() bool {
	return t.AcceptedAt != nil
}

// AssignmentFor returns the assignment row for userID, or nil if the
// user is not on the assignee set.
func (t *Task) AssignmentFor(userID int) *Assignment {
	for i := range t.Assignees {
		if t.Assignees[i].ID == userID {
			return &t.Assignees[i].Pivot
		}
	}
	return nil
}

// IsOverdue reports whether the task has a due date in the past and is
// not yet completed or cancelled.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	if t.Status == TaskStatusCompleted || t.Status == TaskStatusCancelled {
		return false
	}
	return t.DueDate.Before(now)
}
