package models

import "time"

// Comment is an append-only note under a task. Comments are immutable
// once created; deletion is a separate privileged backend operation the
// client does not issue.
type Comment struct {
	ID        int       `json:"id"`
	TaskID    int       `json:"task_id"`
	User      User      `json:"user"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
