// Package ledger contains the pure business logic for assignment
// progress tracking. Guards are pure functions that evaluate
// preconditions without side effects; aggregation is in ledger.go.
package ledger

import (
	"fmt"

	"github.com/example/taskflow/internal/core/fault"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Kind    fault.Kind
	Reason  string
}

// Error converts the guard result to a classified error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fault.New(r.Kind, "%s", r.Reason)
}

// RecordProgressContext provides context for progress write guards.
type RecordProgressContext struct {
	TaskID       int
	AssigneeID   int  // owner of the assignment row being written
	IsAssigned   bool // assignee is on the task's assignee set
	TaskAccepted bool

	CallerID  int
	CanManage bool // admin or incharge relationship on the task's project

	Progress int
}

// CanRecordProgress evaluates whether a progress write may be issued.
// Rules:
// - Progress must be an integer in [0,100]
// - The task must not be accepted (acceptance is a hard freeze)
// - The target must be on the assignee set
// - The caller must own the row, or hold management rights as an override
func CanRecordProgress(ctx RecordProgressContext) GuardResult {
	if ctx.Progress < 0 || ctx.Progress > 100 {
		return GuardResult{
			Kind:   fault.KindValidation,
			Reason: fmt.Sprintf("progress must be between 0 and 100, got %d", ctx.Progress),
		}
	}

	if ctx.TaskAccepted {
		return GuardResult{
			Kind:   fault.KindLocked,
			Reason: fmt.Sprintf("task %d has been accepted and can no longer be modified", ctx.TaskID),
		}
	}

	if !ctx.IsAssigned {
		return GuardResult{
			Kind:   fault.KindNotFound,
			Reason: fmt.Sprintf("user %d is not assigned to task %d", ctx.AssigneeID, ctx.TaskID),
		}
	}

	if ctx.CallerID != ctx.AssigneeID && !ctx.CanManage {
		return GuardResult{
			Kind:   fault.KindForbidden,
			Reason: fmt.Sprintf("user %d may not update progress for user %d", ctx.CallerID, ctx.AssigneeID),
		}
	}

	return GuardResult{Allowed: true}
}
