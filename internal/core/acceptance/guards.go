// Package acceptance contains the pure business logic for the one-way
// task acceptance lock. A task moves from open to accepted exactly
// once; there is no transition back.
package acceptance

import (
	"fmt"

	"github.com/example/taskflow/internal/core/fault"
	"github.com/example/taskflow/internal/models"
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

// AcceptContext provides context for accept transition guards.
type AcceptContext struct {
	TaskID          int
	TaskStatus      string
	AlreadyAccepted bool
	CanManage       bool // admin or incharge relationship on the task's project
}

// CanAccept evaluates whether the accept transition may fire.
// Rules:
// - Caller must hold management rights on the task's project
// - Task-level status must be completed
// - The task must not already be accepted; a repeat accept fails
//   explicitly rather than passing as a silent no-op
func CanAccept(ctx AcceptContext) GuardResult {
	if !ctx.CanManage {
		return GuardResult{
			Kind:   fault.KindForbidden,
			Reason: fmt.Sprintf("only an admin or the project incharge may accept task %d", ctx.TaskID),
		}
	}

	if ctx.AlreadyAccepted {
		return GuardResult{
			Kind:   fault.KindAlreadyAccepted,
			Reason: fmt.Sprintf("task %d has already been accepted", ctx.TaskID),
		}
	}

	if ctx.TaskStatus != models.TaskStatusCompleted {
		return GuardResult{
			Kind:   fault.KindValidation,
			Reason: fmt.Sprintf("task %d must be completed before acceptance (current status: %s)", ctx.TaskID, ctx.TaskStatus),
		}
	}

	return GuardResult{Allowed: true}
}
