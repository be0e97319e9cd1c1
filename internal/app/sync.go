package app

import "github.com/example/taskflow/internal/models"

// mutationState tracks one optimistic mutation over a cached task.
type mutationState int

const (
	mutationIdle mutationState = iota
	mutationPending
	mutationSettled
	mutationRolledBack
)

// mutation makes the optimistic-then-reconcile discipline explicit:
// the local view is provisional until the server responds; on success
// the server payload replaces the subtree wholesale, on failure the
// pre-request snapshot stands untouched. Field-by-field merging never
// happens, so local and remote state cannot diverge past one round
// trip.
type mutation struct {
	state mutationState
	prior *models.Task
}

// beginMutation snapshots the pre-request state and moves to pending.
func beginMutation(prior *models.Task) *mutation {
	return &mutation{state: mutationPending, prior: prior}
}

// settle accepts the server's response wholesale.
func (m *mutation) settle(fresh *models.Task) *models.Task {
	m.state = mutationSettled
	return fresh
}

// rollback restores the pre-request snapshot.
func (m *mutation) rollback() *models.Task {
	m.state = mutationRolledBack
	return m.prior
}

// settled reports whether the server response was applied.
func (m *mutation) settled() bool {
	return m.state == mutationSettled
}
