package app

import (
	"testing"

	"github.com/example/taskflow/internal/models"
)

func TestMutationSettleReplacesWholesale(t *testing.T) {
	prior := fixtureTask(5, models.TaskStatusInProgress, 2, 3)
	fresh := fixtureTask(5, models.TaskStatusInProgress, 2)
	fresh.Assignees[0].Pivot.Progress = 80

	m := beginMutation(prior)
	if m.settled() {
		t.Error("pending mutation must not read as settled")
	}

	got := m.settle(fresh)
	if got != fresh {
		t.Error("settle should hand back the server payload, not a merge")
	}
	if !m.settled() {
		t.Error("settled mutation should read as settled")
	}
	// The prior snapshot is never mutated in place.
	if len(prior.Assignees) != 2 || prior.Assignees[0].Pivot.Progress != 0 {
		t.Errorf("prior snapshot changed: %+v", prior.Assignees)
	}
}

func TestMutationRollbackRestoresSnapshot(t *testing.T) {
	prior := fixtureTask(5, models.TaskStatusInProgress, 2)

	m := beginMutation(prior)
	got := m.rollback()
	if got != prior {
		t.Error("rollback should hand back the pre-request snapshot")
	}
	if m.settled() {
		t.Error("rolled-back mutation must not read as settled")
	}
}
