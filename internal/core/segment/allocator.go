// Package segment contains the pure business logic for laying out the
// stacked team-progress bar. The allocator turns a task's canonical
// assignment list into an ordered stack of colored segments whose
// widths sum to the task's overall progress.
package segment

import (
	"github.com/example/taskflow/internal/core/ledger"
	"github.com/example/taskflow/internal/models"
)

// PaletteColor identifies one entry of the fixed segment palette.
type PaletteColor struct {
	Name string
	Hex  string
}

// Palette is the fixed finite color palette cycled across assignees.
// Colors are assigned by position in the canonical assignment list, so
// an assignee keeps the same color no matter how the stack is reordered
// for display.
var Palette = []PaletteColor{
	{Name: "Emerald", Hex: "#10b981"},
	{Name: "Blue", Hex: "#3b82f6"},
	{Name: "Violet", Hex: "#8b5cf6"},
	{Name: "Rose", Hex: "#f43f5e"},
	{Name: "Amber", Hex: "#f59e0b"},
	{Name: "Cyan", Hex: "#06b6d4"},
	{Name: "Fuchsia", Hex: "#d946ef"},
	{Name: "Lime", Hex: "#84cc16"},
}

// Segment is one assignee's share of the stacked bar.
type Segment struct {
	AssigneeID   int
	Name         string
	Progress     int    // the assignee's own progress value
	Status       string // the assignee's own status
	Contribution float64
	PaletteIndex int
	IsViewer     bool

	// Start and Width position the segment in the rendered stack.
	// Zero-contribution segments never reach the stack, so these are
	// only meaningful on Layout.Stack entries.
	Start float64
	Width float64
}

// Layout is the allocator output: the render-order stack plus the
// legend over the canonical order.
type Layout struct {
	// Stack holds segments in render order (viewer last, zero
	// contributions excluded) with cumulative offsets.
	Stack []Segment

	// Legend holds every assignee in canonical order, including those
	// contributing nothing to the stack.
	Legend []Segment

	// Total is the sum of all contributions, equal to the task's
	// aggregate progress by construction.
	Total float64
}

// Allocate computes the stacked layout for a task's assignees as seen
// by viewerID. The assignee list is taken as canonical: color identity
// is keyed by position in it, and it is never reordered in place. An
// empty list yields a nil stack; callers fall back to the task-level
// progress indicator.
func Allocate(assignees []models.Assignee, viewerID int) Layout {
	if len(assignees) == 0 {
		return Layout{}
	}

	n := float64(len(assignees))
	legend := make([]Segment, len(assignees))
	for i, a := range assignees {
		status := ledger.DeriveDisplayStatus(&a.Pivot)
		legend[i] = Segment{
			AssigneeID:   a.ID,
			Name:         a.FullName(),
			Progress:     a.Pivot.Progress,
			Status:       status,
			Contribution: float64(a.Pivot.Progress) / n,
			PaletteIndex: i % len(Palette),
			IsViewer:     a.ID == viewerID,
		}
	}

	// Render-order view: a copy sorted so the viewer's segment lands
	// last (frontmost). This affects z-order only; contributions and
	// palette indices were fixed above.
	ordered := make([]Segment, 0, len(legend))
	for _, s := range legend {
		if !s.IsViewer {
			ordered = append(ordered, s)
		}
	}
	for _, s := range legend {
		if s.IsViewer {
			ordered = append(ordered, s)
		}
	}

	// Walk the render order accumulating contributions into cumulative
	// offsets; the final offset equals the aggregate progress by
	// construction. Zero-contribution segments are skipped in the stack
	// but were already captured in the legend.
	var total float64
	var stack []Segment
	for _, s := range ordered {
		if s.Contribution > 0 {
			s.Start = total
			s.Width = s.Contribution
			stack = append(stack, s)
		}
		total += s.Contribution
	}

	return Layout{Stack: stack, Legend: legend, Total: total}
}

// Color returns the palette entry for a segment.
func (s Segment) Color() PaletteColor {
	return Palette[s.PaletteIndex]
}
