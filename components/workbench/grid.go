package workbench

import (
	"errors"
	"math"
)

// GridColumns is the fixed canvas width in cells.
const GridColumns = 12

// MinSpan is the floor for both widget dimensions during a resize.
const MinSpan = 2

// GridGeometry converts between pointer pixels and grid cells. CanvasWidth is
// the rendered width of the canvas; the column width is derived from it.
type GridGeometry struct {
	CanvasWidth float64
	RowHeight   float64
	Gutter      float64
}

// CellWidth returns the horizontal pixel size of one grid step.
func (g GridGeometry) CellWidth() float64 {
	return (g.CanvasWidth-float64(GridColumns-1)*g.Gutter)/GridColumns + g.Gutter
}

// CellHeight returns the vertical pixel size of one grid step.
func (g GridGeometry) CellHeight() float64 {
	return g.RowHeight + g.Gutter
}

// Pointer is a raw pointer position in pixels.
type Pointer struct {
	X float64
	Y float64
}

// GestureKind selects which dimension pair a gesture mutates.
type GestureKind int

const (
	// GestureMove drags the widget origin; the span stays fixed.
	GestureMove GestureKind = iota
	// GestureResize drags the widget span; the origin stays fixed.
	GestureResize
)

// ErrGestureActive rejects starting a second gesture before the first ends.
var ErrGestureActive = errors.New("workbench: a gesture is already active")

// ErrFixedSpan rejects resize gestures on widgets whose span is fixed.
var ErrFixedSpan = errors.New("workbench: widget span is fixed")

// LayoutSink receives every candidate layout as it is produced. There is no
// separate preview stage: each pointer move writes the widget's persisted
// layout, so every intermediate layout already satisfies the grid invariants.
type LayoutSink func(widgetID string, layout WidgetLayout)

// GridEngine translates one pointer gesture at a time into clamped integer
// cell layouts. It is driven from the UI event loop and performs no locking;
// all calls must come from a single goroutine.
//
// Widgets may overlap freely: the engine does no collision detection or
// auto-reflow. Overlapping widgets simply render stacked.
type GridEngine struct {
	geom   GridGeometry
	commit LayoutSink

	active   bool
	kind     GestureKind
	widgetID string
	start    Pointer
	origin   WidgetLayout
	last     WidgetLayout
}

// NewGridEngine builds an engine committing layouts through sink.
func NewGridEngine(geom GridGeometry, sink LayoutSink) *GridEngine {
	if sink == nil {
		sink = func(string, WidgetLayout) {}
	}
	return &GridEngine{geom: geom, commit: sink}
}

// SetCanvasWidth tracks canvas resizes between gestures.
func (e *GridEngine) SetCanvasWidth(width float64) {
	e.geom.CanvasWidth = width
}

// Active reports whether a gesture is in flight.
func (e *GridEngine) Active() bool { return e.active }

// Begin starts a gesture on the widget's current layout. Gestures against a
// system-owned dashboard never start; callers pass that flag from the store.
// KPI tiles keep their fixed span, so resize gestures on them are refused.
func (e *GridEngine) Begin(kind GestureKind, widget DashboardWidget, at Pointer, systemOwned bool) error {
	if systemOwned {
		return ErrSystemOwned
	}
	if kind == GestureResize && widget.Type == WidgetKPI {
		return ErrFixedSpan
	}
	if e.active {
		return ErrGestureActive
	}
	e.active = true
	e.kind = kind
	e.widgetID = widget.ID
	e.start = at
	e.origin = widget.Layout
	e.last = widget.Layout
	return nil
}

// Update converts the pointer delta since Begin into a clamped candidate
// layout, commits it immediately, and returns it. Updates outside an active
// gesture are ignored.
func (e *GridEngine) Update(at Pointer) (WidgetLayout, bool) {
	if !e.active {
		return WidgetLayout{}, false
	}
	dx := roundCells(at.X-e.start.X, e.geom.CellWidth())
	dy := roundCells(at.Y-e.start.Y, e.geom.CellHeight())

	candidate := e.origin
	switch e.kind {
	case GestureMove:
		candidate.X = clampInt(e.origin.X+dx, 0, GridColumns-e.origin.W)
		candidate.Y = maxInt(0, e.origin.Y+dy)
	case GestureResize:
		candidate.W = clampInt(e.origin.W+dx, MinSpan, GridColumns-e.origin.X)
		candidate.H = maxInt(MinSpan, e.origin.H+dy)
	}
	e.last = candidate
	e.commit(e.widgetID, candidate)
	return candidate, true
}

// End commits the last candidate and returns to idle. Releasing the pointer
// anywhere (including outside the canvas, or via pointer-capture loss) must
// route here; a second End is a harmless no-op so the handler can be wired to
// both pointer-up and blur without double-committing.
func (e *GridEngine) End() (WidgetLayout, bool) {
	if !e.active {
		return WidgetLayout{}, false
	}
	e.active = false
	e.commit(e.widgetID, e.last)
	return e.last, true
}

func roundCells(pixels, cellSize float64) int {
	if cellSize <= 0 {
		return 0
	}
	return int(math.Round(pixels / cellSize))
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
