// Package icongrid packs fixed size children into rows and columns inside a
// panel container.
package icongrid

import (
	"log/slog"
	"slices"

	"github.com/ItsNotGoodName/waterline/internal/geom"
	"github.com/ItsNotGoodName/waterline/internal/loop"
)

// Widget is a child owned by the caller. The grid only shows, hides and
// places it.
type Widget interface {
	Show()
	Hide()
	Allocate(r geom.Rect)
}

type Geometry struct {
	Orientation geom.Orientation
	ChildWidth  int
	ChildHeight int
	Spacing     int
	Border      int
	// TargetDimension is the size available perpendicular to the orientation.
	TargetDimension int
}

type element struct {
	widget       Widget
	visible      bool
	deferredHide bool
	placed       bool
	rect         geom.Rect
}

type Grid struct {
	sched    loop.Scheduler
	geometry Geometry
	expand   bool

	elements   []*element
	allocation geom.Rect

	rows        int
	columns     int
	childWidth  int
	childHeight int

	deferCount       int
	dirty            bool
	childrenChanged  bool
	dimensionChanged bool
	layoutHandle     loop.Handle
	layoutPasses     int
}

func New(sched loop.Scheduler, geometry Geometry) *Grid {
	g := &Grid{
		sched:       sched,
		geometry:    geometry,
		childWidth:  geometry.ChildWidth,
		childHeight: geometry.ChildHeight,
	}
	g.calculateDimensions()
	return g
}

func (g *Grid) find(w Widget) int {
	return slices.IndexFunc(g.elements, func(e *element) bool { return e.widget == w })
}

// Add appends w.
func (g *Grid) Add(w Widget, visible bool) {
	if g.find(w) != -1 {
		return
	}

	g.elements = append(g.elements, &element{widget: w, visible: visible})
	if visible {
		w.Show()
	} else {
		w.Hide()
	}
	g.childrenChanged = true
	g.demandResize()
}

// Remove unlinks w. Untracked widgets are ignored.
func (g *Grid) Remove(w Widget) {
	idx := g.find(w)
	if idx == -1 {
		return
	}

	g.elements = slices.Delete(g.elements, idx, idx+1)
	w.Hide()
	g.childrenChanged = true
	g.demandResize()
}

func (g *Grid) SetVisible(w Widget, visible bool) {
	idx := g.find(w)
	if idx == -1 {
		return
	}

	e := g.elements[idx]
	if e.visible == visible {
		return
	}

	e.visible = visible
	g.childrenChanged = true
	if visible {
		e.deferredHide = false
		w.Show()
	} else if g.deferCount > 0 {
		e.deferredHide = true
	} else {
		e.placed = false
		w.Hide()
	}
	g.demandResize()
}

func (g *Grid) Visible(w Widget) bool {
	idx := g.find(w)
	if idx == -1 {
		return false
	}
	return g.elements[idx].visible
}

// PlaceAfter moves w right behind after, or to the head when after is nil.
func (g *Grid) PlaceAfter(w, after Widget) {
	idx := g.find(w)
	if idx == -1 {
		return
	}

	target := 0
	if after != nil {
		afterIdx := g.find(after)
		if afterIdx == -1 || afterIdx == idx {
			return
		}
		target = afterIdx + 1
		if afterIdx > idx {
			target = afterIdx
		}
	}
	g.move(idx, target)
}

// Reorder moves w to position.
func (g *Grid) Reorder(w Widget, position int) {
	idx := g.find(w)
	if idx == -1 {
		return
	}
	g.move(idx, max(0, min(position, len(g.elements)-1)))
}

func (g *Grid) move(from, to int) {
	if from == to {
		return
	}

	e := g.elements[from]
	g.elements = slices.Delete(g.elements, from, from+1)
	g.elements = slices.Insert(g.elements, to, e)
	g.childrenChanged = true
	g.demandResize()
}

// Widgets returns the children in display order.
func (g *Grid) Widgets() []Widget {
	widgets := make([]Widget, 0, len(g.elements))
	for _, e := range g.elements {
		widgets = append(widgets, e.widget)
	}
	return widgets
}

// DeferUpdates holds back relayouts and hides until the matching
// ResumeUpdates.
func (g *Grid) DeferUpdates() {
	g.deferCount++
}

func (g *Grid) ResumeUpdates() {
	if g.deferCount == 0 {
		return
	}
	g.deferCount--
	if g.deferCount > 0 {
		return
	}

	for _, e := range g.elements {
		if e.deferredHide {
			e.deferredHide = false
			e.placed = false
			e.widget.Hide()
		}
	}

	if g.dirty {
		g.dirty = false
		g.demandResize()
	}
}

func (g *Grid) Deferred() bool {
	return g.deferCount > 0
}

func (g *Grid) SetGeometry(geometry Geometry) {
	if geometry == g.geometry {
		return
	}

	g.geometry = geometry
	g.childWidth, g.childHeight = geometry.ChildWidth, geometry.ChildHeight
	g.dimensionChanged = true
	g.demandResize()
}

func (g *Grid) Geometry() Geometry {
	return g.geometry
}

// SetExpand grows children to fill spare room along the orientation.
func (g *Grid) SetExpand(expand bool) {
	if expand == g.expand {
		return
	}
	g.expand = expand
	g.dimensionChanged = true
	g.demandResize()
}

// Allocate sets the container area the grid lays out into.
func (g *Grid) Allocate(r geom.Rect) {
	if r == g.allocation {
		return
	}
	g.allocation = r
	g.dimensionChanged = true
	g.demandResize()
}

func (g *Grid) Rows() int {
	return g.rows
}

func (g *Grid) Columns() int {
	return g.columns
}

// ChildSize is the size children were last placed with.
func (g *Grid) ChildSize() (width, height int) {
	return g.childWidth, g.childHeight
}

// RequestedSize is the minimal bounding box for the visible children at
// their requested size.
func (g *Grid) RequestedSize() (width, height int) {
	geo := g.geometry
	if g.columns > 0 {
		width = g.columns*(geo.ChildWidth+geo.Spacing) - geo.Spacing
	}
	if g.rows > 0 {
		height = g.rows*(geo.ChildHeight+geo.Spacing) - geo.Spacing
	}
	return width + 2*geo.Border, height + 2*geo.Border
}

// LayoutPasses counts placement passes that actually moved children.
func (g *Grid) LayoutPasses() int {
	return g.layoutPasses
}

// Destroy cancels pending work and hides every child.
func (g *Grid) Destroy() {
	if g.layoutHandle != nil {
		g.layoutHandle.Cancel()
		g.layoutHandle = nil
	}
	for _, e := range g.elements {
		e.widget.Hide()
	}
	g.elements = nil
	g.deferCount = 0
}

func (g *Grid) visibleCount() int {
	n := 0
	for _, e := range g.elements {
		if e.visible {
			n++
		}
	}
	return n
}

func (g *Grid) demandResize() {
	if g.deferCount > 0 {
		g.dirty = true
		return
	}
	if g.layoutHandle != nil {
		return
	}
	g.layoutHandle = g.sched.Idle(func() {
		g.layoutHandle = nil
		g.layout()
	})
}

func (g *Grid) calculateDimensions() {
	rows, columns := Dimensions(g.geometry, g.visibleCount())
	if rows != g.rows || columns != g.columns {
		g.rows, g.columns = rows, columns
		g.dimensionChanged = true
	}
}

// Dimensions fits as many rows (horizontal) or columns (vertical) into the
// target dimension as possible and grows the other axis to hold visible.
func Dimensions(geo Geometry, visible int) (rows, columns int) {
	fit := func(child int) int {
		n := 0
		if child+geo.Spacing != 0 {
			n = (geo.TargetDimension + geo.Spacing - 2*geo.Border) / (child + geo.Spacing)
		}
		return max(n, 1)
	}

	if geo.Orientation == geom.Horizontal {
		rows = fit(geo.ChildHeight)
		columns = (visible + rows - 1) / rows
		if columns == 1 && rows > visible {
			rows = visible
		}
	} else {
		columns = fit(geo.ChildWidth)
		rows = (visible + columns - 1) / columns
		if rows == 1 && columns > visible {
			columns = visible
		}
	}
	return rows, columns
}

// fitAxis shares a surplus or deficit equally between count children.
func fitAxis(available, count, size, spacing int, expand bool) (int, int) {
	if count <= 0 {
		return size, 0
	}

	needed := count*size + (count-1)*spacing
	switch {
	case needed > available:
		return max((available-(count-1)*spacing)/count, 1), 0
	case needed < available && expand:
		return (available - (count-1)*spacing) / count, 0
	default:
		return size, (available - needed) / 2
	}
}

func (g *Grid) layout() {
	g.calculateDimensions()
	if !g.childrenChanged && !g.dimensionChanged {
		return
	}
	g.childrenChanged, g.dimensionChanged = false, false

	geo := g.geometry
	alloc := g.allocation
	if alloc.Empty() {
		return
	}

	var (
		width, height int
		offX, offY    int
	)
	if geo.Orientation == geom.Horizontal {
		width, offX = fitAxis(alloc.W-2*geo.Border, g.columns, geo.ChildWidth, geo.Spacing, g.expand)
		height, offY = fitAxis(alloc.H-2*geo.Border, g.rows, geo.ChildHeight, geo.Spacing, false)
	} else {
		height, offY = fitAxis(alloc.H-2*geo.Border, g.rows, geo.ChildHeight, geo.Spacing, g.expand)
		width, offX = fitAxis(alloc.W-2*geo.Border, g.columns, geo.ChildWidth, geo.Spacing, false)
	}
	g.childWidth, g.childHeight = width, height

	i := 0
	for _, e := range g.elements {
		if !e.visible {
			continue
		}

		var row, col int
		if geo.Orientation == geom.Horizontal {
			col, row = i/g.rows, i%g.rows
		} else {
			row, col = i/g.columns, i%g.columns
		}
		i++

		rect := geom.Rect{
			X: alloc.X + geo.Border + offX + col*(width+geo.Spacing),
			Y: alloc.Y + geo.Border + offY + row*(height+geo.Spacing),
			W: width,
			H: height,
		}
		if e.placed && rect == e.rect {
			continue
		}
		e.placed, e.rect = true, rect
		e.widget.Allocate(rect)
	}

	g.layoutPasses++
	slog.Debug("icongrid: layout", "rows", g.rows, "columns", g.columns, "child", geom.Rect{W: width, H: height}, "allocation", alloc)
}
