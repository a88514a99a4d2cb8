package graph

import (
	"math"

	"graphview-service/internal/model"
)

// Layout assigns canvas positions to a page's nodes. Implementations
// must be deterministic for identical input.
type Layout interface {
	// Primary places the index-th of total primary entities.
	Primary(index, total int) Position
	// Child places the index-th of total children in a lane, relative
	// to its parent's position.
	Child(parent Position, lane, index, total int) Position
}

// RadialLayout spreads primary entities evenly around a circle and
// stacks children beside their parent, centered on the parent's row.
type RadialLayout struct {
	CenterX      float64
	CenterY      float64
	Radius       float64
	ChildOffsetX float64
	ChildSpacing float64
}

func (l RadialLayout) Primary(index, total int) Position {
	if total <= 0 {
		return Position{X: l.CenterX, Y: l.CenterY}
	}
	angle := float64(index) * 2 * math.Pi / float64(total)
	return Position{
		X: l.CenterX + l.Radius*math.Cos(angle),
		Y: l.CenterY + l.Radius*math.Sin(angle),
	}
}

func (l RadialLayout) Child(parent Position, lane, index, total int) Position {
	return Position{
		X: parent.X + l.ChildOffsetX*float64(lane+1),
		Y: parent.Y + float64(index)*l.ChildSpacing - float64(total)*l.ChildSpacing/2,
	}
}

// LaneLayout stacks primary entities vertically at a fixed x and gives
// every child type its own column.
type LaneLayout struct {
	PrimaryX     float64
	RowHeight    float64
	Lanes        []float64
	ChildSpacing float64
}

func (l LaneLayout) Primary(index, total int) Position {
	return Position{X: l.PrimaryX, Y: float64(index) * l.RowHeight}
}

func (l LaneLayout) Child(parent Position, lane, index, total int) Position {
	x := parent.X
	if lane >= 0 && lane < len(l.Lanes) {
		x = l.Lanes[lane]
	}
	return Position{X: x, Y: parent.Y + float64(index)*l.ChildSpacing}
}

// LayoutFor is the per-page layout configuration: branch offices
// render radially, everything else in lanes.
func LayoutFor(entity model.EntityType) Layout {
	switch entity {
	case model.EntityBranchOffice:
		return RadialLayout{CenterX: 400, CenterY: 300, Radius: 300, ChildOffsetX: 300, ChildSpacing: 100}
	case model.EntityProvider:
		return LaneLayout{PrimaryX: 200, RowHeight: 150, Lanes: []float64{0, 400, 600}, ChildSpacing: 50}
	case model.EntityInvoice:
		return LaneLayout{PrimaryX: 300, RowHeight: 200, Lanes: []float64{600}, ChildSpacing: 80}
	case model.EntityRoute:
		return LaneLayout{PrimaryX: 300, RowHeight: 200, Lanes: []float64{600, 900}, ChildSpacing: 80}
	}
	return LaneLayout{PrimaryX: 200, RowHeight: 150, Lanes: []float64{500, 700}, ChildSpacing: 50}
}
