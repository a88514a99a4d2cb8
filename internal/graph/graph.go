// Package graph turns pages of supply-chain entities into a renderable
// node/edge graph and keeps that graph consistent while the user
// creates entities, draws connections and drags nodes around.
package graph

import "graphview-service/internal/model"

// Position is a node's canvas placement.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one rendered graph vertex. ID is the backend's entity
// identity and is never generated client-side.
type Node struct {
	ID       string           `json:"id"`
	Type     model.EntityType `json:"type"`
	Position Position         `json:"position"`
	Selected bool             `json:"selected,omitempty"`
	Data     any              `json:"data"`
}

// Edge is one rendered directed connection. Label carries the
// relationship-type discriminant shown on the edge.
type Edge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Label    string `json:"label"`
	Animated bool   `json:"animated"`
}

// EdgeID is the deterministic identity for an edge between two nodes,
// stable across recomputed projections of unchanged data.
func EdgeID(source, target string) string {
	return source + "-" + target
}

// DefaultPosition is where a freshly created node lands when the
// caller did not supply a placement.
func DefaultPosition(entity model.EntityType) Position {
	switch entity {
	case model.EntityProvider:
		return Position{X: 100, Y: 150}
	case model.EntityBranchOffice:
		return Position{X: 400, Y: 150}
	case model.EntityRoute:
		return Position{X: 600, Y: 150}
	}
	return Position{X: 600, Y: 300}
}
