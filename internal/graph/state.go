package graph

import (
	"errors"
	"sync"

	"graphview-service/internal/model"
)

var (
	// ErrUnknownNode is returned when an edge endpoint or a change
	// references a node id the view has never seen.
	ErrUnknownNode = errors.New("unknown node")

	// ErrNodeRemoved is returned when an insert targets a node id the
	// user already removed from the view.
	ErrNodeRemoved = errors.New("node was removed")
)

// ChangeOp names a user-driven mutation on a rendered node.
type ChangeOp string

const (
	ChangeMove   ChangeOp = "position"
	ChangeSelect ChangeOp = "select"
	ChangeRemove ChangeOp = "remove"
)

// Change is one entry of an applied change batch.
type Change struct {
	NodeID   string    `json:"nodeId"`
	Op       ChangeOp  `json:"op"`
	Position *Position `json:"position,omitempty"`
	Selected *bool     `json:"selected,omitempty"`
}

// Selection records the node the user is inspecting.
type Selection struct {
	NodeID string           `json:"nodeId"`
	Type   model.EntityType `json:"type"`
	Data   any              `json:"data"`
}

// Snapshot is an immutable copy of a view's rendered state.
type Snapshot struct {
	Nodes      []Node `json:"nodes"`
	Edges      []Edge `json:"edges"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
}

// View holds the rendered graph for one entity page of one session.
// All methods are safe for concurrent use.
type View struct {
	mu sync.Mutex

	entity model.EntityType

	nodes []Node
	edges []Edge

	// removed remembers node ids the user deleted so that a later
	// insert or edge cannot silently resurrect them before the next
	// page load clears the slate.
	removed map[string]struct{}

	page       int
	totalPages int

	issued    uint64
	selection *Selection
}

func NewView(entity model.EntityType) *View {
	return &View{
		entity:  entity,
		removed: make(map[string]struct{}),
	}
}

func (v *View) Entity() model.EntityType { return v.entity }

// BeginFetch issues a token for an in-flight page load. Only the
// completion carrying the most recently issued token may apply.
func (v *View) BeginFetch() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.issued++
	return v.issued
}

// CompleteFetch replaces the view contents with a freshly projected
// page. A completion whose token has been superseded is discarded and
// reported via the boolean.
func (v *View) CompleteFetch(token uint64, nodes []Node, edges []Edge, page, totalPages int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if token != v.issued {
		return false
	}
	v.nodes = nodes
	v.edges = edges
	v.page = page
	v.totalPages = totalPages
	v.removed = make(map[string]struct{})
	v.selection = nil
	return true
}

// ApplyChanges runs a batch of user mutations in order. Position and
// selection changes to unknown nodes are ignored rather than failed so
// a partially stale client batch cannot poison the view.
func (v *View) ApplyChanges(changes []Change) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, c := range changes {
		switch c.Op {
		case ChangeMove:
			if c.Position == nil {
				continue
			}
			if i := v.indexOf(c.NodeID); i >= 0 {
				v.nodes[i].Position = *c.Position
			}
		case ChangeSelect:
			if c.Selected == nil {
				continue
			}
			if i := v.indexOf(c.NodeID); i >= 0 {
				v.nodes[i].Selected = *c.Selected
			}
		case ChangeRemove:
			v.removeNode(c.NodeID)
		}
	}
}

func (v *View) indexOf(id string) int {
	for i := range v.nodes {
		if v.nodes[i].ID == id {
			return i
		}
	}
	return -1
}

func (v *View) removeNode(id string) {
	i := v.indexOf(id)
	if i < 0 {
		return
	}
	v.nodes = append(v.nodes[:i], v.nodes[i+1:]...)
	v.removed[id] = struct{}{}
	kept := v.edges[:0]
	for _, e := range v.edges {
		if e.Source == id || e.Target == id {
			continue
		}
		kept = append(kept, e)
	}
	v.edges = kept
	if v.selection != nil && v.selection.NodeID == id {
		v.selection = nil
	}
}

// InsertNode adds a node created against the backend. Re-inserting an
// id already present is a no-op returning the existing node; inserting
// an id the user removed is rejected.
func (v *View) InsertNode(n Node) (Node, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, gone := v.removed[n.ID]; gone {
		return Node{}, ErrNodeRemoved
	}
	if i := v.indexOf(n.ID); i >= 0 {
		return v.nodes[i], nil
	}
	v.nodes = append(v.nodes, n)
	return n, nil
}

// InsertEdge adds an edge once both endpoints are live in the view.
// A duplicate id returns the existing edge unchanged.
func (v *View) InsertEdge(e Edge) (Edge, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, id := range [2]string{e.Source, e.Target} {
		if _, gone := v.removed[id]; gone {
			return Edge{}, ErrNodeRemoved
		}
		if v.indexOf(id) < 0 {
			return Edge{}, ErrUnknownNode
		}
	}
	for _, have := range v.edges {
		if have.ID == e.ID {
			return have, nil
		}
	}
	v.edges = append(v.edges, e)
	return e, nil
}

// NodeType reports the entity type of a live node.
func (v *View) NodeType(id string) (model.EntityType, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := v.indexOf(id)
	if i < 0 {
		return "", false
	}
	return v.nodes[i].Type, true
}

// Select marks a node as the inspected one, clearing the flag on every
// other node.
func (v *View) Select(id string) (*Selection, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := v.indexOf(id)
	if i < 0 {
		return nil, ErrUnknownNode
	}
	for j := range v.nodes {
		v.nodes[j].Selected = j == i
	}
	v.selection = &Selection{NodeID: id, Type: v.nodes[i].Type, Data: v.nodes[i].Data}
	return v.selection, nil
}

func (v *View) ClearSelection() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i := range v.nodes {
		v.nodes[i].Selected = false
	}
	v.selection = nil
}

// CurrentSelection returns the inspected node, or nil when nothing is
// selected.
func (v *View) CurrentSelection() *Selection {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection
}

// Snapshot copies the current rendered state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	nodes := make([]Node, len(v.nodes))
	copy(nodes, v.nodes)
	edges := make([]Edge, len(v.edges))
	copy(edges, v.edges)
	return Snapshot{Nodes: nodes, Edges: edges, Page: v.page, TotalPages: v.totalPages}
}
