package graph

import "graphview-service/internal/model"

// Item is one primary entity of a page together with its related
// sub-entities, ready for layout.
type Item struct {
	ID       string
	Type     model.EntityType
	Data     any
	Children []Child
}

// Child is a related sub-entity. Lane selects the child's column in
// the layout; Label overrides the fallback relationship label when the
// backend supplied a discriminant.
type Child struct {
	ID    string
	Type  model.EntityType
	Lane  int
	Label string
	Data  any
}

// Project is the pure transform from a page of entities to renderable
// nodes and edges: one node per entity, one node per distinct
// sub-entity, one edge per relationship. Identical input yields
// identical node and edge identity sets.
func Project(items []Item, layout Layout) ([]Node, []Edge) {
	nodes := []Node{}
	edges := []Edge{}
	seenNode := make(map[string]bool)
	seenEdge := make(map[string]bool)

	for i, item := range items {
		pos := layout.Primary(i, len(items))
		if !seenNode[item.ID] {
			nodes = append(nodes, Node{ID: item.ID, Type: item.Type, Position: pos, Data: item.Data})
			seenNode[item.ID] = true
		}

		laneTotals := make(map[int]int)
		for _, ch := range item.Children {
			laneTotals[ch.Lane]++
		}
		laneIndex := make(map[int]int)
		for _, ch := range item.Children {
			idx := laneIndex[ch.Lane]
			laneIndex[ch.Lane]++

			if !seenNode[ch.ID] {
				nodes = append(nodes, Node{
					ID:       ch.ID,
					Type:     ch.Type,
					Position: layout.Child(pos, ch.Lane, idx, laneTotals[ch.Lane]),
					Data:     ch.Data,
				})
				seenNode[ch.ID] = true
			}

			id := EdgeID(item.ID, ch.ID)
			if seenEdge[id] {
				continue
			}
			seenEdge[id] = true

			label := ch.Label
			if label == "" {
				label = string(model.FallbackKind(item.Type, ch.Type))
			}
			edges = append(edges, Edge{
				ID:       id,
				Source:   item.ID,
				Target:   ch.ID,
				Label:    label,
				Animated: true,
			})
		}
	}
	return nodes, edges
}
