package graph

import (
	"testing"

	"graphview-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedView(t *testing.T) *View {
	t.Helper()
	v := NewView(model.EntityBranchOffice)
	token := v.BeginFetch()
	ok := v.CompleteFetch(token, []Node{
		{ID: "b-1", Type: model.EntityBranchOffice, Position: Position{X: 100, Y: 100}},
		{ID: "i-1", Type: model.EntityInvoice, Position: Position{X: 400, Y: 100}},
	}, []Edge{
		{ID: "b-1-i-1", Source: "b-1", Target: "i-1", Label: "EMITS"},
	}, 1, 3)
	require.True(t, ok)
	return v
}

func TestStaleFetchGuard(t *testing.T) {
	t.Run("late completion with a superseded token is discarded", func(t *testing.T) {
		v := NewView(model.EntityProduct)
		pageOneToken := v.BeginFetch()
		pageTwoToken := v.BeginFetch()

		ok := v.CompleteFetch(pageTwoToken, []Node{{ID: "p-6"}}, nil, 2, 2)
		require.True(t, ok)

		ok = v.CompleteFetch(pageOneToken, []Node{{ID: "p-1"}}, nil, 1, 2)
		assert.False(t, ok)

		snap := v.Snapshot()
		require.Len(t, snap.Nodes, 1)
		assert.Equal(t, "p-6", snap.Nodes[0].ID)
		assert.Equal(t, 2, snap.Page)
	})

	t.Run("completion clears removal memory and selection", func(t *testing.T) {
		v := loadedView(t)
		v.ApplyChanges([]Change{{NodeID: "i-1", Op: ChangeRemove}})
		_, err := v.Select("b-1")
		require.NoError(t, err)

		token := v.BeginFetch()
		require.True(t, v.CompleteFetch(token, []Node{{ID: "i-1", Type: model.EntityInvoice}}, nil, 1, 1))

		assert.Nil(t, v.CurrentSelection())
		_, err = v.InsertEdge(Edge{ID: "x", Source: "i-1", Target: "i-1"})
		assert.NoError(t, err)
	})
}

func TestApplyChanges(t *testing.T) {
	t.Run("position change moves only the named node", func(t *testing.T) {
		v := loadedView(t)
		v.ApplyChanges([]Change{{NodeID: "b-1", Op: ChangeMove, Position: &Position{X: 250, Y: 260}}})

		snap := v.Snapshot()
		assert.Equal(t, Position{X: 250, Y: 260}, snap.Nodes[0].Position)
		assert.Equal(t, Position{X: 400, Y: 100}, snap.Nodes[1].Position)
	})

	t.Run("remove drops the node and its incident edges", func(t *testing.T) {
		v := loadedView(t)
		v.ApplyChanges([]Change{{NodeID: "i-1", Op: ChangeRemove}})

		snap := v.Snapshot()
		require.Len(t, snap.Nodes, 1)
		assert.Equal(t, "b-1", snap.Nodes[0].ID)
		assert.Empty(t, snap.Edges)
	})

	t.Run("removed node cannot be resurrected", func(t *testing.T) {
		v := loadedView(t)
		v.ApplyChanges([]Change{{NodeID: "i-1", Op: ChangeRemove}})

		_, err := v.InsertNode(Node{ID: "i-1", Type: model.EntityInvoice})
		assert.ErrorIs(t, err, ErrNodeRemoved)

		_, err = v.InsertEdge(Edge{ID: "b-1-i-1", Source: "b-1", Target: "i-1"})
		assert.ErrorIs(t, err, ErrNodeRemoved)
	})

	t.Run("selection flag change", func(t *testing.T) {
		v := loadedView(t)
		selected := true
		v.ApplyChanges([]Change{{NodeID: "i-1", Op: ChangeSelect, Selected: &selected}})
		snap := v.Snapshot()
		assert.True(t, snap.Nodes[1].Selected)
	})

	t.Run("changes to unknown nodes are ignored", func(t *testing.T) {
		v := loadedView(t)
		v.ApplyChanges([]Change{
			{NodeID: "ghost", Op: ChangeMove, Position: &Position{X: 1, Y: 1}},
			{NodeID: "ghost", Op: ChangeRemove},
		})
		snap := v.Snapshot()
		assert.Len(t, snap.Nodes, 2)
		assert.Len(t, snap.Edges, 1)
	})
}

func TestInsertNode(t *testing.T) {
	t.Run("appends without touching existing nodes", func(t *testing.T) {
		v := loadedView(t)
		node, err := v.InsertNode(Node{ID: "p-99", Type: model.EntityProvider})
		require.NoError(t, err)
		assert.Equal(t, "p-99", node.ID)

		snap := v.Snapshot()
		require.Len(t, snap.Nodes, 3)
		assert.Equal(t, "b-1", snap.Nodes[0].ID)
		assert.Equal(t, "i-1", snap.Nodes[1].ID)
		assert.Equal(t, "p-99", snap.Nodes[2].ID)
	})

	t.Run("duplicate identity is a no-op", func(t *testing.T) {
		v := loadedView(t)
		existing, err := v.InsertNode(Node{ID: "b-1", Type: model.EntityBranchOffice, Position: Position{X: 999, Y: 999}})
		require.NoError(t, err)
		assert.Equal(t, Position{X: 100, Y: 100}, existing.Position)
		assert.Len(t, v.Snapshot().Nodes, 2)
	})
}

func TestInsertEdge(t *testing.T) {
	t.Run("requires both endpoints in the view", func(t *testing.T) {
		v := loadedView(t)
		_, err := v.InsertEdge(Edge{ID: "b-1-ghost", Source: "b-1", Target: "ghost"})
		assert.ErrorIs(t, err, ErrUnknownNode)
		assert.Len(t, v.Snapshot().Edges, 1)
	})

	t.Run("duplicate id returns the existing edge", func(t *testing.T) {
		v := loadedView(t)
		edge, err := v.InsertEdge(Edge{ID: "b-1-i-1", Source: "b-1", Target: "i-1", Label: "OTHER"})
		require.NoError(t, err)
		assert.Equal(t, "EMITS", edge.Label)
		assert.Len(t, v.Snapshot().Edges, 1)
	})
}

func TestSelection(t *testing.T) {
	t.Run("last select wins", func(t *testing.T) {
		v := loadedView(t)
		_, err := v.Select("b-1")
		require.NoError(t, err)
		sel, err := v.Select("i-1")
		require.NoError(t, err)

		assert.Equal(t, "i-1", sel.NodeID)
		assert.Equal(t, model.EntityInvoice, sel.Type)

		snap := v.Snapshot()
		assert.False(t, snap.Nodes[0].Selected)
		assert.True(t, snap.Nodes[1].Selected)
	})

	t.Run("unknown node is an error", func(t *testing.T) {
		v := loadedView(t)
		_, err := v.Select("ghost")
		assert.ErrorIs(t, err, ErrUnknownNode)
	})

	t.Run("clear empties the slot and flags", func(t *testing.T) {
		v := loadedView(t)
		_, err := v.Select("b-1")
		require.NoError(t, err)
		v.ClearSelection()

		assert.Nil(t, v.CurrentSelection())
		assert.False(t, v.Snapshot().Nodes[0].Selected)
	})

	t.Run("removing the selected node clears the slot", func(t *testing.T) {
		v := loadedView(t)
		_, err := v.Select("i-1")
		require.NoError(t, err)
		v.ApplyChanges([]Change{{NodeID: "i-1", Op: ChangeRemove}})
		assert.Nil(t, v.CurrentSelection())
	})
}

func TestSnapshotIsolation(t *testing.T) {
	v := loadedView(t)
	snap := v.Snapshot()
	snap.Nodes[0].ID = "mutated"
	snap.Edges[0].Label = "mutated"

	fresh := v.Snapshot()
	assert.Equal(t, "b-1", fresh.Nodes[0].ID)
	assert.Equal(t, "EMITS", fresh.Edges[0].Label)
}
