package graph

import (
	"testing"
	"time"

	"graphview-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("obtain returns the same view per session and entity", func(t *testing.T) {
		r := NewRegistry(time.Minute)
		first := r.Obtain("sess-a", model.EntityProduct)
		second := r.Obtain("sess-a", model.EntityProduct)
		assert.Same(t, first, second)
	})

	t.Run("views are isolated per session and per entity", func(t *testing.T) {
		r := NewRegistry(time.Minute)
		a := r.Obtain("sess-a", model.EntityProduct)
		b := r.Obtain("sess-b", model.EntityProduct)
		c := r.Obtain("sess-a", model.EntityProvider)
		assert.NotSame(t, a, b)
		assert.NotSame(t, a, c)
	})

	t.Run("lookup does not create", func(t *testing.T) {
		r := NewRegistry(time.Minute)
		_, ok := r.Lookup("sess-a", model.EntityProduct)
		assert.False(t, ok)

		r.Obtain("sess-a", model.EntityProduct)
		_, ok = r.Lookup("sess-a", model.EntityProduct)
		assert.True(t, ok)
	})

	t.Run("idle views expire after the TTL", func(t *testing.T) {
		r := NewRegistry(time.Minute)
		now := time.Unix(1000, 0)
		r.now = func() time.Time { return now }

		r.Obtain("sess-a", model.EntityProduct)

		now = now.Add(61 * time.Second)
		_, ok := r.Lookup("sess-a", model.EntityProduct)
		assert.False(t, ok)
	})

	t.Run("access keeps a view alive", func(t *testing.T) {
		r := NewRegistry(time.Minute)
		now := time.Unix(1000, 0)
		r.now = func() time.Time { return now }

		view := r.Obtain("sess-a", model.EntityProduct)

		now = now.Add(45 * time.Second)
		got, ok := r.Lookup("sess-a", model.EntityProduct)
		require.True(t, ok)
		assert.Same(t, view, got)

		now = now.Add(45 * time.Second)
		got, ok = r.Lookup("sess-a", model.EntityProduct)
		require.True(t, ok)
		assert.Same(t, view, got)
	})
}
