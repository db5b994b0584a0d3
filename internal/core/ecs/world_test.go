package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRecyclesWithNewGeneration(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	require.False(t, a.IsZero())
	require.True(t, p.Alive(a))

	p.Destroy(a)
	assert.False(t, p.Alive(a))

	b := p.Create()
	assert.Equal(t, a.Index(), b.Index())
	assert.Equal(t, a.Generation()+1, b.Generation())
	assert.False(t, p.Alive(a), "stale id must not resolve to the new occupant")
	assert.Equal(t, 1, p.Live())
}

func TestWorldDeferredDestroy(t *testing.T) {
	w := NewWorld()
	names := NewStore[string]()
	w.Track(names)

	id := w.CreateEntity()
	n := "GL1TCH"
	names.Set(id, &n)

	w.MarkForDestruction(id)
	w.MarkForDestruction(id)
	assert.True(t, w.Alive(id), "destroy is deferred to the flush")
	assert.True(t, w.Pending(id))

	w.FlushDestroyQueue()
	assert.False(t, w.Alive(id))
	assert.False(t, names.Has(id))
	assert.Equal(t, 0, w.Live())
}

func TestStoreIteratesInIDOrder(t *testing.T) {
	w := NewWorld()
	s := NewStore[int]()
	var ids []EntityID
	for i := 0; i < 20; i++ {
		id := w.CreateEntity()
		v := i
		s.Set(id, &v)
		ids = append(ids, id)
	}

	var seen []EntityID
	s.Each(func(id EntityID, _ *int) { seen = append(seen, id) })
	assert.Equal(t, ids, seen)
}

func TestEach2Intersects(t *testing.T) {
	w := NewWorld()
	a := NewStore[int]()
	b := NewStore[string]()
	x, y, z := w.CreateEntity(), w.CreateEntity(), w.CreateEntity()
	one, two := 1, 2
	a.Set(x, &one)
	a.Set(y, &two)
	s := "only-b"
	b.Set(y, &s)
	b.Set(z, &s)

	var got []EntityID
	Each2(a, b, func(id EntityID, _ *int, _ *string) { got = append(got, id) })
	assert.Equal(t, []EntityID{y}, got)
}
