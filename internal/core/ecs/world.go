package ecs

// World owns the entity pool, the tracked component stores and a deferred
// destroy queue. Entities killed mid-tick stay addressable until the cleanup phase
// flushes the queue, so late systems in the same tick can still read them.
type World struct {
	pool         *EntityPool
	stores       []Removable
	destroyQueue []EntityID
	queued       map[EntityID]struct{}
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		destroyQueue: make([]EntityID, 0, 16),
		queued:       make(map[EntityID]struct{}, 16),
	}
}

// Track registers a store to be cleared whenever an entity is destroyed.
func (w *World) Track(s Removable) { w.stores = append(w.stores, s) }

func (w *World) CreateEntity() EntityID { return w.pool.Create() }

func (w *World) Alive(id EntityID) bool { return w.pool.Alive(id) }

func (w *World) Live() int { return w.pool.Live() }

// MarkForDestruction queues an entity for end-of-tick cleanup. Marking the
// same entity twice is a no-op.
func (w *World) MarkForDestruction(id EntityID) {
	if _, dup := w.queued[id]; dup {
		return
	}
	w.queued[id] = struct{}{}
	w.destroyQueue = append(w.destroyQueue, id)
}

// Pending reports whether id is queued for destruction.
func (w *World) Pending(id EntityID) bool {
	_, ok := w.queued[id]
	return ok
}

// FlushDestroyQueue destroys every queued entity and clears its components.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.destroyQueue {
		for _, s := range w.stores {
			s.Remove(id)
		}
		w.pool.Destroy(id)
		delete(w.queued, id)
	}
	w.destroyQueue = w.destroyQueue[:0]
}
