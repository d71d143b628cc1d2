package runner

import (
	"github.com/kamstrup/intmap"
)

// Registry owns the live track items of a run. Items keep insertion order
// for iteration; lookups by id go through an integer index into that slice.
type Registry struct {
	items  []*TrackItem
	index  *intmap.Map[ItemID, int]
	nextID ItemID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		items: make([]*TrackItem, 0, 32),
		index: intmap.New[ItemID, int](32),
	}
}

// Add assigns the next id to item and stores it.
func (r *Registry) Add(item *TrackItem) ItemID {
	r.nextID++
	item.ID = r.nextID
	r.index.Put(item.ID, len(r.items))
	r.items = append(r.items, item)
	return item.ID
}

// Get looks up a live item.
func (r *Registry) Get(id ItemID) (*TrackItem, bool) {
	i, ok := r.index.Get(id)
	if !ok {
		return nil, false
	}
	return r.items[i], true
}

// Remove deletes the given items and returns how many were live.
func (r *Registry) Remove(ids ...ItemID) int {
	removed := 0
	for _, id := range ids {
		if _, ok := r.index.Get(id); !ok {
			continue
		}
		r.index.Del(id)
		removed++
	}
	if removed == 0 {
		return 0
	}

	// Compact in place and rebuild the surviving indices.
	kept := r.items[:0]
	for _, it := range r.items {
		if _, ok := r.index.Get(it.ID); ok {
			r.index.Put(it.ID, len(kept))
			kept = append(kept, it)
		}
	}
	for i := len(kept); i < len(r.items); i++ {
		r.items[i] = nil
	}
	r.items = kept
	return removed
}

// Items returns the live items in spawn order. The slice is owned by the
// registry and is only valid until the next mutation.
func (r *Registry) Items() []*TrackItem {
	return r.items
}

// Len returns the number of live items.
func (r *Registry) Len() int {
	return len(r.items)
}

// Clear removes all items and restarts id assignment.
func (r *Registry) Clear() {
	for i := range r.items {
		r.items[i] = nil
	}
	r.items = r.items[:0]
	r.index.Clear()
	r.nextID = 0
}
