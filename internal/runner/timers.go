package runner

import (
	"container/heap"
	"time"
)

// EventKind names a deferred effect.
type EventKind int

const (
	EventDuckEnd      EventKind = iota // Clears the ducking flag
	EventDamageEnd                     // Clears damaged and invincible
	EventExplosionEnd                  // Exploding -> GameOver
)

func (k EventKind) String() string {
	switch k {
	case EventDuckEnd:
		return "duck-end"
	case EventDamageEnd:
		return "damage-end"
	case EventExplosionEnd:
		return "explosion-end"
	default:
		return "unknown"
	}
}

// Event is a scheduled effect tagged with the run epoch it belongs to.
type Event struct {
	At    time.Time
	Epoch uint64
	Kind  EventKind
	seq   uint64
}

type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].At.Equal(h[j].At) {
		return h[i].seq < h[j].seq
	}
	return h[i].At.Before(h[j].At)
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x any)   { *h = append(*h, x.(Event)) }
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	ev := old[n-1]
	*h = old[:n-1]
	return ev
}

// Timers is a min-heap of pending events ordered by due time, then by
// scheduling order.
type Timers struct {
	h   eventHeap
	seq uint64
}

// Schedule queues kind to fire at at.
func (t *Timers) Schedule(at time.Time, epoch uint64, kind EventKind) {
	t.seq++
	heap.Push(&t.h, Event{At: at, Epoch: epoch, Kind: kind, seq: t.seq})
}

// Due pops every event due at or before now, in firing order.
func (t *Timers) Due(now time.Time) []Event {
	var out []Event
	for len(t.h) > 0 && !t.h[0].At.After(now) {
		out = append(out, heap.Pop(&t.h).(Event))
	}
	return out
}

// Pending returns the number of queued events.
func (t *Timers) Pending() int {
	return len(t.h)
}

// Clear drops every queued event.
func (t *Timers) Clear() {
	t.h = t.h[:0]
}
