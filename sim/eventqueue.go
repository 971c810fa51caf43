package sim

import "container/heap"

// EventQueue is a min-priority queue of Events ordered by timestamp, with a
// stable FIFO tie-break among equal timestamps: events pushed earlier
// dispatch first. There is no deletion and no reordering; it is owned by a
// single Simulator.
type EventQueue struct {
	items []Event
	seq   uint64
}

type eventQueueHeap struct {
	q *EventQueue
}

func (h eventQueueHeap) Len() int { return len(h.q.items) }

func (h eventQueueHeap) Less(i, j int) bool {
	ti, tj := h.q.items[i].Timestamp(), h.q.items[j].Timestamp()
	if !ti.Equal(tj) {
		return ti.Before(tj)
	}
	return h.q.items[i].seqNum() < h.q.items[j].seqNum()
}

func (h eventQueueHeap) Swap(i, j int) { h.q.items[i], h.q.items[j] = h.q.items[j], h.q.items[i] }

func (h eventQueueHeap) Push(x any) { h.q.items = append(h.q.items, x.(Event)) }

func (h eventQueueHeap) Pop() any {
	old := h.q.items
	n := len(old)
	item := old[n-1]
	h.q.items = old[:n-1]
	return item
}

// NewEventQueue returns an empty, ready-to-use EventQueue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push adds an event to the queue, stamping it with the next FIFO sequence
// number so that equal-timestamp events dispatch in push order.
func (q *EventQueue) Push(e Event) {
	e.setSeq(q.seq)
	q.seq++
	heap.Push(eventQueueHeap{q}, e)
}

// Pop removes and returns the next event to dispatch, or nil if empty.
func (q *EventQueue) Pop() Event {
	if len(q.items) == 0 {
		return nil
	}
	return heap.Pop(eventQueueHeap{q}).(Event)
}

// Peek returns the next event without removing it, or nil if empty.
func (q *EventQueue) Peek() Event {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

// Len reports how many events remain queued.
func (q *EventQueue) Len() int { return len(q.items) }

// Clone returns a queue with an independent backing slice, suitable for the
// fork facility: pushing or popping on the clone never touches q.items. The
// Events themselves are pointers and are NOT copied — clone and original
// point at the same underlying event structs. That is only safe because
// setSeq is called exactly once, by Push, before an event is ever queued;
// no handler mutates a queued event afterward. If a future event type grows
// a field that changes after queueing, this sharing stops being safe and
// Clone must start copying the pointed-to structs too.
func (q *EventQueue) Clone() *EventQueue {
	items := make([]Event, len(q.items))
	copy(items, q.items)
	return &EventQueue{items: items, seq: q.seq}
}
