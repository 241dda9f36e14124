// Copyright 2025 James Ross
// Package events implements the simulator's stable event queue: a
// container/heap min-heap keyed on (time, insertion sequence) so that
// events sharing a timestamp pop in the order they were pushed.
package events

import "container/heap"

// Kind tags an Event's payload variant. The queue treats payloads
// opaquely; only the simulator's dispatch switch inspects Kind.
type Kind int

const (
	Arrival Kind = iota
	PickerFree
)

func (k Kind) String() string {
	switch k {
	case Arrival:
		return "ARRIVAL"
	case PickerFree:
		return "PICKER_FREE"
	default:
		return "UNKNOWN"
	}
}

// Event is a scheduled occurrence at a virtual time. Payload is an
// ArrivalPayload or a PickerFreePayload depending on Kind.
type Event struct {
	Time    float64
	Kind    Kind
	Payload any
	seq     int64
}

// ArrivalPayload carries the job becoming visible to the scheduler.
type ArrivalPayload struct {
	JobID int
}

// PickerFreePayload carries the picker/job pair completing service.
type PickerFreePayload struct {
	PickerID int
	JobID    int
}

// innerHeap implements heap.Interface, ordered by (Time, seq) so that
// ties resolve in FIFO insertion order.
type innerHeap []*Event

func (h innerHeap) Len() int { return len(h) }

func (h innerHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].seq < h[j].seq
}

func (h innerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *innerHeap) Push(x any) {
	*h = append(*h, x.(*Event))
}

func (h *innerHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// Queue is a stable min-heap of events. The zero value is not usable;
// construct with NewQueue.
type Queue struct {
	h       innerHeap
	nextSeq int64
}

// NewQueue returns an empty, ready-to-use event queue.
func NewQueue() *Queue {
	q := &Queue{h: make(innerHeap, 0)}
	heap.Init(&q.h)
	return q
}

// Push inserts an event, stamping it with the next insertion sequence
// number so that equal-time events preserve push order on Pop.
func (q *Queue) Push(time float64, kind Kind, payload any) {
	e := &Event{Time: time, Kind: kind, Payload: payload, seq: q.nextSeq}
	q.nextSeq++
	heap.Push(&q.h, e)
}

// Pop removes and returns the minimum (time, seq) event. Panics if the
// queue is empty — callers must check Empty first.
func (q *Queue) Pop() *Event {
	return heap.Pop(&q.h).(*Event)
}

// Empty reports whether the queue holds no events.
func (q *Queue) Empty() bool {
	return len(q.h) == 0
}

// PeekTime returns the time of the next event without removing it, and
// false if the queue is empty.
func (q *Queue) PeekTime() (float64, bool) {
	if len(q.h) == 0 {
		return 0, false
	}
	return q.h[0].Time, true
}
