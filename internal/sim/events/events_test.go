// Copyright 2025 James Ross
package events

import "testing"

func TestPopOrdersByTimeThenSequence(t *testing.T) {
	q := NewQueue()
	q.Push(5.0, Arrival, ArrivalPayload{JobID: 1})
	q.Push(1.0, Arrival, ArrivalPayload{JobID: 2})
	q.Push(1.0, PickerFree, PickerFreePayload{PickerID: 0, JobID: 3})
	q.Push(3.0, Arrival, ArrivalPayload{JobID: 4})

	var order []int
	for !q.Empty() {
		e := q.Pop()
		switch p := e.Payload.(type) {
		case ArrivalPayload:
			order = append(order, p.JobID)
		case PickerFreePayload:
			order = append(order, p.JobID)
		}
	}
	want := []int{2, 3, 4, 1}
	if len(order) != len(want) {
		t.Fatalf("got %v want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v want %v", order, want)
		}
	}
}

func TestEqualTimeStableFIFO(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 10; i++ {
		q.Push(2.0, Arrival, ArrivalPayload{JobID: i})
	}
	for i := 0; i < 10; i++ {
		e := q.Pop()
		got := e.Payload.(ArrivalPayload).JobID
		if got != i {
			t.Fatalf("expected FIFO order at equal time, got job %d at position %d", got, i)
		}
	}
}

func TestEmptyAndPeekTime(t *testing.T) {
	q := NewQueue()
	if !q.Empty() {
		t.Fatal("expected new queue to be empty")
	}
	if _, ok := q.PeekTime(); ok {
		t.Fatal("expected PeekTime to report false on empty queue")
	}
	q.Push(4.2, Arrival, ArrivalPayload{JobID: 1})
	if q.Empty() {
		t.Fatal("expected non-empty queue after push")
	}
	tm, ok := q.PeekTime()
	if !ok || tm != 4.2 {
		t.Fatalf("expected PeekTime to report 4.2, got %v %v", tm, ok)
	}
}

func TestKindString(t *testing.T) {
	if Arrival.String() != "ARRIVAL" {
		t.Fatalf("unexpected Arrival string: %s", Arrival.String())
	}
	if PickerFree.String() != "PICKER_FREE" {
		t.Fatalf("unexpected PickerFree string: %s", PickerFree.String())
	}
}
