// Copyright 2025 James Ross
package engine

// PickerState is one picker's mutable dispatch state. Position is not
// tracked here — the trace package owns each picker's keyframe track.
type PickerState struct {
	ID              int
	BusyUntil       float64
	BusyTime        float64
	CompletedOrders int
	TourCount       int
}
