// Copyright 2025 James Ross
// Package trace synthesizes a renderable frame timeline from per-picker
// keyframe tracks emitted during simulation. The simulator never emits
// frames directly — it appends sparse keyframes, and fusion happens
// once at the end, keeping the representation O(total motion steps)
// rather than O(n_pickers * horizon/dt).
package trace

import (
	"math"
	"sort"
)

// State is a picker's animation state.
type State string

const (
	Idle   State = "idle"
	Moving State = "moving"
)

// Keyframe is one recorded picker pose at a point in time. JobID is nil
// outside of an active dispatch (Idle keyframes).
type Keyframe struct {
	Time  float64
	X, Y  int
	State State
	JobID *int
}

// Track accumulates one picker's keyframes in strictly non-decreasing
// time order.
type Track struct {
	PickerID  int
	Keyframes []Keyframe
}

// Append adds a keyframe to the track. Callers must supply keyframes in
// non-decreasing time order; Append does not re-sort.
func (t *Track) Append(k Keyframe) {
	t.Keyframes = append(t.Keyframes, k)
}

// AnimateJob appends the keyframes produced by moving a picker along
// path P starting at time `start` over total duration `d`, per spec
// §4.7: an initial moving keyframe at the first cell, a keyframe at the
// end of each cell-to-cell segment (segments are d/m minutes long),
// in-transit keyframes at the current cell every max(roundDt, eps)
// minutes within a segment, and a terminal idle keyframe at start+d
// with JobID cleared.
func (t *Track) AnimateJob(path []Cell, start, duration float64, jobID int, roundDt float64) {
	id := jobID
	if len(path) < 2 {
		c := Cell{}
		if len(path) == 1 {
			c = path[0]
		}
		t.Append(Keyframe{Time: start, X: c.X, Y: c.Y, State: Moving, JobID: &id})
		t.Append(Keyframe{Time: start + duration, X: c.X, Y: c.Y, State: Idle, JobID: nil})
		return
	}

	m := len(path) - 1
	perCell := duration / float64(m)
	t.Append(Keyframe{Time: start, X: path[0].X, Y: path[0].Y, State: Moving, JobID: &id})

	step := roundDt
	if step < eps {
		step = eps
	}
	for i := 1; i <= m; i++ {
		segStart := start + float64(i-1)*perCell
		segEnd := start + float64(i)*perCell
		cur := path[i-1]
		for tm := segStart + step; tm < segEnd; tm += step {
			t.Append(Keyframe{Time: tm, X: cur.X, Y: cur.Y, State: Moving, JobID: &id})
		}
		next := path[i]
		t.Append(Keyframe{Time: segEnd, X: next.X, Y: next.Y, State: Moving, JobID: &id})
	}

	last := path[m]
	t.Append(Keyframe{Time: start + duration, X: last.X, Y: last.Y, State: Idle, JobID: nil})
}

// eps is the floor applied to the animation sub-step so a zero or
// negative round_dt cannot stall AnimateJob in an infinite loop.
const eps = 1e-6

// Cell is a visualization coordinate, decoupled from the warehouse grid
// package so this package has no dependency on it.
type Cell struct {
	X, Y int
}

// PickerFrame is one picker's pose within a fused timeline frame.
type PickerFrame struct {
	PickerID int
	X, Y     int
	State    State
	JobID    *int
}

// Frame is a snapshot of every picker's last-known state at time T.
type Frame struct {
	Time    float64
	Pickers []PickerFrame
}

// Timeline is the fused, renderable sequence of frames.
type Timeline []Frame

// Fuse merges independent per-picker keyframe tracks into a single
// last-known-state timeline per spec §4.7: collect every distinct
// timestamp across all tracks (prepending 0 and appending endTime if
// either is missing), then for each timestamp emit each picker's most
// recent keyframe at or before it.
func Fuse(tracks []*Track, endTime float64) Timeline {
	timeSet := make(map[float64]struct{})
	timeSet[0.0] = struct{}{}
	for _, tr := range tracks {
		for _, k := range tr.Keyframes {
			timeSet[k.Time] = struct{}{}
		}
	}
	if endTime > 0 {
		timeSet[endTime] = struct{}{}
	}

	times := make([]float64, 0, len(timeSet))
	for t := range timeSet {
		times = append(times, t)
	}
	sort.Float64s(times)

	cursor := make([]int, len(tracks))
	timeline := make(Timeline, 0, len(times))
	for _, t := range times {
		pickers := make([]PickerFrame, len(tracks))
		for i, tr := range tracks {
			for cursor[i] < len(tr.Keyframes)-1 && tr.Keyframes[cursor[i]+1].Time <= t {
				cursor[i]++
			}
			var k Keyframe
			if len(tr.Keyframes) > 0 {
				k = tr.Keyframes[cursor[i]]
			}
			pickers[i] = PickerFrame{PickerID: tr.PickerID, X: k.X, Y: k.Y, State: k.State, JobID: k.JobID}
		}
		timeline = append(timeline, Frame{Time: t, Pickers: pickers})
	}
	return timeline
}

// Compact rounds frame timestamps to a quantum, collapses multiple
// frames landing on the same rounded time (keeping the last), and
// drops consecutive frames in which no picker's position changed. It
// is a downstream rendering utility, not part of simulation itself.
func Compact(tl Timeline, roundDt float64) Timeline {
	if roundDt <= 0 || len(tl) == 0 {
		return tl
	}
	rounded := make(Timeline, len(tl))
	for i, f := range tl {
		rf := f
		rf.Time = math.Round(f.Time/roundDt) * roundDt
		rounded[i] = rf
	}

	collapsed := make(Timeline, 0, len(rounded))
	for _, f := range rounded {
		if n := len(collapsed); n > 0 && collapsed[n-1].Time == f.Time {
			collapsed[n-1] = f
			continue
		}
		collapsed = append(collapsed, f)
	}

	out := make(Timeline, 0, len(collapsed))
	for i, f := range collapsed {
		if i == 0 || framesDiffer(collapsed[i-1], f) {
			out = append(out, f)
		}
	}
	return out
}

func framesDiffer(a, b Frame) bool {
	if len(a.Pickers) != len(b.Pickers) {
		return true
	}
	for i := range a.Pickers {
		if a.Pickers[i].X != b.Pickers[i].X || a.Pickers[i].Y != b.Pickers[i].Y {
			return true
		}
	}
	return false
}
