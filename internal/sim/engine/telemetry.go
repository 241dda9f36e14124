// Copyright 2025 James Ross
package engine

// Point is one (time, value) sample in a telemetry time series.
type Point struct {
	Time  float64 `json:"time_min"`
	Value float64 `json:"value"`
}

// GanttSegment records one picker's occupied interval while servicing
// a job.
type GanttSegment struct {
	PickerID int     `json:"picker_id"`
	Start    float64 `json:"start_min"`
	End      float64 `json:"end_min"`
	JobID    int     `json:"job_id"`
}

// BatchStat records one released batch's size, release time, and the
// latency between its earliest constituent arrival and its release.
type BatchStat struct {
	Size           int     `json:"size"`
	ReleaseMin     float64 `json:"release_min"`
	FillLatencyMin float64 `json:"fill_latency_min"`
}

// Telemetry is the simulator's single owned accumulator: every
// observation recorded during the event loop lives here, never in a
// side-channel map.
type Telemetry struct {
	QueueSeries      []Point        `json:"queue_series"`
	CompletionSeries []Point        `json:"completion_series"`
	Gantt            []GanttSegment `json:"gantt"`
	Waits            []float64      `json:"waits_min"`
	DistanceTotalM   float64        `json:"distance_total_m"`
	BatchStats       []BatchStat    `json:"batch_stats"`
}
