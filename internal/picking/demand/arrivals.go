// Copyright 2025 James Ross
package demand

import (
	"fmt"
	"sort"
)

// PoissonArrivals implements the arrival-sampler contract restated (but
// not required to be built here) by the specification: draw a count
// N ~ Poisson(lambda * horizon), then N arrival times uniform over
// [0, horizon], sorted ascending.
type PoissonArrivals struct {
	LambdaPerMin float64
	HorizonMin   float64
	RNG          *RNG
}

// SampleTimes returns a sorted slice of arrival times in minutes.
func (a PoissonArrivals) SampleTimes() ([]float64, error) {
	if a.LambdaPerMin < 0 {
		return nil, fmt.Errorf("demand: lambda must be >= 0, got %g", a.LambdaPerMin)
	}
	if a.HorizonMin <= 0 {
		return nil, fmt.Errorf("demand: horizon must be > 0, got %g", a.HorizonMin)
	}
	expected := a.LambdaPerMin * a.HorizonMin
	n := a.RNG.Poisson(expected)
	if n == 0 {
		return nil, nil
	}
	times := make([]float64, n)
	for i := range times {
		times[i] = a.RNG.Float64() * a.HorizonMin
	}
	sort.Float64s(times)
	return times, nil
}
