// Package progress computes effort-weighted completion for projects.
//
// Progress is completed effort over total effort, where each task weighs
// what its difficulty tier is worth. The percentage is rounded once, to two
// decimal places, after the ratio is taken. A project with no effort at all
// is at 0.
package progress

import (
	"progress-tracker/internal/domain"
)

// Places is the number of decimal places a percentage is rounded to.
const Places = 2

// hundredths is 100% expressed in units of 0.01%.
const hundredths = 100 * 100

// Effort is the weighted effort of a set of tasks.
type Effort struct {
	Completed int64
	Total     int64
}

// Add accumulates one task's weight.
func (e Effort) Add(weight int, completed bool) Effort {
	e.Total += int64(weight)
	if completed {
		e.Completed += int64(weight)
	}
	return e
}

// Percentage returns Completed/Total as a percentage in [0, 100] rounded to
// two decimal places, half away from zero. Zero total effort yields 0.
// The rounding is done on integers so that exact halves such as 23/4000
// (0.575%) never fall to the lower cent.
func (e Effort) Percentage() float64 {
	if e.Total <= 0 || e.Completed <= 0 {
		return 0
	}
	if e.Completed >= e.Total {
		return 100
	}
	q := (e.Completed*2*hundredths + e.Total) / (2 * e.Total)
	return float64(q) / 100
}

// Tally sums the weighted effort of tasks. Order does not matter.
func Tally(tasks []domain.Task) Effort {
	var e Effort
	for _, t := range tasks {
		e = e.Add(t.Weight(), t.Completed)
	}
	return e
}

// Compute returns the weighted progress percentage of tasks.
func Compute(tasks []domain.Task) float64 {
	return Tally(tasks).Percentage()
}
