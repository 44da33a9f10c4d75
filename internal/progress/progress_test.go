package progress

import (
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"progress-tracker/internal/difficulty"
	"progress-tracker/internal/domain"
)

func task(tier difficulty.Tier, completed bool) domain.Task {
	return domain.Task{Title: tier.String(), Difficulty: tier, Completed: completed}
}

func TestCompute_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		tasks    []domain.Task
		expected float64
	}{
		{
			name:     "half of two low tasks",
			tasks:    []domain.Task{task(difficulty.Low, false), task(difficulty.Low, true)},
			expected: 50.0,
		},
		{
			name: "low and high done, medium open",
			tasks: []domain.Task{
				task(difficulty.Low, true),
				task(difficulty.Medium, false),
				task(difficulty.High, true),
			},
			expected: 76.47,
		},
		{
			name:     "no tasks",
			tasks:    nil,
			expected: 0.0,
		},
		{
			name:     "nothing completed",
			tasks:    []domain.Task{task(difficulty.Low, false), task(difficulty.High, false)},
			expected: 0.0,
		},
		{
			name: "medium and high done, low open",
			tasks: []domain.Task{
				task(difficulty.Medium, true),
				task(difficulty.High, true),
				task(difficulty.Low, false),
			},
			expected: 94.12,
		},
		{
			name:     "everything completed",
			tasks:    []domain.Task{task(difficulty.High, true), task(difficulty.Low, true)},
			expected: 100.0,
		},
		{
			name:     "only unknown tiers",
			tasks:    []domain.Task{task(difficulty.Tier(0), true), task(difficulty.Tier(8), false)},
			expected: 0.0,
		},
		{
			name: "unknown tier ignored",
			tasks: []domain.Task{
				task(difficulty.Tier(42), false),
				task(difficulty.Medium, true),
				task(difficulty.Medium, false),
			},
			expected: 50.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Compute(tt.tasks))
		})
	}
}

func TestTally(t *testing.T) {
	effort := Tally([]domain.Task{
		task(difficulty.Low, true),
		task(difficulty.Medium, false),
		task(difficulty.High, true),
	})
	assert.Equal(t, Effort{Completed: 13, Total: 17}, effort)
}

func TestEffort_Percentage(t *testing.T) {
	tests := []struct {
		name     string
		effort   Effort
		expected float64
	}{
		{name: "zero", effort: Effort{}, expected: 0},
		{name: "negative total", effort: Effort{Completed: 1, Total: -4}, expected: 0},
		{name: "one third", effort: Effort{Completed: 1, Total: 3}, expected: 33.33},
		{name: "two thirds", effort: Effort{Completed: 2, Total: 3}, expected: 66.67},
		{name: "completed above total", effort: Effort{Completed: 5, Total: 4}, expected: 100},
		{name: "half cent rounds up", effort: Effort{Completed: 23, Total: 4000}, expected: 0.58},
		{name: "half cent above one", effort: Effort{Completed: 41, Total: 4000}, expected: 1.03},
		{name: "half cent near full", effort: Effort{Completed: 3999, Total: 4000}, expected: 99.98},
		{name: "below half cent", effort: Effort{Completed: 1, Total: 30000}, expected: 0},
		{name: "weighted example", effort: Effort{Completed: 13, Total: 17}, expected: 76.47},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.effort.Percentage())
		})
	}
}

func TestEffort_PercentageHalfCents(t *testing.T) {
	for total := int64(1); total <= 30000; total++ {
		for _, completed := range []int64{1, total / 7, total / 3, total / 2, total - 1} {
			if completed <= 0 || completed >= total {
				continue
			}
			exact := new(big.Rat).SetFrac64(completed*hundredths, total)
			half := new(big.Rat).Add(exact, big.NewRat(1, 2))
			want := new(big.Int).Quo(half.Num(), half.Denom()).Int64()

			got := Effort{Completed: completed, Total: total}.Percentage()
			if math.Round(got*100) != float64(want) {
				t.Fatalf("%d/%d: got %v, want %d hundredths", completed, total, got, want)
			}
		}
	}
}

func randomTasks(r *rand.Rand, n int) []domain.Task {
	tiers := difficulty.All()
	tasks := make([]domain.Task, n)
	for i := range tasks {
		tasks[i] = task(tiers[r.Intn(len(tiers))], r.Intn(2) == 1)
	}
	return tasks
}

func TestCompute_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		tasks := randomTasks(r, r.Intn(60))
		pct := Compute(tasks)

		assert.GreaterOrEqual(t, pct, 0.0)
		assert.LessOrEqual(t, pct, 100.0)
		assert.InDelta(t, math.Round(pct*100), pct*100, 1e-6, "at most two decimals")
		assert.Equal(t, pct, Compute(tasks), "idempotent")

		reversed := make([]domain.Task, len(tasks))
		for j, tk := range tasks {
			reversed[len(tasks)-1-j] = tk
		}
		assert.Equal(t, pct, Compute(reversed), "order independent")

		for j := range tasks {
			if tasks[j].Completed {
				continue
			}
			toggled := append([]domain.Task(nil), tasks...)
			toggled[j].Completed = true
			assert.GreaterOrEqual(t, Compute(toggled), pct, "completing a task never lowers progress")
		}
	}
}

func TestCompute_AllOrNothing(t *testing.T) {
	r := rand.New(rand.NewSource(11))

	for i := 0; i < 50; i++ {
		tasks := randomTasks(r, 1+r.Intn(30))

		for j := range tasks {
			tasks[j].Completed = true
		}
		assert.Equal(t, 100.0, Compute(tasks))

		for j := range tasks {
			tasks[j].Completed = false
		}
		assert.Equal(t, 0.0, Compute(tasks))
	}
}
