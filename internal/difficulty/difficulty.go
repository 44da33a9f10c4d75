// Package difficulty holds the closed set of task difficulty tiers and the
// effort weight attached to each one. Weights drive every progress
// percentage in the application and must not change silently.
package difficulty

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Tier is a task difficulty. The numeric value is what gets persisted.
type Tier int

const (
	Low    Tier = 1
	Medium Tier = 2
	High   Tier = 3
)

type entry struct {
	name   string
	weight int
	key    string
}

var table = map[Tier]entry{
	Low:    {name: "low", weight: 1, key: "difficulty.low"},
	Medium: {name: "medium", weight: 4, key: "difficulty.medium"},
	High:   {name: "high", weight: 12, key: "difficulty.high"},
}

var ordered = []Tier{Low, Medium, High}

// All returns every tier in declaration order.
func All() []Tier {
	tiers := make([]Tier, len(ordered))
	copy(tiers, ordered)
	return tiers
}

// Valid reports whether t is one of the declared tiers.
func (t Tier) Valid() bool {
	_, ok := table[t]
	return ok
}

// Weight returns the effort points for t. Unknown tiers weigh nothing.
func (t Tier) Weight() int {
	return table[t].weight
}

// String returns the stable machine name of the tier.
func (t Tier) String() string {
	if e, ok := table[t]; ok {
		return e.name
	}
	return "unknown"
}

// Parse accepts a tier name ("low", "Medium") or its stored value ("3").
func Parse(s string) (Tier, error) {
	value := strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(value); err == nil {
		t := Tier(n)
		if !t.Valid() {
			return 0, fmt.Errorf("unknown difficulty value: %d", n)
		}
		return t, nil
	}
	for _, t := range ordered {
		if table[t].name == value {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty: %q", s)
}

// UnmarshalJSON accepts either the stored integer or the tier name.
// Out-of-range integers and unknown names decode to an invalid tier so
// validation can report them.
func (t *Tier) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*t = Tier(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("difficulty must be a number or a name: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		// left invalid so validation reports the field
		*t = 0
		return nil
	}
	*t = parsed
	return nil
}

// EffortCaseSQL renders a CASE expression that maps the tier stored in
// column to its weight, for use inside SUM() aggregations.
func EffortCaseSQL(column string) string {
	var b strings.Builder
	b.WriteString("CASE ")
	b.WriteString(column)
	for _, t := range ordered {
		fmt.Fprintf(&b, " WHEN %d THEN %d", int(t), t.Weight())
	}
	b.WriteString(" ELSE 0 END")
	return b.String()
}
