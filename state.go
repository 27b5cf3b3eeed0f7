package qcircuit

import (
	"fmt"
	"sort"
	"strconv"
)

/*
Histogram maps a measured bitstring to the number of shots that produced it.
It is produced once per execution and read-only afterwards.
*/
type Histogram map[string]int

/*
Outcome is one observed measurement result with its frequency within the
histogram it came from.
*/
type Outcome struct {
	Bitstring   string
	Count       int
	Probability float64
}

// Index is the decimal value of the outcome's bitstring.
func (o Outcome) Index() (int, error) {
	idx, err := strconv.ParseInt(o.Bitstring, 2, 64)
	if err != nil {
		return 0, fmt.Errorf("outcome %q is not a bitstring: %w", o.Bitstring, err)
	}
	return int(idx), nil
}

// Shots is the total count across all outcomes.
func (h Histogram) Shots() int {
	var total int
	for _, count := range h {
		total += count
	}
	return total
}

/*
Outcomes lists the histogram in ascending bitstring order. Map iteration order
is random in Go, so every reduction walks this slice instead.
*/
func (h Histogram) Outcomes() []Outcome {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	total := h.Shots()
	outcomes := make([]Outcome, 0, len(keys))
	for _, k := range keys {
		o := Outcome{Bitstring: k, Count: h[k]}
		if total > 0 {
			o.Probability = float64(o.Count) / float64(total)
		}
		outcomes = append(outcomes, o)
	}

	return outcomes
}

/*
MostFrequent returns the outcome with the strictly highest count. On an exact
tie the first outcome in ascending bitstring order wins. The boolean is false
for an empty histogram.
*/
func (h Histogram) MostFrequent() (Outcome, bool) {
	var (
		best  Outcome
		found bool
	)

	for _, o := range h.Outcomes() {
		if !found || o.Count > best.Count {
			best = o
			found = true
		}
	}

	return best, found
}
