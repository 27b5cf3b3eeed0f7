package qcircuit

import (
	"errors"
	"fmt"
)

/*
ReduceSearch collapses a search histogram into a single answer. The most
frequent bitstring (ties to the smallest bitstring) is read as a database
index. An index past the end of the database yields a not-found result with
no confidence; otherwise the indexed item is returned, found when it is the
target, with confidence count/shots.

Parameters:
  - histogram: Measurement counts from the dispatcher
  - targetIndex: Index the oracle marked
  - database: Items being searched
  - shots: Shot count the confidence is relative to

Returns:
  - *SearchResult: The reduced answer; UsedRealHardware is left for the caller
  - error: When the histogram is empty or holds a non-binary key
*/
func ReduceSearch(histogram Histogram, targetIndex int, database []Item, shots int) (*SearchResult, error) {
	best, ok := histogram.MostFrequent()
	if !ok {
		return nil, errors.New("reduce search: empty histogram")
	}

	if shots < 1 {
		return nil, fmt.Errorf("reduce search: shot count must be positive, got %d", shots)
	}

	measured, err := best.Index()
	if err != nil {
		return nil, err
	}

	if measured >= len(database) {
		return &SearchResult{Result: nil, Found: false}, nil
	}

	confidence := float64(best.Count) / float64(shots)

	return &SearchResult{
		Result:     database[measured],
		Found:      measured == targetIndex,
		Confidence: &confidence,
	}, nil
}

/*
ReduceKey returns the single bitstring of a one-shot key generation run.
*/
func ReduceKey(histogram Histogram) (*KeyResult, error) {
	if len(histogram) != 1 {
		return nil, fmt.Errorf("reduce key: expected exactly one outcome, got %d", len(histogram))
	}

	best, _ := histogram.MostFrequent()

	return &KeyResult{
		Key:    best.Bitstring,
		Length: len(best.Bitstring),
	}, nil
}
