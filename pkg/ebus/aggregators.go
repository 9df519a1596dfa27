package ebus

import "fmt"

type EventAggregatorFunc func(b *Bus, name string, value float64)

// EventAggregator derives new topics from published ones.
type EventAggregator struct {
	fun EventAggregatorFunc
}

func (b *Bus) RegisterAggregator(aggs ...*EventAggregator) {
	b.aggregatorsLock.Lock()
	defer b.aggregatorsLock.Unlock()
outer:
	for _, agg := range aggs {
		for _, existing := range b.aggregators {
			if existing == agg {
				continue outer
			}
		}
		b.aggregators = append(b.aggregators, agg)
	}
}

// PairAggregator publishes fn(first, second) on outputName once both
// inputs have been updated since the last output.
func PairAggregator(first, second, outputName string, fn func(a, b float64) float64) *EventAggregator {
	var firstUpdated, secondUpdated bool
	var firstValue, secondValue float64
	return &EventAggregator{
		fun: func(b *Bus, name string, value float64) {
			if name == first {
				firstValue = value
				firstUpdated = true
			}
			if name == second {
				secondValue = value
				secondUpdated = true
			}
			if firstUpdated && secondUpdated {
				if err := b.Publish(outputName, fn(firstValue, secondValue)); err != nil {
					return
				}
				firstUpdated, secondUpdated = false, false
			}
		},
	}
}

func DIFFAggregator(first, second, outputName string) *EventAggregator {
	return PairAggregator(first, second, outputName, func(a, b float64) float64 { return b - a })
}

func ProductAggregator(first, second, outputName string) *EventAggregator {
	return PairAggregator(first, second, outputName, func(a, b float64) float64 { return a * b })
}

// NewAggregator builds an aggregator from its config name.
func NewAggregator(op, first, second, output string) (*EventAggregator, error) {
	switch op {
	case "diff":
		return DIFFAggregator(first, second, output), nil
	case "product":
		return ProductAggregator(first, second, output), nil
	}
	return nil, fmt.Errorf("unknown aggregator %q", op)
}
