package session

import (
	"fmt"
	"math"
	"sort"
)

type Choice[T any] struct {
	Weight float64
	Value  T
}

// Dispatcher maps a uniform roll in [0,1) onto weighted choices through a
// cumulative table. Thresholds are normalised so a roll below the first
// weight's share selects the first choice.
type Dispatcher[T any] struct {
	cum    []float64
	values []T
}

func NewDispatcher[T any](choices ...Choice[T]) (*Dispatcher[T], error) {
	if len(choices) == 0 {
		return nil, ErrEmptyDispatcher
	}
	d := &Dispatcher[T]{
		cum:    make([]float64, len(choices)),
		values: make([]T, len(choices)),
	}
	total := 0.0
	for i, c := range choices {
		if !(c.Weight > 0) || math.IsInf(c.Weight, 0) {
			return nil, fmt.Errorf("%w: choice %d has weight %g", ErrBadWeight, i, c.Weight)
		}
		total += c.Weight
		d.cum[i] = total
		d.values[i] = c.Value
	}
	for i := range d.cum {
		// Rounded so that {0.34, 0.33, 0.33} yields exactly 0.34 and 0.67.
		d.cum[i] = math.Round(d.cum[i]/total*1e12) / 1e12
	}
	d.cum[len(d.cum)-1] = 1
	return d, nil
}

// Pick returns the first choice whose cumulative threshold exceeds roll.
func (d *Dispatcher[T]) Pick(roll float64) T {
	i := sort.Search(len(d.cum), func(i int) bool { return d.cum[i] > roll })
	if i == len(d.cum) {
		i--
	}
	return d.values[i]
}

func (d *Dispatcher[T]) Len() int { return len(d.values) }
