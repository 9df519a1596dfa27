package gauge

import "github.com/roffe/txgauge/pkg/common"

// ValueState holds the current value clamped to [min,max].
type ValueState struct {
	min, max float64
	value    float64
}

func NewValueState(min, max float64) *ValueState {
	return &ValueState{min: min, max: max, value: min}
}

// SetValue clamps v into range. Out of range input is not an error.
func (s *ValueState) SetValue(v float64) {
	s.value = common.Clamp(v, s.min, s.max)
}

func (s *ValueState) Value() float64 { return s.value }

func (s *ValueState) Percent() float64 {
	span := s.max - s.min
	if span == 0 {
		span = 1
	}
	return (s.value - s.min) / span
}
