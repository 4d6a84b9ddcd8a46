package drag

import "time"

const frame = 16 * time.Millisecond

// measuredState returns a state with n measured rows of equal size laid out
// back to back, ids 0..n-1, all at level 0
func measuredState(n int, size float64, opts Options) (*State[int], []Row[int]) {
	s := NewState[int](opts, nil, nil)
	rows := make([]Row[int], n)
	for i := range rows {
		m := Measurement{Offset: float64(i) * size, Size: size}
		s.Measure(i, m)
		rows[i] = Row[int]{Index: i, ID: i, Measurement: m}
	}
	return s, rows
}

// pass runs the position engine over every row once, in index order
func pass(s *State[int], rows []Row[int]) []Transform {
	out := make([]Transform, len(rows))
	for i, r := range rows {
		out[i] = ComputeRowTransform(s, r)
	}
	return out
}

func translations(ts []Transform) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = t.TranslateY
	}
	return out
}
