package fu

func Mean(a []float32) float32 {
	var c float64
	for _, x := range a {
		c += float64(x)
	}
	return float32(c / float64(len(a)))
}

func Floats32(a []float64) []float32 {
	r := make([]float32, len(a))
	for i, x := range a {
		r[i] = float32(x)
	}
	return r
}

// Expandr turns a flat vector into a column of single-element rows.
func Expandr(a []float32) [][]float32 {
	r := make([][]float32, len(a))
	for i, x := range a {
		r[i] = []float32{x}
	}
	return r
}
