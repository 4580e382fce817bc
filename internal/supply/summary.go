package supply

// Summary condenses a series for display.
type Summary struct {
	Latest float64 `json:"latest"`
	Mean   float64 `json:"mean"`
	// Slope and Intercept describe the least-squares line over sample index
	Slope     float64   `json:"slope"`
	Intercept float64   `json:"intercept"`
	TrendLine []float64 `json:"trend_line"`
}

// Summarize computes the latest value, mean and linear trend of values.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{TrendLine: []float64{}}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	s := Summary{Latest: values[n-1], Mean: sumY / fn}

	if denom := fn*sumXX - sumX*sumX; denom != 0 {
		s.Slope = (fn*sumXY - sumX*sumY) / denom
	}
	s.Intercept = (sumY - s.Slope*sumX) / fn

	s.TrendLine = make([]float64, n)
	for i := range s.TrendLine {
		s.TrendLine[i] = s.Intercept + s.Slope*float64(i)
	}
	return s
}
