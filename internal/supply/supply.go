// Package supply generates the synthetic supply/demand ratio series shown next
// to the channel report. The numbers are mock data, not derived from hires.
package supply

import (
	"math"
	"math/rand/v2"
	"sort"
	"time"
)

// Points is the number of monthly samples per series.
const Points = 24

const (
	minRatio = 0.0
	maxRatio = 3.0
)

// Trend is the underlying shape a series is drawn around.
type Trend string

const (
	TrendRising          Trend = "rising"
	TrendSlightlyRising  Trend = "slightly_rising"
	TrendFlat            Trend = "flat"
	TrendFalling         Trend = "falling"
	TrendSlightlyFalling Trend = "slightly_falling"
	TrendVolatile        Trend = "volatile"
)

// Trends lists every shape the generator picks from.
var Trends = []Trend{TrendRising, TrendSlightlyRising, TrendFlat, TrendFalling, TrendSlightlyFalling, TrendVolatile}

// Series is one category's monthly supply/demand ratios.
type Series struct {
	Category string    `json:"category"`
	Trend    Trend     `json:"trend"`
	Months   []string  `json:"months"`
	Values   []float64 `json:"values"`
}

// Generator draws series from a seeded source so runs are reproducible.
type Generator struct {
	rng *rand.Rand
	end time.Time
}

// NewGenerator returns a generator whose last sample falls in end's month.
func NewGenerator(seed uint64, end time.Time) *Generator {
	return &Generator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		end: end,
	}
}

// Generate returns one series per distinct non-empty category. Categories are
// drawn in sorted order so the output depends only on the seed and the set.
func (g *Generator) Generate(categories []string) map[string]Series {
	seen := make(map[string]bool, len(categories))
	sorted := make([]string, 0, len(categories))
	for _, c := range categories {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		sorted = append(sorted, c)
	}
	sort.Strings(sorted)

	months := MonthLabels(g.end, Points)
	out := make(map[string]Series, len(sorted))
	for _, c := range sorted {
		trend := Trends[g.rng.IntN(len(Trends))]
		out[c] = Series{
			Category: c,
			Trend:    trend,
			Months:   months,
			Values:   g.draw(trend),
		}
	}
	return out
}

func (g *Generator) draw(trend Trend) []float64 {
	var from, to, noise float64
	switch trend {
	case TrendRising:
		from, to, noise = 0.5, 2.5, 0.3
	case TrendSlightlyRising:
		from, to, noise = 1.0, 2.0, 0.15
	case TrendFlat:
		from = g.uniform(1.0, 2.0)
		to, noise = from+g.uniform(-0.2, 0.2), 0.2
	case TrendFalling:
		from, to, noise = 2.5, 0.5, 0.3
	case TrendSlightlyFalling:
		from, to, noise = 2.0, 1.0, 0.15
	default:
		from = g.uniform(0.5, 2.5)
		to, noise = from+g.uniform(-0.5, 0.5), 0.6
	}

	values := make([]float64, Points)
	for i := range values {
		base := from + (to-from)*float64(i)/float64(Points-1)
		v := base + g.rng.NormFloat64()*noise
		values[i] = round1(clamp(v, minRatio, maxRatio))
	}
	return values
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// MonthLabels returns n consecutive "YYYY-MM" labels ending with end's month.
func MonthLabels(end time.Time, n int) []string {
	first := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(n - 1), 0)
	labels := make([]string, n)
	for i := range labels {
		labels[i] = first.AddDate(0, i, 0).Format("2006-01")
	}
	return labels
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
