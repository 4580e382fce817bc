package channels

import "sort"

// counter tallies labels and returns them by descending count, ties by label.
type counter struct {
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(label string) {
	c.counts[label]++
}

func (c *counter) total() int {
	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

type labelCount struct {
	label string
	count int
}

func (c *counter) sorted() []labelCount {
	out := make([]labelCount, 0, len(c.counts))
	for l, n := range c.counts {
		if n > 0 {
			out = append(out, labelCount{label: l, count: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].label < out[j].label
	})
	return out
}
