package ratelimit

import "time"

// Rule limits one method+path pair.
type Rule struct {
	Method string
	Path   string
	// Limit requests are refilled per Window
	Limit  int
	Window time.Duration
	// Burst is the bucket capacity; zero uses Limit
	Burst int
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	Rules   []Rule
	// CleanupInterval is how often idle buckets are swept; zero disables the sweeper
	CleanupInterval time.Duration
	// IdleTTL is how long a bucket may go unused before it is swept
	IdleTTL time.Duration
}

// DefaultConfig limits uploads per client, the only endpoint that parses a
// whole workbook, and bounds report recomputation more loosely.
func DefaultConfig(uploadsPerMinute int) Config {
	if uploadsPerMinute <= 0 {
		uploadsPerMinute = 30
	}
	return Config{
		Enabled: true,
		Rules: []Rule{
			{Method: "POST", Path: "/dataset", Limit: uploadsPerMinute, Window: time.Minute, Burst: max(1, uploadsPerMinute/6)},
			{Method: "POST", Path: "/report", Limit: 600, Window: time.Minute, Burst: 60},
		},
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
	}
}

func (c Config) match(method, path string) *Rule {
	for i := range c.Rules {
		if c.Rules[i].Method == method && c.Rules[i].Path == path {
			return &c.Rules[i]
		}
	}
	return nil
}
