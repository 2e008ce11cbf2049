package botdetect

import (
	"sort"
	"sync"
)

const (
	// pathHighWater triggers eviction of a bot's path map.
	pathHighWater = 100
	// pathKeepCount is how many highest-count paths survive an eviction.
	pathKeepCount = 50
)

// Counter tracks per-bot visit counts by path. It is advisory telemetry: the
// render pipeline never reads it back, and recording can never fail or block
// a request. Guarded by a mutex since handlers run on many goroutines; a lost
// increment would be tolerable, a torn map entry would not.
type Counter struct {
	mu     sync.Mutex
	visits map[string]map[string]int
}

// NewCounter creates an empty visit counter.
func NewCounter() *Counter {
	return &Counter{visits: make(map[string]map[string]int)}
}

// RecordVisit increments the counter for a bot/path pair. Unknown clients are
// pooled under "other". Once a bot accumulates 100 distinct paths, only the
// 50 highest-count paths are kept.
func (c *Counter) RecordVisit(bot, path string) {
	if bot == "" {
		bot = "other"
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	paths, ok := c.visits[bot]
	if !ok {
		paths = make(map[string]int)
		c.visits[bot] = paths
	}
	paths[path]++
	if len(paths) >= pathHighWater {
		c.visits[bot] = evictLowest(paths)
	}
}

// Snapshot returns a deep copy of the current counts.
func (c *Counter) Snapshot() map[string]map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]map[string]int, len(c.visits))
	for bot, paths := range c.visits {
		cp := make(map[string]int, len(paths))
		for p, n := range paths {
			cp[p] = n
		}
		out[bot] = cp
	}
	return out
}

func evictLowest(paths map[string]int) map[string]int {
	type entry struct {
		path  string
		count int
	}
	entries := make([]entry, 0, len(paths))
	for p, n := range paths {
		entries = append(entries, entry{path: p, count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].path < entries[j].path
	})
	if len(entries) > pathKeepCount {
		entries = entries[:pathKeepCount]
	}
	kept := make(map[string]int, len(entries))
	for _, e := range entries {
		kept[e.path] = e.count
	}
	return kept
}
