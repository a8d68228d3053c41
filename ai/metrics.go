package ai

import (
	"sync/atomic"
	"time"
)

// SearchMetric describes one minimax move search.
type SearchMetric struct {
	Depth    int
	Workers  int
	Duration time.Duration
	Nodes    int
	Cutoffs  int
	FastPath bool // Move found by the win/block shortcut, no search ran
}

// Collector accumulates counters during a search. Counters are atomic since
// root workers report concurrently.
type Collector interface {
	Start(depth, workers int)
	AddNode()
	AddCutoff()
	SetFastPath(value bool)
	Complete() SearchMetric
}

type collector struct {
	depth     int
	workers   int
	startTime time.Time
	nodes     atomic.Int64
	cutoffs   atomic.Int64
	fastPath  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(depth, workers int) {
	c.startTime = time.Now()
	c.depth = depth
	c.workers = workers
	c.nodes.Store(0)
	c.cutoffs.Store(0)
	c.fastPath.Store(false)
}

func (c *collector) AddNode() {
	c.nodes.Add(1)
}

func (c *collector) AddCutoff() {
	c.cutoffs.Add(1)
}

func (c *collector) SetFastPath(value bool) {
	c.fastPath.Store(value)
}

func (c *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:    c.depth,
		Workers:  c.workers,
		Duration: time.Since(c.startTime),
		Nodes:    int(c.nodes.Load()),
		Cutoffs:  int(c.cutoffs.Load()),
		FastPath: c.fastPath.Load(),
	}
}

type dummyCollector struct{}

// NewDummyCollector returns a no-op collector for strategies that run with
// metrics off.
func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start(depth, workers int) {}
func (c *dummyCollector) AddNode()                 {}
func (c *dummyCollector) AddCutoff()               {}
func (c *dummyCollector) SetFastPath(value bool)   {}
func (c *dummyCollector) Complete() SearchMetric   { return SearchMetric{} }
