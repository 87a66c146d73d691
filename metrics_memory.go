package mqttcodec

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
)

// MemoryMetrics is an in-memory implementation of Metrics for testing and
// single-process use.
type MemoryMetrics struct {
	mu       sync.Mutex
	counters map[string]*memoryCounter
	gauges   map[string]*memoryGauge
}

// NewMemoryMetrics creates a new in-memory metrics instance.
func NewMemoryMetrics() *MemoryMetrics {
	return &MemoryMetrics{
		counters: make(map[string]*memoryCounter),
		gauges:   make(map[string]*memoryGauge),
	}
}

func labelsKey(name string, labels MetricLabels) string {
	if len(labels) == 0 {
		return name
	}

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	key := name
	for _, k := range keys {
		key += "|" + k + "=" + labels[k]
	}
	return key
}

// Counter returns the counter registered under name and labels, creating
// it on first use.
func (m *MemoryMetrics) Counter(name string, labels MetricLabels) Counter {
	key := labelsKey(name, labels)

	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.counters[key]; ok {
		return c
	}

	c := &memoryCounter{}
	m.counters[key] = c
	return c
}

// Gauge returns the gauge registered under name and labels, creating it on
// first use.
func (m *MemoryMetrics) Gauge(name string, labels MetricLabels) Gauge {
	key := labelsKey(name, labels)

	m.mu.Lock()
	defer m.mu.Unlock()

	if g, ok := m.gauges[key]; ok {
		return g
	}

	g := &memoryGauge{}
	m.gauges[key] = g
	return g
}

type memoryCounter struct {
	bits atomic.Uint64
}

func (c *memoryCounter) Inc() {
	c.Add(1)
}

func (c *memoryCounter) Add(delta float64) {
	for {
		old := c.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if c.bits.CompareAndSwap(old, next) {
			return
		}
	}
}

func (c *memoryCounter) Value() float64 {
	return math.Float64frombits(c.bits.Load())
}

type memoryGauge struct {
	bits atomic.Uint64
}

func (g *memoryGauge) Set(value float64) {
	g.bits.Store(math.Float64bits(value))
}

func (g *memoryGauge) Value() float64 {
	return math.Float64frombits(g.bits.Load())
}
