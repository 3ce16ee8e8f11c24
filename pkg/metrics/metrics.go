// Package metrics implements the in-memory counters the workflow engine
// increments at run boundaries, exported both as a point-in-time
// snapshot and, optionally, mirrored into a Prometheus registry for
// scraping.
package metrics

import (
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Snapshot is the shape returned by ExportMetrics: flat counters plus
// counters bucketed by a label value within a named dimension.
type Snapshot struct {
	Counters         map[string]int64            `json:"counters"`
	CountersByLabels map[string]map[string]int64 `json:"counters_by_labels"`
}

// Collector is a thread-safe counter store. The zero value is not
// usable; construct with NewCollector.
type Collector struct {
	mu               sync.Mutex
	counters         map[string]int64
	countersByLabels map[string]map[string]int64

	// promRegistry, when non-nil, mirrors every increment into
	// Prometheus counter vectors so the same numbers can be scraped.
	promRegistry *prometheus.Registry
	promCounters map[string]prometheus.Counter
	promLabeled  map[string]*prometheus.CounterVec
}

// NewCollector returns a Collector with no Prometheus mirror.
func NewCollector() *Collector {
	return &Collector{
		counters:         make(map[string]int64),
		countersByLabels: make(map[string]map[string]int64),
	}
}

// NewCollectorWithPrometheus returns a Collector that also registers a
// prometheus.Counter/CounterVec for each distinct name it sees, against
// reg. Wiring reg into an HTTP handler is left to the caller. A name
// used with both Inc and IncLabeled cannot be mirrored: the second
// registration under that name panics.
func NewCollectorWithPrometheus(reg *prometheus.Registry) *Collector {
	c := NewCollector()
	c.promRegistry = reg
	c.promCounters = make(map[string]prometheus.Counter)
	c.promLabeled = make(map[string]*prometheus.CounterVec)
	return c
}

// Inc increments the flat counter `name` by one.
func (c *Collector) Inc(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[name]++

	if c.promRegistry == nil {
		return
	}
	pc, ok := c.promCounters[name]
	if !ok {
		pc = prometheus.NewCounter(prometheus.CounterOpts{
			Name: sanitizeMetricName(name),
			Help: "ai-risk-engine counter: " + name,
		})
		c.promRegistry.MustRegister(pc)
		c.promCounters[name] = pc
	}
	pc.Inc()
}

// IncLabeled increments the counter named `name`, bucketed under
// `label`, by one.
func (c *Collector) IncLabeled(name, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	byLabel, ok := c.countersByLabels[name]
	if !ok {
		byLabel = make(map[string]int64)
		c.countersByLabels[name] = byLabel
	}
	byLabel[label]++

	if c.promRegistry == nil {
		return
	}
	vec, ok := c.promLabeled[name]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: sanitizeMetricName(name),
			Help: "ai-risk-engine labeled counter: " + name,
		}, []string{"label"})
		c.promRegistry.MustRegister(vec)
		c.promLabeled[name] = vec
	}
	vec.WithLabelValues(label).Inc()
}

// ExportMetrics returns a deep-copied point-in-time snapshot of every
// counter recorded so far.
func (c *Collector) ExportMetrics() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Counters:         make(map[string]int64, len(c.counters)),
		CountersByLabels: make(map[string]map[string]int64, len(c.countersByLabels)),
	}
	for k, v := range c.counters {
		snap.Counters[k] = v
	}
	for k, byLabel := range c.countersByLabels {
		cp := make(map[string]int64, len(byLabel))
		for l, v := range byLabel {
			cp[l] = v
		}
		snap.CountersByLabels[k] = cp
	}
	return snap
}

// Names returns every counter and labeled-counter name recorded so
// far, sorted, mostly useful for deterministic test assertions.
func (c *Collector) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]struct{}, len(c.counters)+len(c.countersByLabels))
	for k := range c.counters {
		seen[k] = struct{}{}
	}
	for k := range c.countersByLabels {
		seen[k] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func sanitizeMetricName(name string) string {
	replaced := strings.ReplaceAll(name, ".", "_")
	replaced = strings.ReplaceAll(replaced, "-", "_")
	return "ai_risk_engine_" + replaced
}
