package api

import (
	"sort"
	"sync"
	"time"
)

// samplesPerRoute bounds the durations kept for percentile estimation
const samplesPerRoute = 512

// RouteMetrics aggregates metrics for a specific route
type RouteMetrics struct {
	Method      string        `json:"method"`
	Route       string        `json:"route"`
	Count       int64         `json:"count"`
	ErrorCount  int64         `json:"errorCount"`
	TotalTime   time.Duration `json:"totalTime"`
	AvgTime     time.Duration `json:"avgTime"`
	MaxTime     time.Duration `json:"maxTime"`
	P95Time     time.Duration `json:"p95Time"`
	LastRequest time.Time     `json:"lastRequest"`

	samples []time.Duration
	next    int
}

// Metrics collects per-route request counters in memory
type Metrics struct {
	mu     sync.RWMutex
	routes map[string]*RouteMetrics
	total  int64
	errors int64
	since  time.Time
}

// MetricsSummary is the payload of the admin metrics endpoint
type MetricsSummary struct {
	Since         time.Time       `json:"since"`
	TotalRequests int64           `json:"totalRequests"`
	TotalErrors   int64           `json:"totalErrors"`
	Routes        []*RouteMetrics `json:"routes"`
}

// NewMetrics returns an empty collector
func NewMetrics() *Metrics {
	return &Metrics{
		routes: make(map[string]*RouteMetrics),
		since:  time.Now(),
	}
}

// Record adds one finished request. Status codes from 500 up count as errors.
func (m *Metrics) Record(method, route string, status int, d time.Duration, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := method + " " + route
	rm, ok := m.routes[key]
	if !ok {
		rm = &RouteMetrics{Method: method, Route: route}
		m.routes[key] = rm
	}

	rm.Count++
	rm.TotalTime += d
	rm.AvgTime = rm.TotalTime / time.Duration(rm.Count)
	rm.LastRequest = at
	if d > rm.MaxTime {
		rm.MaxTime = d
	}
	if len(rm.samples) < samplesPerRoute {
		rm.samples = append(rm.samples, d)
	} else {
		rm.samples[rm.next] = d
		rm.next = (rm.next + 1) % samplesPerRoute
	}

	m.total++
	if status >= 500 {
		rm.ErrorCount++
		m.errors++
	}
}

// Summary returns a snapshot sorted by request count, busiest first
func (m *Metrics) Summary() MetricsSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	routes := make([]*RouteMetrics, 0, len(m.routes))
	for _, rm := range m.routes {
		cp := *rm
		cp.samples = nil
		cp.P95Time = percentile(rm.samples, 0.95)
		routes = append(routes, &cp)
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Count != routes[j].Count {
			return routes[i].Count > routes[j].Count
		}
		return routes[i].Method+routes[i].Route < routes[j].Method+routes[j].Route
	})

	return MetricsSummary{
		Since:         m.since,
		TotalRequests: m.total,
		TotalErrors:   m.errors,
		Routes:        routes,
	}
}

func percentile(samples []time.Duration, p float64) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(float64(len(sorted)) * p)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
