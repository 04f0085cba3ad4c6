package telemetry

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects API client metrics
type Metrics struct {
	mu sync.RWMutex

	// Counters
	RequestsStarted   int64
	RequestsCompleted int64
	RequestsFailed    int64
	Retries           int64
	RateLimited       int64

	// Gauges
	ActiveRequests int64

	// Histograms (simplified)
	apiLatencies []time.Duration

	// Exporter (optional)
	exporter MetricsExporter
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	return &Metrics{
		apiLatencies: make([]time.Duration, 0, 1000),
	}
}

// IncRequestsStarted increments the requests started counter
func (m *Metrics) IncRequestsStarted() {
	atomic.AddInt64(&m.RequestsStarted, 1)
	atomic.AddInt64(&m.ActiveRequests, 1)
}

// IncRequestsCompleted increments the requests completed counter
func (m *Metrics) IncRequestsCompleted() {
	atomic.AddInt64(&m.RequestsCompleted, 1)
	atomic.AddInt64(&m.ActiveRequests, -1)
}

// IncRequestsFailed increments the requests failed counter
func (m *Metrics) IncRequestsFailed() {
	atomic.AddInt64(&m.RequestsFailed, 1)
	atomic.AddInt64(&m.ActiveRequests, -1)
}

// IncRetries increments the retry counter
func (m *Metrics) IncRetries() {
	atomic.AddInt64(&m.Retries, 1)
}

// IncRateLimited increments the rate-limited response counter
func (m *Metrics) IncRateLimited() {
	atomic.AddInt64(&m.RateLimited, 1)
}

// RecordAPILatency records an API call latency
func (m *Metrics) RecordAPILatency(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiLatencies = append(m.apiLatencies, d)
}

// GetSummary returns a summary of collected metrics
func (m *Metrics) GetSummary() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summary := map[string]interface{}{
		"requests_started":   atomic.LoadInt64(&m.RequestsStarted),
		"requests_completed": atomic.LoadInt64(&m.RequestsCompleted),
		"requests_failed":    atomic.LoadInt64(&m.RequestsFailed),
		"retries":            atomic.LoadInt64(&m.Retries),
		"rate_limited":       atomic.LoadInt64(&m.RateLimited),
		"active_requests":    atomic.LoadInt64(&m.ActiveRequests),
	}

	// Add latency stats
	if len(m.apiLatencies) > 0 {
		var total time.Duration
		max := m.apiLatencies[0]
		for _, d := range m.apiLatencies {
			total += d
			if d > max {
				max = d
			}
		}
		summary["avg_api_latency_ms"] = total.Milliseconds() / int64(len(m.apiLatencies))
		summary["max_api_latency_ms"] = max.Milliseconds()
	}

	return summary
}

// Reset resets all metrics
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	atomic.StoreInt64(&m.RequestsStarted, 0)
	atomic.StoreInt64(&m.RequestsCompleted, 0)
	atomic.StoreInt64(&m.RequestsFailed, 0)
	atomic.StoreInt64(&m.Retries, 0)
	atomic.StoreInt64(&m.RateLimited, 0)
	atomic.StoreInt64(&m.ActiveRequests, 0)

	m.apiLatencies = m.apiLatencies[:0]
}

// SetExporter attaches a metrics exporter.
func (m *Metrics) SetExporter(e MetricsExporter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exporter = e
}

// Flush exports the current metrics snapshot with the given event label.
func (m *Metrics) Flush(event string, labels map[string]string) {
	m.mu.RLock()
	exporter := m.exporter
	m.mu.RUnlock()

	if exporter == nil {
		return
	}

	snapshot := MetricsSnapshot{
		Timestamp: time.Now(),
		Event:     event,
		Metrics:   m.GetSummary(),
		Labels:    labels,
	}
	// Best-effort export.
	_ = exporter.Export(snapshot)
}
