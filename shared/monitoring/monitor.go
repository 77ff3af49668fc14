package monitoring

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"
)

// Operation names recorded by the backend client
const (
	OpFetchNDVI = "fetch_ndvi"
	OpDetect    = "detect_degradation"
	OpProbe     = "probe"
)

type outcome struct {
	success  bool
	at       time.Time
	duration time.Duration
	err      string
}

// Monitor keeps the last outcome of each backend operation.
// It is written from request goroutines and read by the health server.
type Monitor struct {
	mu        sync.RWMutex
	outcomes  map[string]outcome
	lastProbe outcome
	metrics   *Metrics
}

func NewMonitor() *Monitor {
	return &Monitor{
		outcomes: make(map[string]outcome),
		metrics:  NewMetrics(),
	}
}

// Metrics exposes the Prometheus collectors backing this monitor
func (m *Monitor) Metrics() *Metrics {
	return m.metrics
}

func (m *Monitor) RecordSuccess(op string, duration time.Duration) {
	m.mu.Lock()
	m.outcomes[op] = outcome{success: true, at: time.Now(), duration: duration}
	m.mu.Unlock()

	m.metrics.observe(op, "success", duration)
	log.Printf("✅ %s succeeded (took %v)", op, duration)
}

func (m *Monitor) RecordFailure(op string, err error, duration time.Duration) {
	m.mu.Lock()
	m.outcomes[op] = outcome{success: false, at: time.Now(), duration: duration, err: err.Error()}
	m.mu.Unlock()

	m.metrics.observe(op, "failure", duration)
	log.Printf("⚠️  %s failed: %v (Duration: %v)", op, err, duration)
}

// RecordProbe stores the result of a backend reachability check
func (m *Monitor) RecordProbe(err error, duration time.Duration) {
	o := outcome{success: err == nil, at: time.Now(), duration: duration}
	if err != nil {
		o.err = err.Error()
	}

	m.mu.Lock()
	m.lastProbe = o
	m.mu.Unlock()

	m.metrics.setUp(err == nil)
	if err != nil {
		m.metrics.observe(OpProbe, "failure", duration)
		log.Printf("🚨 Backend probe failed: %v", err)
		return
	}
	m.metrics.observe(OpProbe, "success", duration)
}

// BackendUp reports the last probe result; known is false before the first probe
func (m *Monitor) BackendUp() (up bool, known bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.lastProbe.at.IsZero() {
		return false, false
	}
	return m.lastProbe.success, true
}

func (m *Monitor) IsHealthy() bool {
	up, known := m.BackendUp()
	if !known {
		return true // No probes yet, assume healthy
	}
	return up
}

func (m *Monitor) GetStatusSummary() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var parts []string
	if m.lastProbe.at.IsZero() {
		parts = append(parts, "backend: not probed yet")
	} else if m.lastProbe.success {
		parts = append(parts, fmt.Sprintf("✅ backend up (probed %s)", m.lastProbe.at.Format("Jan 2 15:04:05")))
	} else {
		parts = append(parts, fmt.Sprintf("❌ backend down (probed %s): %s", m.lastProbe.at.Format("Jan 2 15:04:05"), m.lastProbe.err))
	}

	ops := make([]string, 0, len(m.outcomes))
	for op := range m.outcomes {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	for _, op := range ops {
		o := m.outcomes[op]
		if o.success {
			parts = append(parts, fmt.Sprintf("%s: ok at %s", op, o.at.Format("Jan 2 15:04:05")))
		} else {
			parts = append(parts, fmt.Sprintf("%s: failed at %s (%s)", op, o.at.Format("Jan 2 15:04:05"), o.err))
		}
	}

	return strings.Join(parts, "\n")
}
