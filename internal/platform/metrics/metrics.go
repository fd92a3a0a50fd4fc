package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector keeps process-lifetime counters exposed on /metrics.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64

	salaryCredits   uint64
	creditConflicts uint64
	payslipsSent    uint64

	mu      sync.Mutex
	exports map[string]uint64
}

func New() *Collector {
	return &Collector{exports: map[string]uint64{}}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) SalaryCredited() {
	if c != nil {
		atomic.AddUint64(&c.salaryCredits, 1)
	}
}

func (c *Collector) CreditConflict() {
	if c != nil {
		atomic.AddUint64(&c.creditConflicts, 1)
	}
}

func (c *Collector) PayslipSent() {
	if c != nil {
		atomic.AddUint64(&c.payslipsSent, 1)
	}
}

// ExportServed counts a successful download, keyed by "<kind>.<format>",
// e.g. "roster.csv".
func (c *Collector) ExportServed(kind string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.exports[kind]++
	c.mu.Unlock()
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}

	c.mu.Lock()
	exports := make(map[string]uint64, len(c.exports))
	for k, v := range c.exports {
		exports[k] = v
	}
	c.mu.Unlock()

	return map[string]any{
		"requestsTotal":        total,
		"errorsTotal":          errs,
		"rateLimitedTotal":     limited,
		"avgDurationMs":        avg,
		"totalDurationMs":      totalMs,
		"salaryCreditsTotal":   atomic.LoadUint64(&c.salaryCredits),
		"creditConflictsTotal": atomic.LoadUint64(&c.creditConflicts),
		"payslipsSentTotal":    atomic.LoadUint64(&c.payslipsSent),
		"exportsTotal":         exports,
	}
}
