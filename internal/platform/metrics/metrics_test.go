package metrics

import (
	"net/http"
	"sync"
	"testing"
	"time"
)

func TestCollectorSnapshot(t *testing.T) {
	c := New()
	c.Record(http.StatusOK, 10*time.Millisecond)
	c.Record(http.StatusTooManyRequests, 30*time.Millisecond)
	c.Record(http.StatusInternalServerError, 20*time.Millisecond)
	c.SalaryCredited()
	c.CreditConflict()
	c.ExportServed("roster.csv")
	c.ExportServed("roster.csv")

	snap := c.Snapshot()
	if snap["requestsTotal"] != uint64(3) || snap["errorsTotal"] != uint64(1) || snap["rateLimitedTotal"] != uint64(1) {
		t.Fatalf("unexpected request counters %+v", snap)
	}
	if snap["avgDurationMs"] != float64(20) {
		t.Fatalf("expected avg 20ms, got %v", snap["avgDurationMs"])
	}
	if snap["salaryCreditsTotal"] != uint64(1) || snap["creditConflictsTotal"] != uint64(1) || snap["payslipsSentTotal"] != uint64(0) {
		t.Fatalf("unexpected domain counters %+v", snap)
	}
	exports := snap["exportsTotal"].(map[string]uint64)
	if exports["roster.csv"] != 2 {
		t.Fatalf("expected 2 roster exports, got %v", exports)
	}
}

func TestCollectorConcurrentUse(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Record(http.StatusOK, time.Millisecond)
			c.ExportServed("payslip.pdf")
		}()
	}
	wg.Wait()
	if got := c.Snapshot()["requestsTotal"]; got != uint64(50) {
		t.Fatalf("expected 50 requests, got %v", got)
	}
}

func TestNilCollectorDomainCountersAreSafe(t *testing.T) {
	var c *Collector
	c.SalaryCredited()
	c.CreditConflict()
	c.PayslipSent()
	c.ExportServed("roster.xlsx")
}
