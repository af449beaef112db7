package edgegate

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsIncAndValue(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(MetricAuthSuccess)
	m.Inc(MetricAuthSuccess)
	m.Inc(MetricInvalidationTriggered)

	if got := m.Value(MetricAuthSuccess); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := m.Value(MetricInvalidationTriggered); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := m.Value(MetricAuthFailure); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestMetricsDisabledIsNoOp(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})

	m.Inc(MetricAuthSuccess)
	m.Observe(MetricVerifyLatency, time.Millisecond)

	if got := m.Value(MetricAuthSuccess); got != 0 {
		t.Fatalf("disabled metrics must not count, got %d", got)
	}
	snap := m.Snapshot()
	if len(snap.Counters) != 0 || len(snap.Histograms) != 0 {
		t.Fatalf("disabled snapshot must be empty, got %+v", snap)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.Inc(MetricAuthSuccess)
	m.Observe(MetricVerifyLatency, time.Millisecond)
	if m.Value(MetricAuthSuccess) != 0 {
		t.Fatal("nil metrics must read zero")
	}
	m.Snapshot()
}

func TestObserveFillsLatencyBuckets(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})

	samples := []struct {
		d      time.Duration
		bucket int
	}{
		{time.Millisecond, 0},
		{8 * time.Millisecond, 1},
		{20 * time.Millisecond, 2},
		{40 * time.Millisecond, 3},
		{90 * time.Millisecond, 4},
		{200 * time.Millisecond, 5},
		{400 * time.Millisecond, 6},
		{time.Second, 7},
	}
	for _, s := range samples {
		m.Observe(MetricVerifyLatency, s.d)
	}

	buckets := m.Snapshot().Histograms[MetricVerifyLatency]
	if len(buckets) != histBucketCount {
		t.Fatalf("expected %d buckets, got %d", histBucketCount, len(buckets))
	}
	for _, s := range samples {
		if buckets[s.bucket] != 1 {
			t.Fatalf("duration %v: expected bucket %d to hold 1, got %v", s.d, s.bucket, buckets)
		}
	}
}

func TestObserveIgnoresNonLatencyIDs(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})
	m.Observe(MetricAuthSuccess, time.Millisecond)

	snap := m.Snapshot()
	if _, ok := snap.Histograms[MetricAuthSuccess]; ok {
		t.Fatal("only the verify latency metric carries a histogram")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})
	m.Inc(MetricAuthSuccess)
	m.Observe(MetricVerifyLatency, time.Millisecond)

	snap := m.Snapshot()
	snap.Counters[MetricAuthSuccess] = 99
	snap.Histograms[MetricVerifyLatency][0] = 99

	fresh := m.Snapshot()
	if fresh.Counters[MetricAuthSuccess] != 1 {
		t.Fatal("snapshot counters must be a deep copy")
	}
	if fresh.Histograms[MetricVerifyLatency][0] != 1 {
		t.Fatal("snapshot histograms must be a deep copy")
	}
}

func TestMetricsConcurrentInc(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	var wg sync.WaitGroup
	const workers = 8
	const perWorker = 1000
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				m.Inc(MetricRequestLogged)
			}
		}()
	}
	wg.Wait()

	if got := m.Value(MetricRequestLogged); got != workers*perWorker {
		t.Fatalf("expected %d, got %d", workers*perWorker, got)
	}
}
