package cache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func isolateGauges(t *testing.T) *prometheus.Registry {
	t.Helper()
	reg := prometheus.NewRegistry()
	prev := gaugeRegisterer
	gaugeRegisterer = reg
	t.Cleanup(func() { gaugeRegisterer = prev })
	return reg
}

func newInstrumented(t *testing.T, name string) Store {
	t.Helper()
	s, err := New("memory", Options{Size: 10, TTL: time.Hour, Name: name})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestInstrumentedStore_Counters(t *testing.T) {
	isolateGauges(t)
	ctx := context.Background()
	s := newInstrumented(t, "test-counters")

	hits := testutil.ToFloat64(HitsTotal.WithLabelValues("test-counters"))
	misses := testutil.ToFloat64(MissesTotal.WithLabelValues("test-counters"))
	writes := testutil.ToFloat64(WritesTotal.WithLabelValues("test-counters"))

	s.Get(ctx, "absent")
	s.Set(ctx, "k", []byte("v"))
	s.Get(ctx, "k")
	s.Get(ctx, "k")

	if got := testutil.ToFloat64(HitsTotal.WithLabelValues("test-counters")) - hits; got != 2 {
		t.Errorf("hits delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(MissesTotal.WithLabelValues("test-counters")) - misses; got != 1 {
		t.Errorf("misses delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(WritesTotal.WithLabelValues("test-counters")) - writes; got != 1 {
		t.Errorf("writes delta = %v, want 1", got)
	}
}

func TestInstrumentedStore_EntriesGauge(t *testing.T) {
	reg := isolateGauges(t)
	ctx := context.Background()
	s := newInstrumented(t, "test-entries")

	s.Set(ctx, "a", []byte("1"))
	s.Set(ctx, "b", []byte("2"))

	if n, err := testutil.GatherAndCount(reg, "cache_entries"); err != nil || n != 1 {
		t.Fatalf("GatherAndCount = %d, %v; want 1 series", n, err)
	}
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if got := families[0].GetMetric()[0].GetGauge().GetValue(); got != 2 {
		t.Errorf("cache_entries = %v, want 2", got)
	}
}

func TestInstrumentedStore_CloseUnregisters(t *testing.T) {
	reg := isolateGauges(t)
	s, err := New("memory", Options{Size: 10, TTL: time.Hour, Name: "test-close"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if n, _ := testutil.GatherAndCount(reg, "cache_entries"); n != 0 {
		t.Errorf("expected gauge to be unregistered, found %d series", n)
	}
}

func TestInstrumentedStore_ReplacesGaugeForSameName(t *testing.T) {
	reg := isolateGauges(t)
	newInstrumented(t, "test-replace")
	second := newInstrumented(t, "test-replace")

	second.Set(context.Background(), "x", []byte("1"))
	if n, err := testutil.GatherAndCount(reg, "cache_entries"); err != nil || n != 1 {
		t.Errorf("GatherAndCount = %d, %v; want a single series", n, err)
	}
}
