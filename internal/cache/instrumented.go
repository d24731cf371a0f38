package cache

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HitsTotal counts lookups that found an entry.
	HitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits.",
		},
		[]string{"cache"},
	)

	// MissesTotal counts lookups that found nothing.
	MissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses.",
		},
		[]string{"cache"},
	)

	// WritesTotal counts stored entries.
	WritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_writes_total",
			Help: "Total number of values written to the cache.",
		},
		[]string{"cache"},
	)
)

func init() {
	prometheus.MustRegister(HitsTotal, MissesTotal, WritesTotal)
}

var (
	gaugesMu sync.Mutex
	gauges   = make(map[string]prometheus.Collector)

	// gaugeRegisterer is swapped by tests for an isolated registry.
	gaugeRegisterer prometheus.Registerer = prometheus.DefaultRegisterer
)

// instrumentedStore counts hits, misses and writes, and exposes the entry count
// as a gauge read at scrape time.
type instrumentedStore struct {
	Store
	name string
}

func instrument(inner Store, name string) *instrumentedStore {
	entries := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name:        "cache_entries",
		Help:        "Current number of entries in the cache.",
		ConstLabels: prometheus.Labels{"cache": name},
	}, func() float64 {
		return float64(inner.Len(context.Background()))
	})

	gaugesMu.Lock()
	if old, ok := gauges[name]; ok {
		gaugeRegisterer.Unregister(old)
	}
	gauges[name] = entries
	_ = gaugeRegisterer.Register(entries)
	gaugesMu.Unlock()

	return &instrumentedStore{Store: inner, name: name}
}

func (s *instrumentedStore) Get(ctx context.Context, key string) ([]byte, bool) {
	val, ok := s.Store.Get(ctx, key)
	if ok {
		HitsTotal.WithLabelValues(s.name).Inc()
	} else {
		MissesTotal.WithLabelValues(s.name).Inc()
	}
	return val, ok
}

func (s *instrumentedStore) Set(ctx context.Context, key string, value []byte) {
	s.Store.Set(ctx, key, value)
	WritesTotal.WithLabelValues(s.name).Inc()
}

func (s *instrumentedStore) Close() error {
	gaugesMu.Lock()
	if g, ok := gauges[s.name]; ok {
		gaugeRegisterer.Unregister(g)
		delete(gauges, s.name)
	}
	gaugesMu.Unlock()
	return s.Store.Close()
}
