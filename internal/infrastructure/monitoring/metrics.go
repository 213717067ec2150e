package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolve outcomes.
const (
	ResolveDirect  = "direct"
	ResolvePattern = "pattern"
	ResolveMiss    = "miss"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Loader metrics
	FilesLoaded *prometheus.CounterVec
	LoadErrors  *prometheus.CounterVec

	// Autoload metrics
	Scans        prometheus.Counter
	ScanDuration prometheus.Histogram
	IndexedFiles *prometheus.GaugeVec
	Resolves     *prometheus.CounterVec

	// Snapshot for CLI summaries - track current values
	snapshot Snapshot
	indexed  map[string]int64

	mu sync.RWMutex
}

// Snapshot holds current metric values for summaries.
type Snapshot struct {
	FilesLoaded  int64
	LoadErrors   int64
	Scans        int64
	IndexedFiles int64
	Resolves     map[string]int64
}

// NewMetrics creates a metrics collector registered on reg. A nil reg
// creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FilesLoaded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vcms_config_files_loaded_total",
				Help: "Total number of settings files loaded",
			},
			[]string{"format"},
		),
		LoadErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vcms_config_load_errors_total",
				Help: "Total number of failed settings loads",
			},
			[]string{"kind"},
		),
		Scans: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "vcms_autoload_scans_total",
				Help: "Total number of autoload directory scans",
			},
		),
		ScanDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "vcms_autoload_scan_duration_seconds",
				Help:    "Autoload directory scan duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
		),
		IndexedFiles: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "vcms_autoload_indexed_files",
				Help: "Number of source files indexed per autoload directory",
			},
			[]string{"directory"},
		),
		Resolves: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vcms_autoload_resolves_total",
				Help: "Total number of symbol resolutions by outcome",
			},
			[]string{"outcome"},
		),
		snapshot: Snapshot{Resolves: make(map[string]int64)},
		indexed:  make(map[string]int64),
	}
}

// RecordFileLoaded records one settings file decoded and applied.
func (m *Metrics) RecordFileLoaded(format string) {
	if m == nil {
		return
	}
	m.FilesLoaded.WithLabelValues(format).Inc()

	m.mu.Lock()
	m.snapshot.FilesLoaded++
	m.mu.Unlock()
}

// RecordLoadError records a failed load by error kind.
func (m *Metrics) RecordLoadError(kind string) {
	if m == nil {
		return
	}
	m.LoadErrors.WithLabelValues(kind).Inc()

	m.mu.Lock()
	m.snapshot.LoadErrors++
	m.mu.Unlock()
}

// RecordScan records a completed directory scan.
func (m *Metrics) RecordScan(directory string, files int, duration time.Duration) {
	if m == nil {
		return
	}
	m.Scans.Inc()
	m.ScanDuration.Observe(duration.Seconds())
	m.IndexedFiles.WithLabelValues(directory).Set(float64(files))

	m.mu.Lock()
	m.snapshot.Scans++
	// a rescan replaces the directory's previous count
	m.snapshot.IndexedFiles += int64(files) - m.indexed[directory]
	m.indexed[directory] = int64(files)
	m.mu.Unlock()
}

// RecordResolve records the outcome of one symbol resolution.
func (m *Metrics) RecordResolve(outcome string) {
	if m == nil {
		return
	}
	m.Resolves.WithLabelValues(outcome).Inc()

	m.mu.Lock()
	m.snapshot.Resolves[outcome]++
	m.mu.Unlock()
}

// Snapshot returns a copy of the current values.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{Resolves: map[string]int64{}}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := m.snapshot
	snap.Resolves = make(map[string]int64, len(m.snapshot.Resolves))
	for k, v := range m.snapshot.Resolves {
		snap.Resolves[k] = v
	}
	return snap
}
