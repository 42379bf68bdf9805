// Package metrics exposes Prometheus collectors for recognition and enrollment.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector, registered on its own registry so tests
// and multiple instances never collide on the global default.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	Recognitions  *prometheus.CounterVec
	Enrollments   *prometheus.CounterVec
	MatchDistance prometheus.Histogram
	IndexSize     prometheus.Gauge
	StorageUp     prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Recognitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aivi_recognitions_total",
			Help: "Faces matched against the identity index, by result",
		}, []string{"result"}),
		Enrollments: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aivi_enrollments_total",
			Help: "Successful enrollments, by whether the repository stored a new row",
		}, []string{"persisted"}),
		MatchDistance: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "aivi_match_distance",
			Help:    "Distance from each probe to its nearest stored identity",
			// Providers differ in scale: dlib and mock stay under 2, DeepFace models reach ~100
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		IndexSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "aivi_identity_index_size",
			Help: "Entries currently held in the in-memory identity index",
		}),
		StorageUp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "aivi_storage_up",
			Help: "1 when the durable repository answered the last ping",
		}),
	}
}

// ObserveRecognition records one matched or unknown face.
// distance < 0 means the index was empty and there was nothing to compare.
func (m *Metrics) ObserveRecognition(matched bool, distance float64) {
	if m == nil {
		return
	}

	result := "unknown"
	if matched {
		result = "matched"
	}
	m.Recognitions.WithLabelValues(result).Inc()

	if distance >= 0 {
		m.MatchDistance.Observe(distance)
	}
}

func (m *Metrics) ObserveEnrollment(persisted bool) {
	if m == nil {
		return
	}
	m.Enrollments.WithLabelValues(strconv.FormatBool(persisted)).Inc()
}

func (m *Metrics) SetIndexSize(n int) {
	if m == nil {
		return
	}
	m.IndexSize.Set(float64(n))
}

func (m *Metrics) SetStorageUp(up bool) {
	if m == nil {
		return
	}
	if up {
		m.StorageUp.Set(1)
	} else {
		m.StorageUp.Set(0)
	}
}
