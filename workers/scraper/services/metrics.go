package services

import (
	"github.com/prometheus/client_golang/prometheus"

	"social-scraper/workers/scraper/domain"
)

// Metrics are the scraper's Prometheus collectors.
type Metrics struct {
	records  *prometheus.CounterVec
	units    *prometheus.CounterVec
	exported *prometheus.GaugeVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scraper_records_total",
			Help: "Raw records processed by the relevance pipeline, by outcome.",
		}, []string{"platform", "outcome"}),
		units: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scraper_units_total",
			Help: "Actor invocations, by result.",
		}, []string{"platform", "result"}),
		exported: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "scraper_exported_records",
			Help: "Records in the last exported table.",
		}, []string{"platform"}),
	}
	reg.MustRegister(m.records, m.units, m.exported)
	return m
}

func (m *Metrics) observeBatch(platform domain.Platform, res BatchResult) {
	if m == nil {
		return
	}
	for outcome, n := range res.Counts {
		m.records.WithLabelValues(platform.String(), outcome.String()).Add(float64(n))
	}
}

func (m *Metrics) observeUnit(platform domain.Platform, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.units.WithLabelValues(platform.String(), result).Inc()
}

func (m *Metrics) observeExport(table domain.ResultTable) {
	if m == nil {
		return
	}
	m.exported.WithLabelValues(table.Platform.String()).Set(float64(table.Len()))
}
