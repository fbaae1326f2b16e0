package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks what each load created and how long it took.
type Metrics struct {
	gatherer prometheus.Gatherer

	RowsProcessed      prometheus.Counter
	ClientsCreated     prometheus.Counter
	ClientsUpdated     prometheus.Counter
	HouseholdsCreated  prometheus.Counter
	MembersCreated     prometheus.Counter
	AssessmentsCreated *prometheus.CounterVec
	NoShows            prometheus.Counter
	Warnings           *prometheus.CounterVec
	LoadDuration       *prometheus.HistogramVec
}

// New registers the ingestion metrics on reg. A nil reg uses a private
// registry, which keeps repeated construction in tests from colliding.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		RowsProcessed: f.NewCounter(prometheus.CounterOpts{
			Name: "hmis_ingest_rows_total",
			Help: "Spreadsheet rows processed",
		}),
		ClientsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "hmis_ingest_clients_created_total",
			Help: "Clients created by loads",
		}),
		ClientsUpdated: f.NewCounter(prometheus.CounterOpts{
			Name: "hmis_ingest_clients_updated_total",
			Help: "Existing clients whose unset fields were filled in",
		}),
		HouseholdsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "hmis_ingest_households_created_total",
			Help: "Households created by loads",
		}),
		MembersCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "hmis_ingest_members_created_total",
			Help: "Household memberships created by loads",
		}),
		AssessmentsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hmis_ingest_assessments_created_total",
			Help: "Assessments created by loads, by kind",
		}, []string{"kind"}),
		NoShows: f.NewCounter(prometheus.CounterOpts{
			Name: "hmis_ingest_no_shows_total",
			Help: "Memberships marked as never present",
		}),
		Warnings: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hmis_ingest_warnings_total",
			Help: "Load warnings, by kind",
		}, []string{"kind"}),
		LoadDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hmis_ingest_load_duration_seconds",
			Help:    "Duration of whole loads, by outcome",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 15, 60, 300},
		}, []string{"outcome"}),
	}
}

func (m *Metrics) AddAssessmentsCreated(kind string, n int) {
	m.AssessmentsCreated.WithLabelValues(kind).Add(float64(n))
}

func (m *Metrics) IncrementWarnings(kind string) {
	m.Warnings.WithLabelValues(kind).Inc()
}

// ObserveLoad records a load's duration under committed, dry_run or failed.
// Call with time.Now() at the start of the load.
func (m *Metrics) ObserveLoad(start time.Time, dryRun bool, err error) {
	outcome := "committed"
	switch {
	case err != nil:
		outcome = "failed"
	case dryRun:
		outcome = "dry_run"
	}
	m.LoadDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}

// WriteTextfile writes every metric in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.gatherer)
}
