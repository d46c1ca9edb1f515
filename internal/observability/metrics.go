package observability

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

const (
	DirectionForward  = "forward"
	DirectionBackward = "backward"
)

const (
	OutcomeWritten    = "written"
	OutcomeSuppressed = "suppressed"
	OutcomeNoValue    = "novalue"
	OutcomeAbsent     = "absent"
	OutcomeError      = "error"
	OutcomeReentrant  = "reentrant"
)

const metricPrefix = "bindkit_"

var (
	registerOnce sync.Once

	propagations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bindkit",
			Subsystem: "binding",
			Name:      "propagations_total",
			Help:      "Binding propagation attempts by direction and outcome.",
		},
		[]string{"direction", "outcome"},
	)
	activeBindings = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bindkit",
			Subsystem: "binding",
			Name:      "active",
			Help:      "Bindings currently attached.",
		},
	)
	bindFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bindkit",
			Subsystem: "binding",
			Name:      "setup_failures_total",
			Help:      "Binding constructions rejected at setup time.",
		},
		[]string{"reason"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(propagations, activeBindings, bindFailures)
	})
}

func RecordPropagation(direction, outcome string) {
	RegisterMetrics()
	propagations.WithLabelValues(direction, outcome).Inc()
}

func RecordBindFailure(reason string) {
	RegisterMetrics()
	bindFailures.WithLabelValues(reason).Inc()
}

func BindingAttached() {
	RegisterMetrics()
	activeBindings.Inc()
}

func BindingDetached() {
	RegisterMetrics()
	activeBindings.Dec()
}

// WriteMetrics writes every bindkit metric from the default gatherer in the
// Prometheus text exposition format.
func WriteMetrics(w io.Writer) error {
	families, err := Families()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Families gathers the bindkit metric families, sorted by name.
func Families() ([]*dto.MetricFamily, error) {
	RegisterMetrics()
	gathered, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}
	families := make([]*dto.MetricFamily, 0, len(gathered))
	for _, mf := range gathered {
		if strings.HasPrefix(mf.GetName(), metricPrefix) {
			families = append(families, mf)
		}
	}
	return families, nil
}
