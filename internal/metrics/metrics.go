// Package metrics records per-batch counters and timings for spawn and destroy
// runs, and pushes them to a Prometheus Pushgateway when one is configured.
package metrics

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	metricNamespace = "harborwave"

	// PushgatewayEnv names the Pushgateway URL. Unset disables pushing.
	PushgatewayEnv = "HARBOR_WAVE_PUSHGATEWAY"

	jobName = "harbor-wave"
)

// Operation labels.
const (
	OpCreate  = "create"
	OpDestroy = "destroy"
	OpDNS     = "dns"
)

// Result labels.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultTimeout = "timeout"
)

// Recorder holds one batch's metrics on a private registry. A nil Recorder
// is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry
	fleet    string
	pushURL  string

	instancesTotal  *prometheus.CounterVec
	dnsRecordsTotal *prometheus.CounterVec
	addressWait     *prometheus.HistogramVec
	batchDuration   *prometheus.HistogramVec
}

// NewRecorder creates a recorder for the fleet identified by tag. The
// Pushgateway URL is read from HARBOR_WAVE_PUSHGATEWAY.
func NewRecorder(fleet string) *Recorder {
	return NewRecorderWithPushURL(fleet, os.Getenv(PushgatewayEnv))
}

// NewRecorderWithPushURL creates a recorder pushing to pushURL. An empty URL
// disables pushing.
func NewRecorderWithPushURL(fleet, pushURL string) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		fleet:    fleet,
		pushURL:  pushURL,

		instancesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "instances_total",
			Help:      "Instance operations by operation and result",
		}, []string{"operation", "result"}),

		dnsRecordsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "dns_records_total",
			Help:      "DNS record writes by outcome",
		}, []string{"outcome"}),

		addressWait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Name:      "address_wait_seconds",
			Help:      "Time from creation until the provider assigned an address",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 9), // 1s to ~4min
		}, []string{"result"}),

		batchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Name:      "batch_duration_seconds",
			Help:      "Duration of a spawn or destroy batch in seconds",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"operation"}),
	}

	r.registry.MustRegister(r.instancesTotal, r.dnsRecordsTotal, r.addressWait, r.batchDuration)
	return r
}

// Registry exposes the recorder's registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// InstanceResult counts one instance create or destroy.
func (r *Recorder) InstanceResult(operation string, err error) {
	if r == nil {
		return
	}
	r.instancesTotal.WithLabelValues(operation, resultOf(err)).Inc()
}

// DNSOutcome counts one record write, labelled e.g. "created", "updated",
// "removed" or "failed".
func (r *Recorder) DNSOutcome(outcome string) {
	if r == nil {
		return
	}
	r.dnsRecordsTotal.WithLabelValues(outcome).Inc()
}

// AddressWait records how long an instance waited for its address.
func (r *Recorder) AddressWait(d time.Duration, timedOut bool) {
	if r == nil {
		return
	}
	result := ResultSuccess
	if timedOut {
		result = ResultTimeout
	}
	r.addressWait.WithLabelValues(result).Observe(d.Seconds())
}

// BatchDuration records the wall time of a whole batch.
func (r *Recorder) BatchDuration(operation string, d time.Duration) {
	if r == nil {
		return
	}
	r.batchDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// Push sends the registry to the Pushgateway, grouped by fleet tag. It is a
// no-op when no Pushgateway is configured.
func (r *Recorder) Push(ctx context.Context) error {
	if r == nil || r.pushURL == "" {
		return nil
	}
	err := push.New(r.pushURL, jobName).
		Gatherer(r.registry).
		Grouping("fleet", r.fleet).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", r.pushURL, err)
	}
	return nil
}

func resultOf(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
