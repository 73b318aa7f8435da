package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const defaultMetricsNamespace = "barchart"

// Registry holds the metrics of rendered charts and of the HTTP server.
type Registry struct {
	renderTotal       *prometheus.CounterVec
	renderPrimitives  prometheus.Histogram
	httpRequestsTotal *prometheus.CounterVec
}

// New creates the metrics and registers them with reg. When reg is nil,
// prometheus.DefaultRegisterer is used.
func New(reg prometheus.Registerer) (*Registry, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Registry{
		renderTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: defaultMetricsNamespace,
			Name:      "render_total",
			Help:      "Number of chart documents rendered.",
		}, []string{"result"}),
		renderPrimitives: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: defaultMetricsNamespace,
			Name:      "render_primitives",
			Help:      "Number of primitives drawn per chart.",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 10),
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: defaultMetricsNamespace,
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests by status code.",
		}, []string{"code"}),
	}
	for _, c := range []prometheus.Collector{r.renderTotal, r.renderPrimitives, r.httpRequestsTotal} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) ObserveRender(primitives int, err error) {
	if r == nil {
		return
	}
	if err != nil {
		r.renderTotal.WithLabelValues("error").Inc()
		return
	}
	r.renderTotal.WithLabelValues("ok").Inc()
	r.renderPrimitives.Observe(float64(primitives))
}

func (r *Registry) ObserveRequest(code int) {
	if r == nil {
		return
	}
	r.httpRequestsTotal.WithLabelValues(strconv.Itoa(code)).Inc()
}
