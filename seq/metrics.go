package seq

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides Prometheus-compatible instrumentation for pipeline
// execution, namespaced "seqpipe_". Attach one with WithMetrics; stages
// that know how to report update it: Prefetch (queue depth, backpressure,
// items produced, and its own GetState/SetState calls) and ChunkedSource
// (shard size at construction).
//
//   - prefetch_queue_depth (gauge): items currently buffered in a Prefetch
//     queue. Labels: stage_id.
//   - prefetch_backpressure_events_total (counter): times a Prefetch
//     producer blocked because its queue was full. Labels: stage_id.
//   - items_produced_total (counter): items a stage has emitted. Labels:
//     stage_id.
//   - checkpoints_total (counter): GetState/SetState calls per stage.
//     Labels: stage_id, op (get/set).
//   - shard_size (gauge): item count owned by a shard at construction.
//     Labels: stage_id, rank.
type Metrics struct {
	prefetchQueueDepth  *prometheus.GaugeVec
	prefetchBackpressure *prometheus.CounterVec
	itemsProduced       *prometheus.CounterVec
	checkpoints         *prometheus.CounterVec
	shardSize           *prometheus.GaugeVec
}

// NewMetrics registers seqpipe's metrics with registry (prometheus.
// DefaultRegisterer if nil) and returns the collector.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		prefetchQueueDepth: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "seqpipe",
			Name:      "prefetch_queue_depth",
			Help:      "Items currently buffered in a Prefetch stage's queue",
		}, []string{"stage_id"}),

		prefetchBackpressure: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seqpipe",
			Name:      "prefetch_backpressure_events_total",
			Help:      "Times a Prefetch producer blocked because its queue was full",
		}, []string{"stage_id"}),

		itemsProduced: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seqpipe",
			Name:      "items_produced_total",
			Help:      "Items emitted by a stage",
		}, []string{"stage_id"}),

		checkpoints: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seqpipe",
			Name:      "checkpoints_total",
			Help:      "GetState/SetState calls observed per stage",
		}, []string{"stage_id", "op"}),

		shardSize: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "seqpipe",
			Name:      "shard_size",
			Help:      "Item count owned by a shard at construction",
		}, []string{"stage_id", "rank"}),
	}
}

func (m *Metrics) observePrefetchQueueDepth(stageID string, depth int) {
	if m == nil {
		return
	}
	m.prefetchQueueDepth.WithLabelValues(stageID).Set(float64(depth))
}

func (m *Metrics) observeBackpressureEvent(stageID string) {
	if m == nil {
		return
	}
	m.prefetchBackpressure.WithLabelValues(stageID).Inc()
}

func (m *Metrics) observeItemProduced(stageID string) {
	if m == nil {
		return
	}
	m.itemsProduced.WithLabelValues(stageID).Inc()
}

func (m *Metrics) observeCheckpoint(stageID, op string) {
	if m == nil {
		return
	}
	m.checkpoints.WithLabelValues(stageID, op).Inc()
}

func (m *Metrics) observeShardSize(stageID string, rank, size int) {
	if m == nil {
		return
	}
	m.shardSize.WithLabelValues(stageID, strconv.Itoa(rank)).Set(float64(size))
}
