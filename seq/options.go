package seq

import "github.com/dshills/seqpipe/seq/emit"

// Option configures the ambient behavior of a pipeline — observability and
// metrics layered on top of a stage's required, spec-mandated
// configuration, which stays positional per constructor exactly as each
// stage's NewXxx documents. Mirrors the teacher's functional-option
// pattern (graph.Option), scoped down to what a checkpointable sequence
// actually needs configured.
type Option func(*config) error

type config struct {
	emitter emit.Emitter
	metrics *Metrics
}

func newConfig(opts []Option) (*config, error) {
	cfg := &config{emitter: emit.NullEmitter{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithEmitter routes stage lifecycle events (shard assignment at
// construction, prefetch worker start/stop/error) to emitter instead of
// discarding them.
//
// Default: emit.NullEmitter{}.
func WithEmitter(emitter emit.Emitter) Option {
	return func(cfg *config) error {
		if emitter == nil {
			return invalidArgument("Option", "WithEmitter requires a non-nil Emitter")
		}
		cfg.emitter = emitter
		return nil
	}
}

// WithMetrics attaches a Metrics collector so prefetch queue depth,
// backpressure events, and per-stage item/checkpoint counts are recorded
// against its Prometheus registry.
//
// Default: nil (no metrics recorded).
func WithMetrics(m *Metrics) Option {
	return func(cfg *config) error {
		cfg.metrics = m
		return nil
	}
}
