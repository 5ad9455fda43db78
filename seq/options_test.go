package seq

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dshills/seqpipe/seq/emit"
)

func TestWithEmitterRejectsNil(t *testing.T) {
	if _, err := newConfig([]Option{WithEmitter(nil)}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
}

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := newConfig(nil)
	if err != nil {
		t.Fatalf("newConfig: %v", err)
	}
	if _, ok := cfg.emitter.(emit.NullEmitter); !ok {
		t.Fatalf("default emitter should be emit.NullEmitter, got %T", cfg.emitter)
	}
	if cfg.metrics != nil {
		t.Fatalf("default metrics should be nil")
	}
}

func TestWithEmitterAndMetricsApply(t *testing.T) {
	buf := emit.NewBufferedEmitter()
	m := NewMetrics(prometheus.NewRegistry())
	cfg, err := newConfig([]Option{WithEmitter(buf), WithMetrics(m)})
	if err != nil {
		t.Fatalf("newConfig: %v", err)
	}
	if cfg.emitter != buf {
		t.Fatalf("emitter not applied")
	}
	if cfg.metrics != m {
		t.Fatalf("metrics not applied")
	}
}
