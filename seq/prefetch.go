package seq

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/seqpipe/seq/emit"
)

// Prefetch wraps an upstream stage in a background worker to overlap
// upstream I/O or compute with consumption. A single producer goroutine
// owns the upstream stage and pushes items into a bounded queue of
// capacity K; Next pops from that queue. The producer blocks when the
// queue is full; Next blocks when it's empty, unless end-of-stream has
// already been observed, in which case it returns immediately.
//
// Checkpointing must reflect the logical position of items already
// delivered to the consumer, not however far the producer has run ahead.
// To achieve that, every item placed in the queue carries the upstream
// token valid immediately after producing it; GetState returns the token
// of the most recently delivered item. SetState stops the worker, restores
// upstream to the given token, and lets the next Next call restart it
// clean.
type Prefetch[T any] struct {
	upstream Stage[T]
	bufSize  int

	mu        sync.Mutex
	started   bool
	ended     bool
	lastToken Token
	queue     chan prefetchMsg[T]
	cancel    context.CancelFunc
	g         *errgroup.Group

	cfg *config
}

type prefetchMsg[T any] struct {
	item  T
	token Token
	eos   bool
	err   error
}

// NewPrefetch wraps upstream with a background worker buffering up to
// bufSize items ahead of the consumer. It fails with ErrInvalidArgument if
// bufSize < 1.
func NewPrefetch[T any](upstream Stage[T], bufSize int, opts ...Option) (*Prefetch[T], error) {
	if bufSize < 1 {
		return nil, invalidArgument("Prefetch", "buffer size must be >= 1")
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Prefetch[T]{upstream: upstream, bufSize: bufSize, lastToken: upstream.GetState(), cfg: cfg}, nil
}

func (p *Prefetch[T]) run(ctx context.Context) {
	for {
		item, err := p.upstream.Next(ctx)
		if err != nil {
			msg := prefetchMsg[T]{err: err}
			if errors.Is(err, EndOfStream) {
				msg = prefetchMsg[T]{eos: true}
			} else {
				p.cfg.emitter.Emit(emit.Event{
					StageID: "Prefetch",
					Msg:     "worker_error",
					Meta:    map[string]interface{}{"error": err.Error()},
				})
			}
			select {
			case p.queue <- msg:
			case <-ctx.Done():
			}
			return
		}
		tok := p.upstream.GetState()
		if len(p.queue) == cap(p.queue) {
			p.cfg.metrics.observeBackpressureEvent("Prefetch")
		}
		select {
		case p.queue <- prefetchMsg[T]{item: item, token: tok}:
			p.cfg.metrics.observePrefetchQueueDepth("Prefetch", len(p.queue))
			p.cfg.metrics.observeItemProduced("Prefetch")
		case <-ctx.Done():
			return
		}
	}
}

func (p *Prefetch[T]) ensureStarted() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.queue = make(chan prefetchMsg[T], p.bufSize)
	g, gctx := errgroup.WithContext(ctx)
	p.g = g
	g.Go(func() error {
		p.run(gctx)
		return nil
	})
	p.started = true
	p.cfg.emitter.Emit(emit.Event{StageID: "Prefetch", Msg: "worker_start"})
}

func (p *Prefetch[T]) stop() {
	p.mu.Lock()
	started, cancel, g := p.started, p.cancel, p.g
	p.started = false
	p.mu.Unlock()
	if !started {
		return
	}
	cancel()
	_ = g.Wait()
	p.cfg.emitter.Emit(emit.Event{StageID: "Prefetch", Msg: "worker_stop"})
}

func (p *Prefetch[T]) Next(ctx context.Context) (T, error) {
	var zero T
	p.mu.Lock()
	ended := p.ended
	p.mu.Unlock()
	if ended {
		return zero, EndOfStream
	}

	p.ensureStarted()

	select {
	case msg := <-p.queue:
		if msg.eos {
			p.mu.Lock()
			p.ended = true
			p.mu.Unlock()
			return zero, EndOfStream
		}
		if msg.err != nil {
			p.mu.Lock()
			p.ended = true
			p.mu.Unlock()
			return zero, msg.err
		}
		p.mu.Lock()
		p.lastToken = msg.token
		p.mu.Unlock()
		return msg.item, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func (p *Prefetch[T]) GetState() Token {
	p.cfg.metrics.observeCheckpoint("Prefetch", "get")
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastToken
}

func (p *Prefetch[T]) SetState(tok Token) error {
	p.cfg.metrics.observeCheckpoint("Prefetch", "set")
	p.stop()
	if err := p.upstream.SetState(tok); err != nil {
		return err
	}
	p.mu.Lock()
	p.lastToken = tok
	p.ended = false
	p.mu.Unlock()
	return nil
}
