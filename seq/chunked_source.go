package seq

import (
	"context"

	"github.com/dshills/seqpipe/seq/emit"
)

// ChunkedSource evenly shards a finite, materialized collection across
// world-size W workers. Shard r owns a contiguous chunk of ceil(N/W) or
// floor(N/W) items; the union of all shards' output equals the dataset
// exactly once and shard sizes differ by at most one item (spec invariant
// 4).
type ChunkedSource[T any] struct {
	data  []T
	start int // first index (inclusive) owned by this shard
	end   int // last index (exclusive) owned by this shard
	idx   int // absolute index into data of the next item

	cfg *config
}

type chunkedSourceToken struct {
	Index int `json:"index"`
}

// NewChunkedSource splits data into world contiguous chunks and returns the
// stage that yields chunk rank's items in order. It fails with
// ErrInvalidArgument if rank >= world or world < 1.
func NewChunkedSource[T any](data []T, world, rank int, opts ...Option) (*ChunkedSource[T], error) {
	if world < 1 {
		return nil, invalidArgument("ChunkedSource", "world size must be >= 1")
	}
	if rank < 0 || rank >= world {
		return nil, invalidArgument("ChunkedSource", "shard rank must satisfy 0 <= rank < world")
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	start, end := chunkBounds(len(data), world, rank)
	cfg.metrics.observeShardSize("ChunkedSource", rank, end-start)
	cfg.emitter.Emit(emit.Event{
		StageID: "ChunkedSource",
		Msg:     "shard_assigned",
		Meta:    map[string]interface{}{"shard": rank, "world": world, "size": end - start},
	})
	return &ChunkedSource[T]{data: data, start: start, end: end, idx: start, cfg: cfg}, nil
}

// chunkBounds computes the [start,end) index range owned by rank out of
// world shards over a dataset of length n. Chunk sizes are
// ceil(n/world) for the first n%world shards and floor(n/world) for the
// rest, which keeps every pair of shard sizes within 1 of each other.
func chunkBounds(n, world, rank int) (start, end int) {
	base := n / world
	remainder := n % world
	if rank < remainder {
		start = rank * (base + 1)
		end = start + base + 1
	} else {
		start = remainder*(base+1) + (rank-remainder)*base
		end = start + base
	}
	return start, end
}

func (c *ChunkedSource[T]) Next(_ context.Context) (T, error) {
	var zero T
	if c.idx >= c.end {
		return zero, EndOfStream
	}
	item := c.data[c.idx]
	c.idx++
	return item, nil
}

func (c *ChunkedSource[T]) GetState() Token {
	return chunkedSourceToken{Index: c.idx}
}

func (c *ChunkedSource[T]) SetState(tok Token) error {
	if tok == nil {
		c.idx = c.start
		return nil
	}
	t, err := decodeToken[chunkedSourceToken](tok)
	if err != nil {
		return &StageError{Stage: "ChunkedSource", Err: err}
	}
	c.idx = t.Index
	return nil
}
