package seq

import (
	"context"
	"errors"
)

// FixedBatch groups upstream items into lists of length Size. The final
// batch may be shorter if upstream is finite. Its token is just the
// upstream's: the partial batch in progress is rebuilt on restore by
// pulling Size items from the (restored) upstream.
type FixedBatch[T any] struct {
	upstream Stage[T]
	size     int
}

// NewFixedBatch groups upstream into batches of size. It fails with
// ErrInvalidArgument if size < 1.
func NewFixedBatch[T any](upstream Stage[T], size int) (*FixedBatch[T], error) {
	if size < 1 {
		return nil, invalidArgument("FixedBatch", "batch size must be >= 1")
	}
	return &FixedBatch[T]{upstream: upstream, size: size}, nil
}

func (b *FixedBatch[T]) Next(ctx context.Context) ([]T, error) {
	batch := make([]T, 0, b.size)
	for len(batch) < b.size {
		item, err := b.upstream.Next(ctx)
		if err != nil {
			if errors.Is(err, EndOfStream) {
				if len(batch) == 0 {
					return nil, EndOfStream
				}
				return batch, nil
			}
			return nil, err
		}
		batch = append(batch, item)
	}
	return batch, nil
}

func (b *FixedBatch[T]) GetState() Token         { return b.upstream.GetState() }
func (b *FixedBatch[T]) SetState(tok Token) error { return b.upstream.SetState(tok) }
