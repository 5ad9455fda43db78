package seq

import (
	"context"
	"math/rand"
)

// Map applies a pure function to each upstream item. Its token is just the
// upstream's token: f must carry no state of its own, or invariant 3
// (determinism under seeding) breaks silently.
type Map[In, Out any] struct {
	upstream Stage[In]
	f        func(In) Out
}

func NewMap[In, Out any](upstream Stage[In], f func(In) Out) *Map[In, Out] {
	return &Map[In, Out]{upstream: upstream, f: f}
}

func (m *Map[In, Out]) Next(ctx context.Context) (Out, error) {
	var zero Out
	item, err := m.upstream.Next(ctx)
	if err != nil {
		return zero, err
	}
	return m.f(item), nil
}

func (m *Map[In, Out]) GetState() Token        { return m.upstream.GetState() }
func (m *Map[In, Out]) SetState(tok Token) error { return m.upstream.SetState(tok) }

// SamplingRandomMap is Map with a transform that additionally receives a
// freshly seeded deterministic RNG per item. The per-item seed derives from
// (baseSeed, itemIndex), so restoring from a token reconstructs the exact
// randomness that item originally saw without serializing any RNG state.
type SamplingRandomMap[In, Out any] struct {
	upstream  Stage[In]
	f         func(rng *rand.Rand, item In) Out
	baseSeed  int64
	itemIndex int64
}

func NewSamplingRandomMap[In, Out any](upstream Stage[In], seed int64, f func(rng *rand.Rand, item In) Out) *SamplingRandomMap[In, Out] {
	return &SamplingRandomMap[In, Out]{upstream: upstream, f: f, baseSeed: seed}
}

func (m *SamplingRandomMap[In, Out]) Next(ctx context.Context) (Out, error) {
	var zero Out
	item, err := m.upstream.Next(ctx)
	if err != nil {
		return zero, err
	}
	rng := NewRand(DeriveSeed(m.baseSeed, m.itemIndex))
	m.itemIndex++
	return m.f(rng, item), nil
}

type samplingRandomMapToken struct {
	Upstream  Token `json:"upstream"`
	ItemIndex int64 `json:"item_index"`
}

func (m *SamplingRandomMap[In, Out]) GetState() Token {
	return samplingRandomMapToken{Upstream: m.upstream.GetState(), ItemIndex: m.itemIndex}
}

func (m *SamplingRandomMap[In, Out]) SetState(tok Token) error {
	if tok == nil {
		m.itemIndex = 0
		return m.upstream.SetState(nil)
	}
	t, err := decodeToken[samplingRandomMapToken](tok)
	if err != nil {
		return &StageError{Stage: "SamplingRandomMap", Err: err}
	}
	if err := m.upstream.SetState(t.Upstream); err != nil {
		return err
	}
	m.itemIndex = t.ItemIndex
	return nil
}
