package seq

import (
	"context"

	"github.com/dshills/seqpipe/seq/emit"
)

// InfinitePermutationSource yields an infinite concatenation of passes over
// a non-empty, materialized dataset. Pass p is either the dataset itself
// (shuffle off) or a permutation of it drawn from a generator seeded
// deterministically from (seed, p) (shuffle on). When world > 1, only
// every world-th item of the conceptual unsharded global stream — starting
// at offset rank — is yielded by this shard.
//
// The permutation for pass p is a pure function of (seed, p), so the token
// need only record (pass, position within pass): restoring it regenerates
// the pass's permutation and resumes scanning from that position, without
// ever serializing RNG internals.
type InfinitePermutationSource[T any] struct {
	data    []T
	shuffle bool
	seed    int64
	world   int
	rank    int

	pass      int64
	posInPass int
	perm      []int // permutation of [0,len(data)) for the current pass; nil when shuffle is off

	cfg *config
}

type permutationSourceToken struct {
	Pass      int64 `json:"pass"`
	PosInPass int   `json:"pos_in_pass"`
}

// NewInfinitePermutationSource constructs the source. It fails with
// ErrInvalidArgument if data is empty, or if rank is not in [0,world).
func NewInfinitePermutationSource[T any](data []T, shuffle bool, seed int64, world, rank int, opts ...Option) (*InfinitePermutationSource[T], error) {
	if len(data) == 0 {
		return nil, invalidArgument("InfinitePermutationSource", "dataset must not be empty")
	}
	if world < 1 {
		return nil, invalidArgument("InfinitePermutationSource", "world size must be >= 1")
	}
	if rank < 0 || rank >= world {
		return nil, invalidArgument("InfinitePermutationSource", "shard rank must satisfy 0 <= rank < world")
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	s := &InfinitePermutationSource[T]{
		data:    data,
		shuffle: shuffle,
		seed:    seed,
		world:   world,
		rank:    rank,
		cfg:     cfg,
	}
	s.refreshPermutation()
	cfg.emitter.Emit(emit.Event{
		StageID: "InfinitePermutationSource",
		Msg:     "shard_assigned",
		Meta:    map[string]interface{}{"shard": rank, "world": world, "dataset_size": len(data)},
	})
	return s, nil
}

// refreshPermutation (re)derives the current pass's permutation from
// (seed, pass). A no-op when shuffle is off, since pass p is then simply
// the dataset in its original order.
func (s *InfinitePermutationSource[T]) refreshPermutation() {
	if !s.shuffle {
		s.perm = nil
		return
	}
	rng := NewRand(DeriveSeed(s.seed, s.pass))
	s.perm = permutation(rng, len(s.data))
}

func (s *InfinitePermutationSource[T]) indexAt(posInPass int) int {
	if s.shuffle {
		return s.perm[posInPass]
	}
	return posInPass
}

// Next never returns EndOfStream: the source is infinite. It scans forward
// from the current (pass, posInPass) until it finds a global position that
// belongs to this shard (global % world == rank), advancing to a new pass
// whenever the current one is exhausted.
func (s *InfinitePermutationSource[T]) Next(_ context.Context) (T, error) {
	n := int64(len(s.data))
	for {
		if s.posInPass >= len(s.data) {
			s.pass++
			s.posInPass = 0
			s.refreshPermutation()
		}
		global := s.pass*n + int64(s.posInPass)
		if global%int64(s.world) == int64(s.rank) {
			item := s.data[s.indexAt(s.posInPass)]
			s.posInPass++
			return item, nil
		}
		s.posInPass++
	}
}

func (s *InfinitePermutationSource[T]) GetState() Token {
	return permutationSourceToken{Pass: s.pass, PosInPass: s.posInPass}
}

func (s *InfinitePermutationSource[T]) SetState(tok Token) error {
	if tok == nil {
		s.pass, s.posInPass = 0, 0
		s.refreshPermutation()
		return nil
	}
	t, err := decodeToken[permutationSourceToken](tok)
	if err != nil {
		return &StageError{Stage: "InfinitePermutationSource", Err: err}
	}
	s.pass, s.posInPass = t.Pass, t.PosInPass
	s.refreshPermutation()
	return nil
}
