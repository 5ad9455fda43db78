package seq

import (
	"context"
	"errors"
)

// SelectMany flattens an upstream of finite "collections" into their
// individual items, applying an optional selector to each collection
// before flattening it (default: identity — emit every element).
//
// Rather than serialize the currently-open collection into its token,
// SelectMany remembers the upstream token captured immediately before it
// pulled that collection, plus the index reached within it. Restoring
// replays the upstream to that token, re-pulls the one collection, re-runs
// the selector, and resumes at the saved index — the selector must
// therefore be deterministic.
type SelectMany[C, E any] struct {
	upstream Stage[C]
	selector func(C) []E

	preToken      Token
	current       []E
	idx           int
	pendingReload bool
}

// NewSelectMany flattens upstream's collections through selector.
func NewSelectMany[C, E any](upstream Stage[C], selector func(C) []E) *SelectMany[C, E] {
	return &SelectMany[C, E]{upstream: upstream, selector: selector, preToken: upstream.GetState()}
}

// NewSelectManyIdentity is the common case: upstream already yields slices
// of the item type, and every element of each should be emitted.
func NewSelectManyIdentity[E any](upstream Stage[[]E]) *SelectMany[[]E, E] {
	return NewSelectMany[[]E, E](upstream, func(c []E) []E { return c })
}

func (s *SelectMany[C, E]) Next(ctx context.Context) (E, error) {
	var zero E
	for {
		if s.pendingReload {
			if err := s.upstream.SetState(s.preToken); err != nil {
				return zero, &StageError{Stage: "SelectMany", Err: err}
			}
			coll, err := s.upstream.Next(ctx)
			if err != nil {
				if errors.Is(err, EndOfStream) {
					return zero, EndOfStream
				}
				return zero, err
			}
			s.current = s.selector(coll)
			s.pendingReload = false
			// s.idx was already restored from the token; fall through and
			// serve from it rather than resetting to 0.
		}

		if s.idx < len(s.current) {
			item := s.current[s.idx]
			s.idx++
			return item, nil
		}

		s.preToken = s.upstream.GetState()
		coll, err := s.upstream.Next(ctx)
		if err != nil {
			if errors.Is(err, EndOfStream) {
				return zero, EndOfStream
			}
			return zero, err
		}
		s.current = s.selector(coll)
		s.idx = 0
	}
}

type selectManyToken struct {
	PreToken Token `json:"pre_token"`
	Index    int   `json:"index"`
}

func (s *SelectMany[C, E]) GetState() Token {
	return selectManyToken{PreToken: s.preToken, Index: s.idx}
}

func (s *SelectMany[C, E]) SetState(tok Token) error {
	if tok == nil {
		s.preToken = nil
		s.idx = 0
		s.current = nil
		s.pendingReload = true
		return nil
	}
	t, err := decodeToken[selectManyToken](tok)
	if err != nil {
		return &StageError{Stage: "SelectMany", Err: err}
	}
	s.preToken = t.PreToken
	s.idx = t.Index
	s.current = nil
	s.pendingReload = true
	return nil
}
