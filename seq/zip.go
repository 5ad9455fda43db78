package seq

import "context"

// Zip emits the tuple of its upstreams' next items, ending as soon as any
// upstream ends. Its token is the vector of upstream tokens; it holds no
// other state.
type Zip[T any] struct {
	upstreams []Stage[T]
}

func NewZip[T any](upstreams ...Stage[T]) *Zip[T] {
	return &Zip[T]{upstreams: upstreams}
}

// Next returns the next item from every upstream, in upstream order. If any
// upstream returns EndOfStream, Zip returns EndOfStream too, even if other
// upstreams still have items (the already-pulled items from those
// upstreams are discarded, matching the reference implementation's
// zip-stops-at-shortest semantics).
func (z *Zip[T]) Next(ctx context.Context) ([]T, error) {
	out := make([]T, len(z.upstreams))
	for i, u := range z.upstreams {
		item, err := u.Next(ctx)
		if err != nil {
			return nil, err
		}
		out[i] = item
	}
	return out, nil
}

type zipToken struct {
	Upstreams []Token `json:"upstreams"`
}

func (z *Zip[T]) GetState() Token {
	tokens := make([]Token, len(z.upstreams))
	for i, u := range z.upstreams {
		tokens[i] = u.GetState()
	}
	return zipToken{Upstreams: tokens}
}

func (z *Zip[T]) SetState(tok Token) error {
	if tok == nil {
		for _, u := range z.upstreams {
			if err := u.SetState(nil); err != nil {
				return err
			}
		}
		return nil
	}
	t, err := decodeToken[zipToken](tok)
	if err != nil {
		return &StageError{Stage: "Zip", Err: err}
	}
	if len(t.Upstreams) != len(z.upstreams) {
		return invalidArgument("Zip", "token shape does not match this pipeline's upstream count")
	}
	for i, u := range z.upstreams {
		if err := u.SetState(t.Upstreams[i]); err != nil {
			return err
		}
	}
	return nil
}
