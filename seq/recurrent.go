package seq

import "context"

// Recurrent folds a step function over upstream items, carrying a
// plain-data state across calls and emitting the step's output. State =
// (upstream token, current carried state) — the carried state must itself
// be plain-data-serializable, since it travels through GetState/SetState
// verbatim.
type Recurrent[S, In, Out any] struct {
	upstream Stage[In]
	step     func(state S, item In) (S, Out)
	initial  S
	state    S
}

// NewRecurrent starts the fold at initial.
func NewRecurrent[S, In, Out any](upstream Stage[In], initial S, step func(state S, item In) (S, Out)) *Recurrent[S, In, Out] {
	return &Recurrent[S, In, Out]{upstream: upstream, step: step, initial: initial, state: initial}
}

func (r *Recurrent[S, In, Out]) Next(ctx context.Context) (Out, error) {
	var zero Out
	item, err := r.upstream.Next(ctx)
	if err != nil {
		return zero, err
	}
	newState, out := r.step(r.state, item)
	r.state = newState
	return out, nil
}

type recurrentToken struct {
	Upstream Token `json:"upstream"`
	State    Token `json:"state"`
}

func (r *Recurrent[S, In, Out]) GetState() Token {
	return recurrentToken{Upstream: r.upstream.GetState(), State: r.state}
}

func (r *Recurrent[S, In, Out]) SetState(tok Token) error {
	if tok == nil {
		r.state = r.initial
		return r.upstream.SetState(nil)
	}
	t, err := decodeToken[recurrentToken](tok)
	if err != nil {
		return &StageError{Stage: "Recurrent", Err: err}
	}
	if err := r.upstream.SetState(t.Upstream); err != nil {
		return err
	}
	state, err := decodeToken[S](t.State)
	if err != nil {
		return &StageError{Stage: "Recurrent", Err: err}
	}
	r.state = state
	return nil
}
