package seq

import (
	"context"
	"errors"
)

// Multiplex routes each emitted item through a control stage: it pulls one
// index i in [0,k) from control, then one item from data[i]. Because
// control and every data stage are advanced independently of each other,
// the token holds all of their states together.
//
// If the selected data stage is already exhausted, Multiplex fails with
// ErrUnderflow rather than treating it as EndOfStream — the stream as a
// whole hasn't ended, the schedule asked for a branch that was.
type Multiplex[T any] struct {
	control Stage[int]
	data    []Stage[T]
}

// NewMultiplex constructs a multiplexer over len(data) branches selected by
// control. It fails with ErrInvalidArgument if data is empty.
func NewMultiplex[T any](control Stage[int], data []Stage[T]) (*Multiplex[T], error) {
	if len(data) == 0 {
		return nil, invalidArgument("Multiplex", "at least one data stage is required")
	}
	return &Multiplex[T]{control: control, data: data}, nil
}

func (m *Multiplex[T]) Next(ctx context.Context) (T, error) {
	var zero T
	i, err := m.control.Next(ctx)
	if err != nil {
		return zero, err
	}
	if i < 0 || i >= len(m.data) {
		return zero, invalidArgument("Multiplex", "control stage produced an index out of range")
	}
	item, err := m.data[i].Next(ctx)
	if err != nil {
		if errors.Is(err, EndOfStream) {
			return zero, underflow("Multiplex", i)
		}
		return zero, err
	}
	return item, nil
}

type multiplexToken struct {
	Control Token   `json:"control"`
	Data    []Token `json:"data"`
}

func (m *Multiplex[T]) GetState() Token {
	tokens := make([]Token, len(m.data))
	for i, d := range m.data {
		tokens[i] = d.GetState()
	}
	return multiplexToken{Control: m.control.GetState(), Data: tokens}
}

func (m *Multiplex[T]) SetState(tok Token) error {
	if tok == nil {
		if err := m.control.SetState(nil); err != nil {
			return err
		}
		for _, d := range m.data {
			if err := d.SetState(nil); err != nil {
				return err
			}
		}
		return nil
	}
	t, err := decodeToken[multiplexToken](tok)
	if err != nil {
		return &StageError{Stage: "Multiplex", Err: err}
	}
	if len(t.Data) != len(m.data) {
		return invalidArgument("Multiplex", "token shape does not match this pipeline's data-stage count")
	}
	if err := m.control.SetState(t.Control); err != nil {
		return err
	}
	for i, d := range m.data {
		if err := d.SetState(t.Data[i]); err != nil {
			return err
		}
	}
	return nil
}
