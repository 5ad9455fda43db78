package seq

import "context"

// NativeSource wraps a finite, fully-materialized collection. It is the
// simplest leaf stage: Next returns successive elements and then
// EndOfStream, and its token is just the next index.
type NativeSource[T any] struct {
	data []T
	idx  int
}

type nativeSourceToken struct {
	Index int `json:"index"`
}

// NewNativeSource wraps data, a materialized collection, as a Stage.
// Go slices are always materialized (unlike, say, a Python list built from
// a generator), so this constructor never fails the §4.2 one-shot-sequence
// check; use NewNativeSourceFromPull to see that check exercised.
func NewNativeSource[T any](data []T) *NativeSource[T] {
	return &NativeSource[T]{data: data}
}

// NewNativeSourceFromPull rejects one-shot pull-style generator functions
// outright, satisfying §4.2's "Fails with InvalidArgument if constructed
// from a one-shot lazy sequence rather than a materialized collection"
// requirement. A pull function (the Go analogue of a single-use Python
// iterator/generator: each call advances irreversible state) cannot be
// rewound by SetState(nil) without fully draining and buffering it first,
// which is exactly what NativeSource promises not to need. Callers with a
// one-shot source must materialize it themselves first, e.g. with Drain.
func NewNativeSourceFromPull[T any](_ func() (T, bool)) (*NativeSource[T], error) {
	return nil, invalidArgument("NativeSource", "constructed from a one-shot pull sequence; materialize it first (see Drain) and use NewNativeSource")
}

// Drain fully consumes a one-shot pull function into a materialized slice,
// the escape hatch NewNativeSourceFromPull's error message points callers
// to.
func Drain[T any](pull func() (T, bool)) []T {
	var out []T
	for {
		v, ok := pull()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func (n *NativeSource[T]) Next(_ context.Context) (T, error) {
	var zero T
	if n.idx >= len(n.data) {
		return zero, EndOfStream
	}
	item := n.data[n.idx]
	n.idx++
	return item, nil
}

func (n *NativeSource[T]) GetState() Token {
	return nativeSourceToken{Index: n.idx}
}

func (n *NativeSource[T]) SetState(tok Token) error {
	if tok == nil {
		n.idx = 0
		return nil
	}
	t, err := decodeToken[nativeSourceToken](tok)
	if err != nil {
		return &StageError{Stage: "NativeSource", Err: err}
	}
	n.idx = t.Index
	return nil
}
