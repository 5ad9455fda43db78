package seq

import (
	"context"
	"errors"
	"testing"
)

func TestZipEmitsTuples(t *testing.T) {
	ctx := context.Background()
	a := NewNativeSource([]int{1, 2, 3})
	b := NewNativeSource([]int{10, 20, 30})
	z := NewZip(a, b)

	for _, want := range [][]int{{1, 10}, {2, 20}, {3, 30}} {
		got, err := z.Next(ctx)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if got[0] != want[0] || got[1] != want[1] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
	if _, err := z.Next(ctx); !errors.Is(err, EndOfStream) {
		t.Fatalf("want EndOfStream, got %v", err)
	}
}

func TestZipStopsAtShortestUpstream(t *testing.T) {
	ctx := context.Background()
	a := NewNativeSource([]int{1, 2, 3})
	b := NewNativeSource([]int{10, 20})
	z := NewZip(a, b)

	if _, err := z.Next(ctx); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if _, err := z.Next(ctx); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if _, err := z.Next(ctx); !errors.Is(err, EndOfStream) {
		t.Fatalf("want EndOfStream once shortest upstream is exhausted, got %v", err)
	}
}

func TestZipRejectsMismatchedTokenShape(t *testing.T) {
	a := NewNativeSource([]int{1, 2})
	b := NewNativeSource([]int{3, 4})
	c := NewNativeSource([]int{5, 6})
	z2 := NewZip(a, b)
	z3 := NewZip(a, b, c)

	tok := z3.GetState()
	if err := z2.SetState(tok); err == nil {
		t.Fatalf("expected error restoring a 3-upstream token into a 2-upstream Zip")
	}
}

func TestZipReplayEquality(t *testing.T) {
	ctx := context.Background()
	a := NewNativeSource([]int{1, 2, 3, 4, 5})
	b := NewNativeSource([]int{10, 20, 30, 40, 50})
	z1 := NewZip(a, b)

	if _, err := z1.Next(ctx); err != nil {
		t.Fatalf("Next: %v", err)
	}
	tok := z1.GetState()

	var want [][]int
	for {
		item, err := z1.Next(ctx)
		if err != nil {
			if errors.Is(err, EndOfStream) {
				break
			}
			t.Fatalf("Next: %v", err)
		}
		want = append(want, item)
	}

	a2 := NewNativeSource([]int{1, 2, 3, 4, 5})
	b2 := NewNativeSource([]int{10, 20, 30, 40, 50})
	z2 := NewZip(a2, b2)
	if err := z2.SetState(tok); err != nil {
		t.Fatalf("SetState: %v", err)
	}
	for i, w := range want {
		got, err := z2.Next(ctx)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if got[0] != w[0] || got[1] != w[1] {
			t.Fatalf("replay mismatch at %d: got %v want %v", i, got, w)
		}
	}
}
