package seq

import (
	"context"
	"errors"
	"testing"
)

func drainAll[T any](t *testing.T, s Stage[T]) []T {
	t.Helper()
	var out []T
	for {
		item, err := s.Next(context.Background())
		if err != nil {
			if errors.Is(err, EndOfStream) {
				return out
			}
			t.Fatalf("Next: %v", err)
		}
		out = append(out, item)
	}
}

func TestNativeSourceBasic(t *testing.T) {
	s := NewNativeSource([]int{1, 2, 3})
	got := drainAll(t, s)
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestNativeSourceResetEquivalence(t *testing.T) {
	data := []int{1, 2, 3, 4}
	s := NewNativeSource(data)
	before := drainAll(t, s)

	if err := s.SetState(nil); err != nil {
		t.Fatalf("SetState(nil): %v", err)
	}
	after := drainAll(t, s)

	if len(before) != len(after) {
		t.Fatalf("reset produced different length: %v vs %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("reset produced different sequence: %v vs %v", before, after)
		}
	}
}

func TestNativeSourceReplayEquality(t *testing.T) {
	data := []int{10, 20, 30, 40, 50}
	ctx := context.Background()

	s1 := NewNativeSource(data)
	if _, err := s1.Next(ctx); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if _, err := s1.Next(ctx); err != nil {
		t.Fatalf("Next: %v", err)
	}
	tok := s1.GetState()
	rest1 := drainAll(t, s1)

	s2 := NewNativeSource(data)
	if err := s2.SetState(tok); err != nil {
		t.Fatalf("SetState: %v", err)
	}
	rest2 := drainAll(t, s2)

	if len(rest1) != len(rest2) {
		t.Fatalf("replay length mismatch: %v vs %v", rest1, rest2)
	}
	for i := range rest1 {
		if rest1[i] != rest2[i] {
			t.Fatalf("replay mismatch at %d: %v vs %v", i, rest1, rest2)
		}
	}
}

func TestNewNativeSourceFromPullRejectsOneShot(t *testing.T) {
	_, err := NewNativeSourceFromPull(func() (int, bool) { return 0, false })
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
}

func TestDrain(t *testing.T) {
	i := 0
	pull := func() (int, bool) {
		if i >= 3 {
			return 0, false
		}
		i++
		return i, true
	}
	got := Drain(pull)
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("unexpected drain result: %v", got)
	}
}
