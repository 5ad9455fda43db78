package seq

import (
	"context"
	"testing"
)

func TestChunkedSourceShardingPartition(t *testing.T) {
	data := make([]int, 0, 17)
	for i := 0; i < 17; i++ {
		data = append(data, i)
	}

	const world = 4
	seen := make(map[int]int)
	sizes := make([]int, world)
	for rank := 0; rank < world; rank++ {
		s, err := NewChunkedSource(data, world, rank)
		if err != nil {
			t.Fatalf("NewChunkedSource(rank=%d): %v", rank, err)
		}
		items := drainAll(t, s)
		sizes[rank] = len(items)
		for _, item := range items {
			seen[item]++
		}
	}

	if len(seen) != len(data) {
		t.Fatalf("union of shards covered %d items, want %d", len(seen), len(data))
	}
	for item, count := range seen {
		if count != 1 {
			t.Fatalf("item %d produced by %d shards, want exactly 1", item, count)
		}
	}

	minSize, maxSize := sizes[0], sizes[0]
	for _, sz := range sizes {
		if sz < minSize {
			minSize = sz
		}
		if sz > maxSize {
			maxSize = sz
		}
	}
	if maxSize-minSize > 1 {
		t.Fatalf("shard sizes differ by more than 1: %v", sizes)
	}
}

func TestChunkedSourceRejectsBadRank(t *testing.T) {
	data := []int{1, 2, 3}
	if _, err := NewChunkedSource(data, 2, 2); err == nil {
		t.Fatalf("expected error for rank == world")
	}
	if _, err := NewChunkedSource(data, 2, -1); err == nil {
		t.Fatalf("expected error for negative rank")
	}
	if _, err := NewChunkedSource(data, 0, 0); err == nil {
		t.Fatalf("expected error for world < 1")
	}
}

func TestChunkedSourceResetAndReplay(t *testing.T) {
	data := []int{0, 1, 2, 3, 4, 5, 6}
	s, err := NewChunkedSource(data, 1, 0)
	if err != nil {
		t.Fatalf("NewChunkedSource: %v", err)
	}
	before := drainAll(t, s)

	if err := s.SetState(nil); err != nil {
		t.Fatalf("SetState(nil): %v", err)
	}
	after := drainAll(t, s)
	if len(before) != len(after) {
		t.Fatalf("reset mismatch: %v vs %v", before, after)
	}

	s2, err := NewChunkedSource(data, 1, 0)
	if err != nil {
		t.Fatalf("NewChunkedSource: %v", err)
	}
	_, _ = s2.Next(context.Background())
	_, _ = s2.Next(context.Background())
	tok := s2.GetState()
	rest := drainAll(t, s2)

	s3, err := NewChunkedSource(data, 1, 0)
	if err != nil {
		t.Fatalf("NewChunkedSource: %v", err)
	}
	if err := s3.SetState(tok); err != nil {
		t.Fatalf("SetState: %v", err)
	}
	rest3 := drainAll(t, s3)
	if len(rest) != len(rest3) {
		t.Fatalf("replay length mismatch: %v vs %v", rest, rest3)
	}
	for i := range rest {
		if rest[i] != rest3[i] {
			t.Fatalf("replay mismatch: %v vs %v", rest, rest3)
		}
	}
}
