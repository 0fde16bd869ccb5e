package todo

import (
	"fmt"
	"testing"
)

func fill(b *testing.B, n int) *Store {
	b.Helper()
	s := New()
	for i := 0; i < n; i++ {
		if _, err := s.Add(fmt.Sprintf("Task %d", i)); err != nil {
			b.Fatalf("Add failed: %v", err)
		}
		if i%3 == 0 {
			if _, err := s.ToggleDone(i); err != nil {
				b.Fatalf("ToggleDone failed: %v", err)
			}
		}
	}
	return s
}

// BenchmarkAdd benchmarks appending tasks.
func BenchmarkAdd(b *testing.B) {
	s := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Add("benchmark task"); err != nil {
			b.Fatalf("Add failed: %v", err)
		}
	}
}

// BenchmarkList benchmarks snapshotting 500 tasks.
func BenchmarkList(b *testing.B) {
	s := fill(b, 500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if len(s.List()) != 500 {
			b.Fatal("unexpected length")
		}
	}
}

// BenchmarkStats benchmarks counting over 500 tasks.
func BenchmarkStats(b *testing.B) {
	s := fill(b, 500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if s.Stats().Total != 500 {
			b.Fatal("unexpected total")
		}
	}
}

// BenchmarkDeleteAtFront benchmarks the worst-case shift.
func BenchmarkDeleteAtFront(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		s := fill(b, 500)
		b.StartTimer()
		for s.Len() > 0 {
			if _, err := s.DeleteAt(0); err != nil {
				b.Fatalf("DeleteAt failed: %v", err)
			}
		}
	}
}
