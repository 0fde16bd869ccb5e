package todo

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"
)

func newTestStore() *Store {
	n := 0
	return New(
		WithClock(func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("T%03d", n)
		}),
	)
}

func rows(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = fmt.Sprintf("%d %s %v", e.Index, e.Text, e.Done)
	}
	return out
}

func TestNewStoreIsEmpty(t *testing.T) {
	s := New()
	if s.Len() != 0 {
		t.Fatalf("Len: got %d, want 0", s.Len())
	}
	if got := s.List(); len(got) != 0 {
		t.Errorf("List: got %v, want empty", got)
	}
	if got := s.Stats(); got != (Stats{}) {
		t.Errorf("Stats: got %+v, want zero", got)
	}
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantText string
		wantErr  error
	}{
		{name: "plain", input: "buy milk", wantText: "buy milk"},
		{name: "trims", input: "  call mom \n", wantText: "call mom"},
		{name: "keeps inner spaces", input: "a  b", wantText: "a  b"},
		{name: "keeps markup verbatim", input: "<b>bold</b> & co", wantText: "<b>bold</b> & co"},
		{name: "empty", input: "", wantErr: ErrEmptyInput},
		{name: "whitespace only", input: " \t\n ", wantErr: ErrEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore()
			entry, err := s.Add(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Add(%q) error: got %v, want %v", tt.input, err, tt.wantErr)
				}
				if s.Len() != 0 {
					t.Errorf("Len after failed Add: got %d, want 0", s.Len())
				}
				return
			}
			if err != nil {
				t.Fatalf("Add(%q) failed: %v", tt.input, err)
			}
			if entry.Text != tt.wantText {
				t.Errorf("Text: got %q, want %q", entry.Text, tt.wantText)
			}
			if entry.Done {
				t.Error("new task should not be done")
			}
			if entry.Index != 0 {
				t.Errorf("Index: got %d, want 0", entry.Index)
			}
			if entry.ID != "T001" {
				t.Errorf("ID: got %q, want T001", entry.ID)
			}
		})
	}
}

func TestAddGrowsByOne(t *testing.T) {
	s := newTestStore()
	for i, text := range []string{"one", "two", "one", "three"} {
		before := s.Len()
		entry, err := s.Add(text)
		if err != nil {
			t.Fatalf("Add(%q) failed: %v", text, err)
		}
		if s.Len() != before+1 {
			t.Errorf("Len: got %d, want %d", s.Len(), before+1)
		}
		if entry.Index != i {
			t.Errorf("Index: got %d, want %d", entry.Index, i)
		}
	}
	// duplicates are allowed
	if got := s.List(); got[0].Text != got[2].Text {
		t.Errorf("expected duplicate texts, got %v", rows(got))
	}
}

func TestDefaultIDsAreUnique(t *testing.T) {
	s := New()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		entry, err := s.Add("task")
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if entry.ID == "" || seen[entry.ID] {
			t.Fatalf("ID %q empty or reused", entry.ID)
		}
		seen[entry.ID] = true
	}
}

func TestListIsACopy(t *testing.T) {
	s := newTestStore()
	mustAdd(t, s, "buy milk")

	list := s.List()
	list[0].Text = "changed"
	list[0].Done = true

	got := s.List()
	if got[0].Text != "buy milk" || got[0].Done {
		t.Errorf("store mutated through List result: %+v", got[0])
	}
}

func TestToggleDone(t *testing.T) {
	s := newTestStore()
	mustAdd(t, s, "a")
	mustAdd(t, s, "b")
	mustAdd(t, s, "c")

	done, err := s.ToggleDone(1)
	if err != nil {
		t.Fatalf("ToggleDone(1) failed: %v", err)
	}
	if !done {
		t.Error("ToggleDone(1): got false, want true")
	}
	want := []string{"0 a false", "1 b true", "2 c false"}
	if got := rows(s.List()); !reflect.DeepEqual(got, want) {
		t.Errorf("List: got %v, want %v", got, want)
	}

	// twice restores the original value
	done, err = s.ToggleDone(1)
	if err != nil {
		t.Fatalf("ToggleDone(1) failed: %v", err)
	}
	if done {
		t.Error("second ToggleDone(1): got true, want false")
	}
	want = []string{"0 a false", "1 b false", "2 c false"}
	if got := rows(s.List()); !reflect.DeepEqual(got, want) {
		t.Errorf("List: got %v, want %v", got, want)
	}
}

func TestIndexOutOfRange(t *testing.T) {
	s := newTestStore()
	mustAdd(t, s, "a")
	mustAdd(t, s, "b")
	before := s.List()

	for _, index := range []int{-1, 2, 100} {
		t.Run(fmt.Sprintf("toggle %d", index), func(t *testing.T) {
			_, err := s.ToggleDone(index)
			assertIndexError(t, err, "toggle", index, 2)
		})
		t.Run(fmt.Sprintf("delete %d", index), func(t *testing.T) {
			text, err := s.DeleteAt(index)
			assertIndexError(t, err, "delete", index, 2)
			if text != "" {
				t.Errorf("text: got %q, want empty", text)
			}
		})
	}

	if got := s.List(); !reflect.DeepEqual(got, before) {
		t.Errorf("list mutated by failed calls: got %v, want %v", rows(got), rows(before))
	}
}

func TestDeleteAtOnEmptyList(t *testing.T) {
	s := newTestStore()
	_, err := s.DeleteAt(0)
	assertIndexError(t, err, "delete", 0, 0)
	if got := err.Error(); got != "delete: index 0: list is empty" {
		t.Errorf("message: got %q", got)
	}
}

func TestDeleteAtShiftsLaterTasks(t *testing.T) {
	tests := []struct {
		index int
		want  []string
	}{
		{0, []string{"0 b false", "1 c true", "2 d false"}},
		{1, []string{"0 a false", "1 c true", "2 d false"}},
		{3, []string{"0 a false", "1 b false", "2 c true"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("index %d", tt.index), func(t *testing.T) {
			s := newTestStore()
			for _, text := range []string{"a", "b", "c", "d"} {
				mustAdd(t, s, text)
			}
			if _, err := s.ToggleDone(2); err != nil {
				t.Fatalf("ToggleDone failed: %v", err)
			}
			idsBefore := s.List()

			text, err := s.DeleteAt(tt.index)
			if err != nil {
				t.Fatalf("DeleteAt(%d) failed: %v", tt.index, err)
			}
			if text != idsBefore[tt.index].Text {
				t.Errorf("removed text: got %q, want %q", text, idsBefore[tt.index].Text)
			}
			after := s.List()
			if got := rows(after); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("List: got %v, want %v", got, tt.want)
			}
			for i := tt.index; i < len(after); i++ {
				if after[i].ID != idsBefore[i+1].ID {
					t.Errorf("position %d: got id %s, want %s", i, after[i].ID, idsBefore[i+1].ID)
				}
			}
		})
	}
}

func TestStats(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 7; i++ {
		mustAdd(t, s, fmt.Sprintf("task %d", i))
	}
	for _, i := range []int{0, 3, 5} {
		if _, err := s.ToggleDone(i); err != nil {
			t.Fatalf("ToggleDone(%d) failed: %v", i, err)
		}
	}

	got := s.Stats()
	want := Stats{Total: 7, Completed: 3, Pending: 4}
	if got != want {
		t.Errorf("Stats: got %+v, want %+v", got, want)
	}
	if got.Completed+got.Pending != got.Total {
		t.Errorf("completed + pending != total: %+v", got)
	}
}

func TestScenario(t *testing.T) {
	s := newTestStore()

	mustAdd(t, s, "buy milk")
	assertState(t, s, []string{"0 buy milk false"}, Stats{1, 0, 1})

	if _, err := s.ToggleDone(0); err != nil {
		t.Fatalf("ToggleDone(0) failed: %v", err)
	}
	assertState(t, s, []string{"0 buy milk true"}, Stats{1, 1, 0})

	mustAdd(t, s, "call mom")
	assertState(t, s, []string{"0 buy milk true", "1 call mom false"}, Stats{2, 1, 1})

	if _, err := s.DeleteAt(0); err != nil {
		t.Fatalf("DeleteAt(0) failed: %v", err)
	}
	assertState(t, s, []string{"0 call mom false"}, Stats{1, 0, 1})
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := s.Add(fmt.Sprintf("w%d-%d", i, j)); err != nil {
					t.Errorf("Add failed: %v", err)
					return
				}
				_ = s.Stats()
				_ = s.List()
				_, _ = s.ToggleDone(0)
			}
		}(i)
	}
	wg.Wait()

	if s.Len() != 400 {
		t.Errorf("Len: got %d, want 400", s.Len())
	}
	stats := s.Stats()
	if stats.Completed+stats.Pending != stats.Total {
		t.Errorf("inconsistent stats: %+v", stats)
	}
}

func mustAdd(t *testing.T, s *Store, text string) Entry {
	t.Helper()
	entry, err := s.Add(text)
	if err != nil {
		t.Fatalf("Add(%q) failed: %v", text, err)
	}
	return entry
}

func assertState(t *testing.T, s *Store, wantRows []string, wantStats Stats) {
	t.Helper()
	if got := rows(s.List()); !reflect.DeepEqual(got, wantRows) {
		t.Errorf("List: got %v, want %v", got, wantRows)
	}
	if got := s.Stats(); got != wantStats {
		t.Errorf("Stats: got %+v, want %+v", got, wantStats)
	}
}

func assertIndexError(t *testing.T, err error, op string, index, length int) {
	t.Helper()
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("error: got %v, want ErrIndexOutOfRange", err)
	}
	var ie *IndexError
	if !errors.As(err, &ie) {
		t.Fatalf("error %v is not an *IndexError", err)
	}
	if ie.Op != op || ie.Index != index || ie.Len != length {
		t.Errorf("IndexError: got %+v, want op=%s index=%d len=%d", ie, op, index, length)
	}
}
