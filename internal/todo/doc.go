// Package todo holds the in-memory task list and its derived statistics.
//
// A Store owns an insertion-ordered sequence of tasks. The position of a
// task in that sequence is the identifier callers use to toggle or delete
// it:
//
//	s := todo.New()
//	s.Add("buy milk")      // [(0, "buy milk", false)]
//	s.ToggleDone(0)        // [(0, "buy milk", true)]
//	s.Add("call mom")      // [(0, ...), (1, "call mom", false)]
//	s.DeleteAt(0)          // [(0, "call mom", false)]
//
// Deleting index i shifts every later task down by one, so an index is only
// meaningful against the List snapshot it was read from.
//
// # Errors
//
//   - ErrEmptyInput: Add was given text that is empty after trimming.
//   - ErrIndexOutOfRange: ToggleDone or DeleteAt was given an index outside
//     [0, Len). The concrete error is an *IndexError carrying the range.
//
// A failed operation never mutates the list.
//
// # Seeds and snapshots
//
// A session can start from a seed document and can print a snapshot of its
// state. Both use the same JSON shape:
//
//	{
//	  "schema_version": 1,
//	  "tasks": [
//	    {"text": "buy milk", "done": true},
//	    {"text": "call mom"}
//	  ]
//	}
//
// Seeds are validated against the embedded JSON Schema (draft 2020-12) and
// replayed through Add and ToggleDone. Nothing is ever written back; the list
// lives only as long as the process.
package todo
