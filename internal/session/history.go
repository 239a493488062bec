package session

import "github.com/abhisek/wikiquiz/internal/quiz"

// HistoryRequest describes a GET /history call to perform.
type HistoryRequest struct {
	ID uint64
}

// HistoryResult is the outcome of a HistoryRequest.
type HistoryResult struct {
	ID      uint64
	Entries []quiz.HistoryEntry
	Err     error
}

// DeleteRequest describes a DELETE /quizzes/{id} call to perform.
type DeleteRequest struct {
	ID int
}

// DeleteResult is the outcome of a DeleteRequest.
type DeleteResult struct {
	ID  int
	Err error
}

// StartHistoryFetch issues a history request. The current list stays
// visible until the result arrives.
func StartHistoryFetch(s State) (State, *HistoryRequest) {
	s.historySeq++
	s.HistoryLoading = true
	return s, &HistoryRequest{ID: s.historySeq}
}

// ApplyHistoryResult replaces the history list on success. A failure keeps
// the previous list and is recorded in HistoryErr.
func ApplyHistoryResult(s State, r HistoryResult) State {
	if r.ID != s.historySeq {
		return s
	}
	s.HistoryLoading = false
	if r.Err != nil {
		s.HistoryErr = r.Err
		return s
	}
	s.HistoryErr = nil
	entries := make([]quiz.HistoryEntry, len(r.Entries))
	copy(entries, r.Entries)
	s.History = entries
	if s.PendingDelete != nil && !hasEntry(entries, s.PendingDelete.ID) {
		s.PendingDelete = nil
	}
	return s
}

// RequestDelete arms the confirmation for the entry with id. Unknown ids
// are ignored.
func RequestDelete(s State, id int) State {
	if s.Deleting != nil {
		return s
	}
	for _, e := range s.History {
		if e.ID == id {
			entry := e
			s.PendingDelete = &entry
			return s
		}
	}
	return s
}

// CancelDelete disarms a pending confirmation without any request.
func CancelDelete(s State) State {
	s.PendingDelete = nil
	return s
}

// ConfirmDelete turns the pending confirmation into a delete request.
func ConfirmDelete(s State) (State, *DeleteRequest) {
	if s.PendingDelete == nil {
		return s, nil
	}
	id := s.PendingDelete.ID
	s.PendingDelete = nil
	s.Deleting = &id
	return s, &DeleteRequest{ID: id}
}

// ApplyDeleteResult removes exactly the deleted entry on success. On
// failure the list is unchanged and a blocking notice is raised.
func ApplyDeleteResult(s State, r DeleteResult) State {
	if s.Deleting != nil && *s.Deleting == r.ID {
		s.Deleting = nil
	}
	if r.Err != nil {
		s.Notice = ErrorMessage(&DeleteFailure{ID: r.ID, Err: r.Err})
		return s
	}
	kept := make([]quiz.HistoryEntry, 0, len(s.History))
	for _, e := range s.History {
		if e.ID != r.ID {
			kept = append(kept, e)
		}
	}
	s.History = kept
	return s
}

func hasEntry(entries []quiz.HistoryEntry, id int) bool {
	for _, e := range entries {
		if e.ID == id {
			return true
		}
	}
	return false
}
