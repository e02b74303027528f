// Package session holds the live-mode selection state: the current record
// list, cursor, set of marked pids and the confirmation gate. It is pure
// state and transitions; the terminal layer feeds it key and timer events
// and draws whatever it exposes.
package session

import "github.com/reapctl/reap/internal/models"

// Phase is the control-loop state.
type Phase int

const (
	// Browsing accepts navigation, marking and refreshes.
	Browsing Phase = iota
	// ConfirmPending suppresses everything except confirm and cancel.
	ConfirmPending
	// Exiting ends the loop; KillOnExit says whether to dispatch.
	Exiting
)

// Session is created once at live-mode start and discarded when the loop
// exits. Marks are held by pid, so they survive refreshes that reorder rows
// and silently drop when a pid leaves the snapshot.
type Session struct {
	records    []models.ProcessRecord
	cursor     int
	marked     map[int]struct{}
	phase      Phase
	killOnExit bool
}

func New() *Session {
	return &Session{marked: make(map[int]struct{})}
}

func (s *Session) Phase() Phase                    { return s.phase }
func (s *Session) KillOnExit() bool                { return s.killOnExit }
func (s *Session) Records() []models.ProcessRecord { return s.records }
func (s *Session) Cursor() int                     { return s.cursor }
func (s *Session) MarkedCount() int                { return len(s.marked) }

// IsMarked reports whether the pid is in the selection set.
func (s *Session) IsMarked(pid int) bool {
	_, ok := s.marked[pid]
	return ok
}

// Current returns the record under the cursor, if any.
func (s *Session) Current() (models.ProcessRecord, bool) {
	if len(s.records) == 0 {
		return models.ProcessRecord{}, false
	}
	return s.records[s.cursor], true
}

// SetRecords replaces the record list wholesale, re-clamping the cursor when
// the list shrank. Ignored while a confirmation is pending: refreshes are
// suppressed behind the gate.
func (s *Session) SetRecords(records []models.ProcessRecord) {
	if s.phase == ConfirmPending {
		return
	}
	s.records = records
	if s.cursor > len(records)-1 {
		s.cursor = len(records) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// CursorUp moves the cursor one row up. No wraparound.
func (s *Session) CursorUp() {
	if s.phase != Browsing {
		return
	}
	if s.cursor > 0 {
		s.cursor--
	}
}

// CursorDown moves the cursor one row down. No wraparound.
func (s *Session) CursorDown() {
	if s.phase != Browsing {
		return
	}
	if s.cursor < len(s.records)-1 {
		s.cursor++
	}
}

// ToggleMark flips membership of the record under the cursor in the
// selection set. No-op on an empty list.
func (s *Session) ToggleMark() {
	if s.phase != Browsing {
		return
	}
	rec, ok := s.Current()
	if !ok {
		return
	}
	if s.IsMarked(rec.PID) {
		delete(s.marked, rec.PID)
	} else {
		s.marked[rec.PID] = struct{}{}
	}
}

// RequestConfirm raises the confirmation gate. Nothing marked, nothing to
// confirm.
func (s *Session) RequestConfirm() {
	if s.phase == Browsing && len(s.marked) > 0 {
		s.phase = ConfirmPending
	}
}

// Confirm resolves a pending confirmation toward dispatch.
func (s *Session) Confirm() {
	if s.phase == ConfirmPending {
		s.phase = Exiting
		s.killOnExit = true
	}
}

// Cancel drops a pending confirmation and resumes browsing. The selection
// set is preserved; no signal has been sent at this point.
func (s *Session) Cancel() {
	if s.phase == ConfirmPending {
		s.phase = Browsing
	}
}

// Quit leaves the loop without dispatching and clears the selection set.
func (s *Session) Quit() {
	if s.phase != Browsing {
		return
	}
	s.marked = make(map[int]struct{})
	s.phase = Exiting
}

// KillList copies the current records whose pid is marked. Marked pids that
// no longer appear in the records simply miss.
func (s *Session) KillList() []models.ProcessRecord {
	targets := make([]models.ProcessRecord, 0, len(s.marked))
	for _, rec := range s.records {
		if s.IsMarked(rec.PID) {
			targets = append(targets, rec)
		}
	}
	return targets
}
