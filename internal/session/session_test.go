package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reapctl/reap/internal/models"
)

func records(pids ...int) []models.ProcessRecord {
	out := make([]models.ProcessRecord, len(pids))
	for i, pid := range pids {
		out[i] = models.ProcessRecord{PID: pid, Name: "proc"}
	}
	return out
}

func TestNewSessionStartsBrowsing(t *testing.T) {
	s := New()

	assert.Equal(t, Browsing, s.Phase())
	assert.Equal(t, 0, s.Cursor())
	assert.Zero(t, s.MarkedCount())

	_, ok := s.Current()
	assert.False(t, ok)
}

func TestCursorClampedNoWraparound(t *testing.T) {
	s := New()
	s.SetRecords(records(1, 2, 3))

	s.CursorUp()
	assert.Equal(t, 0, s.Cursor(), "no wrap at the top")

	s.CursorDown()
	s.CursorDown()
	s.CursorDown()
	s.CursorDown()
	assert.Equal(t, 2, s.Cursor(), "no wrap at the bottom")
}

func TestCursorReclampedWhenListShrinks(t *testing.T) {
	s := New()
	s.SetRecords(records(1, 2, 3, 4, 5))
	s.CursorDown()
	s.CursorDown()
	s.CursorDown()
	s.CursorDown()
	require.Equal(t, 4, s.Cursor())

	s.SetRecords(records(1, 2))
	assert.Equal(t, 1, s.Cursor())

	s.SetRecords(nil)
	assert.Equal(t, 0, s.Cursor())
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestMarkingOnEmptyListIsNoOp(t *testing.T) {
	s := New()

	s.ToggleMark()
	assert.Zero(t, s.MarkedCount())

	s.RequestConfirm()
	assert.Equal(t, Browsing, s.Phase(), "nothing marked, nothing to confirm")
}

func TestToggleMark(t *testing.T) {
	s := New()
	s.SetRecords(records(10, 20))

	s.ToggleMark()
	assert.True(t, s.IsMarked(10))

	s.ToggleMark()
	assert.False(t, s.IsMarked(10), "second toggle unmarks")
}

func TestMarksSurviveReorderByPID(t *testing.T) {
	s := New()
	s.SetRecords(records(10, 20, 30))
	s.ToggleMark() // pid 10

	// Refresh reorders rows; the mark follows the pid, not the row.
	s.SetRecords(records(30, 20, 10))
	assert.True(t, s.IsMarked(10))
	assert.Equal(t, records(10), s.KillList())
}

func TestMarkedPIDGoneFromSnapshotIsDropped(t *testing.T) {
	s := New()
	s.SetRecords(records(10, 20))
	s.ToggleMark() // pid 10

	s.SetRecords(records(20, 30))
	assert.Empty(t, s.KillList(), "exited pid misses on lookup, no pruning needed")
}

func TestConfirmFlow(t *testing.T) {
	s := New()
	s.SetRecords(records(10, 20))
	s.ToggleMark()

	s.RequestConfirm()
	require.Equal(t, ConfirmPending, s.Phase())

	s.Confirm()
	assert.Equal(t, Exiting, s.Phase())
	assert.True(t, s.KillOnExit())
	assert.Equal(t, records(10), s.KillList())
}

func TestCancelPreservesMarksAndResumesBrowsing(t *testing.T) {
	s := New()
	s.SetRecords(records(10, 20))
	s.ToggleMark()
	s.RequestConfirm()

	s.Cancel()
	assert.Equal(t, Browsing, s.Phase())
	assert.True(t, s.IsMarked(10))
}

func TestConfirmGateSuppressesEverythingElse(t *testing.T) {
	s := New()
	s.SetRecords(records(10, 20, 30))
	s.ToggleMark()
	s.RequestConfirm()
	require.Equal(t, ConfirmPending, s.Phase())

	s.CursorDown()
	assert.Equal(t, 0, s.Cursor(), "navigation suppressed")

	s.SetRecords(records(99))
	assert.Len(t, s.Records(), 3, "refresh suppressed")

	s.ToggleMark()
	assert.Equal(t, 1, s.MarkedCount(), "marking suppressed")

	s.Quit()
	assert.Equal(t, ConfirmPending, s.Phase(), "quit suppressed")
}

func TestCancelThenQuitSendsNothing(t *testing.T) {
	s := New()
	s.SetRecords(records(150, 200, 300))

	s.ToggleMark() // 150
	s.CursorDown()
	s.CursorDown()
	s.ToggleMark() // 300
	require.Equal(t, 2, s.MarkedCount())

	s.RequestConfirm()
	s.Cancel()
	s.Quit()

	assert.Equal(t, Exiting, s.Phase())
	assert.False(t, s.KillOnExit())
	assert.Empty(t, s.KillList(), "quit clears the selection set")
}

func TestKillListCopiesCurrentRecords(t *testing.T) {
	s := New()
	s.SetRecords([]models.ProcessRecord{
		{PID: 150, Name: "chrome", CPUPercent: 12},
		{PID: 200, Name: "chrome", CPUPercent: 3},
	})
	s.ToggleMark()
	s.CursorDown()
	s.ToggleMark()
	s.RequestConfirm()
	s.Confirm()

	list := s.KillList()
	require.Len(t, list, 2)
	assert.Equal(t, 150, list[0].PID)
	assert.Equal(t, 200, list[1].PID)
}
