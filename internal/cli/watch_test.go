package cli

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/timetrack/internal/tracker"
)

func newWatchTestApp(t *testing.T) *app {
	t.Helper()

	dir := t.TempDir()
	cfg := tracker.Config{
		EffectiveCwd: dir,
		StorageAbs:   filepath.Join(dir, "tasks.json"),
		ChartWidth:   tracker.DefaultChartWidth,
	}

	a, err := newApp(cfg, map[string]string{nowEnvVar: TestEpoch.Format(time.RFC3339)}, nil)
	require.NoError(t, err)

	s := tracker.NewStore()
	s.FileTask(tracker.NewTask("deep work #focus", TestEpoch.Add(-90*time.Minute)))
	require.NoError(t, a.save(s))

	return a
}

func pressKey(t *testing.T, m watchModel, key string) (watchModel, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})

	updated, ok := next.(watchModel)
	require.True(t, ok)

	return updated, cmd
}

func Test_WatchModel_View_Shows_Running_Task_And_Day_Totals(t *testing.T) {
	t.Parallel()

	m := newWatchModel(newWatchTestApp(t), newStyles(&bytes.Buffer{}))
	view := m.View()

	AssertContains(t, view, "tt watch - Fri Mar 1 09:00:00")
	AssertContains(t, view, "[Running] deep work (#focus)")
	AssertContains(t, view, "01:30:00")
	AssertContains(t, view, "#focus")
	AssertContains(t, view, "01h 30m 00s")
	AssertContains(t, view, "p pause")
}

func Test_WatchModel_Keys_Pause_Resume_And_Stop_Saved_Task(t *testing.T) {
	t.Parallel()

	a := newWatchTestApp(t)
	m := newWatchModel(a, newStyles(&bytes.Buffer{}))

	m, _ = pressKey(t, m, "p")
	assert.Equal(t, "Paused deep work (#focus)", m.notice)

	saved, err := a.file.Load()
	require.NoError(t, err)
	assert.Equal(t, tracker.StatusPaused, saved.Categories["#focus"][0].Status)
	AssertContains(t, m.View(), "Idle: no task is running.")

	m, _ = pressKey(t, m, "r")
	assert.Equal(t, "Resumed deep work (#focus)", m.notice)

	m, _ = pressKey(t, m, "s")
	assert.Equal(t, "Stopped deep work (#focus)", m.notice)

	m, _ = pressKey(t, m, "s")
	assert.Equal(t, tracker.ErrNoRunningTask.Error(), m.notice)

	saved, err = a.file.Load()
	require.NoError(t, err)
	assert.Equal(t, tracker.StatusStopped, saved.Categories["#focus"][0].Status)
}

func Test_WatchModel_Quits_On_Q_And_Reschedules_Tick(t *testing.T) {
	t.Parallel()

	m := newWatchModel(newWatchTestApp(t), newStyles(&bytes.Buffer{}))

	_, cmd := pressKey(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	next, cmd := m.Update(watchTickMsg(TestEpoch))
	require.NotNil(t, cmd)
	assert.IsType(t, watchModel{}, next)
}
