package tracker

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status is the lifecycle state of a [Task].
type Status string

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	return s == StatusRunning || s == StatusPaused || s == StatusStopped
}

// UnmarshalJSON rejects unknown status strings.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidStatus, err)
	}

	status := Status(raw)
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}

	*s = status

	return nil
}

// TimeChunk is one contiguous interval of active work.
// A nil End means the chunk is open and work is ongoing.
type TimeChunk struct {
	Start time.Time  `json:"start_time"`
	End   *time.Time `json:"end_time"`
}

// IsOpen reports whether the chunk has no end time.
func (c TimeChunk) IsOpen() bool {
	return c.End == nil
}

// Duration returns End-Start for a closed chunk and zero for an open one.
func (c TimeChunk) Duration() time.Duration {
	if c.End == nil {
		return 0
	}

	return c.End.Sub(c.Start)
}

// Task is a named unit of work with its recorded intervals.
//
// Invariants, checked by [Task.Validate]:
//   - TimeChunks is never empty
//   - only the last chunk may be open
//   - Status is Running iff the last chunk is open
type Task struct {
	Name       string
	TimeChunks []TimeChunk
	Status     Status

	// PausedDuration accumulates time spent Paused. It is informational and
	// never contributes to [Task.Accrue].
	PausedDuration time.Duration
}

// NewTask returns a Running task with one open chunk starting at now.
func NewTask(name string, now time.Time) *Task {
	return &Task{
		Name:       name,
		TimeChunks: []TimeChunk{{Start: now}},
		Status:     StatusRunning,
	}
}

// LastChunk returns the most recent chunk. ok is false for a task with no chunks.
func (t *Task) LastChunk() (TimeChunk, bool) {
	if len(t.TimeChunks) == 0 {
		return TimeChunk{}, false
	}

	return t.TimeChunks[len(t.TimeChunks)-1], true
}

// FirstStart returns the start of the first chunk.
func (t *Task) FirstStart() time.Time {
	if len(t.TimeChunks) == 0 {
		return time.Time{}
	}

	return t.TimeChunks[0].Start
}

// LastActive returns the start of the most recent chunk, which is what
// windowed summaries filter on.
func (t *Task) LastActive() time.Time {
	last, ok := t.LastChunk()
	if !ok {
		return time.Time{}
	}

	return last.Start
}

// Accrue returns the total active time as of now, truncated to whole seconds.
//
// Closed chunks contribute End-Start. The trailing open chunk contributes
// now-Start only while the task is Running; an open chunk on a task in any
// other state contributes nothing. The result is never negative.
func (t *Task) Accrue(now time.Time) time.Duration {
	var total time.Duration

	for i, chunk := range t.TimeChunks {
		if !chunk.IsOpen() {
			total += chunk.Duration()

			continue
		}

		if i == len(t.TimeChunks)-1 && t.Status == StatusRunning {
			total += now.Sub(chunk.Start)
		}
	}

	if total < 0 {
		return 0
	}

	return total.Truncate(time.Second)
}

// open appends a new open chunk and marks the task Running.
// Time spent Paused since the previous chunk closed is added to PausedDuration.
func (t *Task) open(now time.Time) {
	if t.Status == StatusPaused {
		if last, ok := t.LastChunk(); ok && last.End != nil && now.After(*last.End) {
			t.PausedDuration += now.Sub(*last.End).Truncate(time.Second)
		}
	}

	t.TimeChunks = append(t.TimeChunks, TimeChunk{Start: now})
	t.Status = StatusRunning
}

// close ends the open chunk at now and moves the task to status.
// An end before the chunk start is clamped to the start.
func (t *Task) close(now time.Time, status Status) {
	if n := len(t.TimeChunks); n > 0 && t.TimeChunks[n-1].IsOpen() {
		end := now
		if end.Before(t.TimeChunks[n-1].Start) {
			end = t.TimeChunks[n-1].Start
		}

		t.TimeChunks[n-1].End = &end
	}

	t.Status = status
}

// Validate checks the chunk and status invariants.
func (t *Task) Validate() error {
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}

	if len(t.TimeChunks) == 0 {
		return ErrEmptyChunks
	}

	last := len(t.TimeChunks) - 1

	for i, chunk := range t.TimeChunks {
		if chunk.IsOpen() && i != last {
			return fmt.Errorf("%w (chunk %d)", ErrOpenChunkNotLast, i)
		}

		if chunk.End != nil && chunk.End.Before(chunk.Start) {
			return fmt.Errorf("%w (chunk %d)", ErrChunkEndsBeforeStart, i)
		}
	}

	if t.TimeChunks[last].IsOpen() != (t.Status == StatusRunning) {
		return fmt.Errorf("%w: %s", ErrStatusMismatch, t.Status)
	}

	return nil
}

// taskJSON is the persisted shape of a task.
type taskJSON struct {
	Name           string      `json:"name"`
	TimeChunks     []TimeChunk `json:"time_chunks"`
	PausedDuration int64       `json:"paused_duration"` // seconds
	Status         Status      `json:"status"`
}

// MarshalJSON encodes PausedDuration as whole seconds.
func (t *Task) MarshalJSON() ([]byte, error) {
	chunks := t.TimeChunks
	if chunks == nil {
		chunks = []TimeChunk{}
	}

	return json.Marshal(taskJSON{
		Name:           t.Name,
		TimeChunks:     chunks,
		PausedDuration: int64(t.PausedDuration / time.Second),
		Status:         t.Status,
	})
}

// UnmarshalJSON decodes PausedDuration from whole seconds.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw taskJSON

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	*t = Task{
		Name:           raw.Name,
		TimeChunks:     raw.TimeChunks,
		Status:         raw.Status,
		PausedDuration: time.Duration(raw.PausedDuration) * time.Second,
	}

	return nil
}
