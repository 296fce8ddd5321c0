package tracker

import (
	"fmt"
	"time"
)

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to [Clock].
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock returns the wall clock.
func SystemClock() Clock {
	return ClockFunc(time.Now)
}

// StartAction describes what [Engine.Start] did.
type StartAction int

// Start actions.
const (
	StartCreated StartAction = iota + 1
	StartAlreadyRunning
	StartResumed
	StartRestarted
)

// String returns a short human description.
func (a StartAction) String() string {
	switch a {
	case StartCreated:
		return "created"
	case StartAlreadyRunning:
		return "already running"
	case StartResumed:
		return "resumed"
	case StartRestarted:
		return "restarted"
	default:
		return fmt.Sprintf("StartAction(%d)", int(a))
	}
}

// StartResult reports the outcome of [Engine.Start].
type StartResult struct {
	Ref
	Action StartAction

	// Paused lists other tasks that were Running and got paused so that
	// only the started task is active.
	Paused []Ref
}

// Engine applies lifecycle operations to a [Store].
//
// At most one task is Running after any Engine operation: Start and Resume
// pause every other Running task before activating their target. Stop,
// Pause and Status act on the first Running task in [Store.Tasks] order.
type Engine struct {
	store *Store
	clock Clock
}

// NewEngine returns an engine mutating store with time from clock.
func NewEngine(store *Store, clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock()
	}

	return &Engine{store: store, clock: clock}
}

// Store returns the store the engine mutates.
func (e *Engine) Store() *Store {
	return e.store
}

// now returns the clock reading in UTC at whole-second resolution.
func (e *Engine) now() time.Time {
	return e.clock.Now().UTC().Truncate(time.Second)
}

// Start begins or continues the task described by description.
//
// The description is split with [ExtractCategory]. If no task with the
// cleaned name exists in that category a new Running task is filed. An
// existing Running task is left alone; a Paused or Stopped one gets a new
// open chunk.
func (e *Engine) Start(description string) StartResult {
	now := e.now()
	category, name := ExtractCategory(description)

	task, found := e.store.Find(category, name)
	if !found {
		paused := e.pauseOthers(nil, now)

		task = NewTask(description, now)
		category = e.store.FileTask(task)

		return StartResult{Ref: Ref{Category: category, Task: task}, Action: StartCreated, Paused: paused}
	}

	ref := Ref{Category: category, Task: task}

	var action StartAction

	switch task.Status {
	case StatusRunning:
		action = StartAlreadyRunning
	case StatusPaused:
		action = StartResumed
	case StatusStopped:
		action = StartRestarted
	}

	paused := e.pauseOthers(task, now)

	if task.Status != StatusRunning {
		task.open(now)
	}

	return StartResult{Ref: ref, Action: action, Paused: paused}
}

// Stop closes the Running task's open chunk and marks it Stopped.
// Returns [ErrNoRunningTask] when nothing is running; the store is unchanged.
func (e *Engine) Stop() (Ref, error) {
	ref, ok := e.store.FirstWithStatus(StatusRunning)
	if !ok {
		return Ref{}, ErrNoRunningTask
	}

	ref.Task.close(e.now(), StatusStopped)

	return ref, nil
}

// Pause closes the Running task's open chunk and marks it Paused.
// Returns [ErrNoRunningTask] when nothing is running; the store is unchanged.
func (e *Engine) Pause() (Ref, error) {
	ref, ok := e.store.FirstWithStatus(StatusRunning)
	if !ok {
		return Ref{}, ErrNoRunningTask
	}

	ref.Task.close(e.now(), StatusPaused)

	return ref, nil
}

// Resume reopens a Paused task.
//
// With an empty description the most recently paused task is resumed. With
// a description, the task it names is resumed; [ErrTaskNotFound] or
// [ErrTaskNotPaused] report a mismatch. Returns [ErrNoPausedTask] when no
// task is Paused.
func (e *Engine) Resume(description string) (Ref, error) {
	var (
		ref Ref
		err error
	)

	if description == "" {
		ref, err = e.latestPaused()
	} else {
		ref, err = e.namedPaused(description)
	}

	if err != nil {
		return Ref{}, err
	}

	now := e.now()
	e.pauseOthers(ref.Task, now)
	ref.Task.open(now)

	return ref, nil
}

// Status returns the Running task and its accrued time.
// Returns [ErrNoRunningTask] when idle.
func (e *Engine) Status() (Ref, time.Duration, error) {
	ref, ok := e.store.FirstWithStatus(StatusRunning)
	if !ok {
		return Ref{}, 0, ErrNoRunningTask
	}

	return ref, ref.Task.Accrue(e.now()), nil
}

// Clear discards every category and task.
func (e *Engine) Clear() {
	e.store.Categories = make(map[string][]*Task)
}

func (e *Engine) latestPaused() (Ref, error) {
	var (
		best    Ref
		bestEnd time.Time
		found   bool
	)

	for category, task := range e.store.Tasks() {
		if task.Status != StatusPaused {
			continue
		}

		var end time.Time
		if last, ok := task.LastChunk(); ok && last.End != nil {
			end = *last.End
		}

		if !found || end.After(bestEnd) {
			best = Ref{Category: category, Task: task}
			bestEnd = end
			found = true
		}
	}

	if !found {
		return Ref{}, ErrNoPausedTask
	}

	return best, nil
}

func (e *Engine) namedPaused(description string) (Ref, error) {
	category, name := ExtractCategory(description)

	task, ok := e.store.Find(category, name)
	if !ok {
		if _, anyPaused := e.store.FirstWithStatus(StatusPaused); !anyPaused {
			return Ref{}, ErrNoPausedTask
		}

		return Ref{}, fmt.Errorf("%w: %s", ErrTaskNotFound, description)
	}

	if task.Status != StatusPaused {
		return Ref{}, fmt.Errorf("%w: %s (status: %s)", ErrTaskNotPaused, name, task.Status)
	}

	return Ref{Category: category, Task: task}, nil
}

// pauseOthers pauses every Running task except keep.
func (e *Engine) pauseOthers(keep *Task, now time.Time) []Ref {
	var paused []Ref

	for category, task := range e.store.Tasks() {
		if task == keep || task.Status != StatusRunning {
			continue
		}

		task.close(now, StatusPaused)
		paused = append(paused, Ref{Category: category, Task: task})
	}

	return paused
}
