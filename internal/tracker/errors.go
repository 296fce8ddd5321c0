package tracker

import "errors"

// Status constants. The string values are the persisted wire values.
const (
	StatusRunning Status = "Running"
	StatusPaused  Status = "Paused"
	StatusStopped Status = "Stopped"
)

// Uncategorized is the category for tasks whose description carries no tag.
const Uncategorized = "Uncategorized"

// Error variables for tracker operations.
var (
	ErrConfigFileNotFound   = errors.New("config file not found")
	ErrConfigFileRead       = errors.New("cannot read config file")
	ErrConfigInvalid        = errors.New("invalid config file")
	ErrStorageLocationEmpty = errors.New("storage_location cannot be empty")
	ErrChartWidthInvalid    = errors.New("chart_width must be positive")
	ErrFlagRequiresArg      = errors.New("flag requires an argument")
	ErrUnknownFlag          = errors.New("unknown flag")
	ErrNoRunningTask        = errors.New("no task is currently running")
	ErrNoPausedTask         = errors.New("no paused task found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskNotPaused        = errors.New("task is not paused")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrEmptyChunks          = errors.New("task has no time chunks")
	ErrOpenChunkNotLast     = errors.New("only the last time chunk may be open")
	ErrStatusMismatch       = errors.New("status does not match last time chunk")
	ErrChunkEndsBeforeStart = errors.New("time chunk ends before it starts")
	ErrNilTask              = errors.New("null task entry")
)
