package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/timetrack/internal/fs"
	"github.com/calvinalkan/timetrack/internal/store"
	"github.com/calvinalkan/timetrack/internal/tracker"
)

var base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func atPtr(minutes int) *time.Time {
	t := at(minutes)

	return &t
}

func sampleStore() *tracker.Store {
	s := tracker.NewStore()
	s.Categories["#work"] = []*tracker.Task{
		{
			Name:       "write report",
			TimeChunks: []tracker.TimeChunk{{Start: at(0), End: atPtr(30)}, {Start: at(45)}},
			Status:     tracker.StatusRunning,

			PausedDuration: 15 * time.Minute,
		},
	}
	s.Categories["Uncategorized"] = []*tracker.Task{
		{
			Name:       "inbox",
			TimeChunks: []tracker.TimeChunk{{Start: at(0), End: atPtr(5)}},
			Status:     tracker.StatusStopped,
		},
	}
	s.Categories["#empty"] = []*tracker.Task{}

	return s
}

func newFile(t *testing.T, fsys fs.FS) *store.File {
	t.Helper()

	f, err := store.New(fsys, filepath.Join(t.TempDir(), "nested", "tasks.json"))
	require.NoError(t, err)

	return f
}

func Test_File_Save_Then_Load_Returns_Equal_Store(t *testing.T) {
	t.Parallel()

	f := newFile(t, nil)
	want := sampleStore()

	require.NoError(t, f.Save(want))

	got, err := f.Load()
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("store mismatch (-want +got):\n%s", diff)
	}
}

func Test_File_Load_Returns_Empty_Store_When_File_Missing(t *testing.T) {
	t.Parallel()

	f := newFile(t, nil)

	got, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
	assert.Empty(t, got.CategoryNames())
}

func Test_File_Load_Returns_ErrStateUnreadable_When_Content_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		cause   error
	}{
		{
			name:    "not json",
			content: "{{{",
		},
		{
			name:    "missing categorization",
			content: `{"tasks": []}`,
			cause:   store.ErrMissingCategorization,
		},
		{
			name:    "unknown status",
			content: `{"categorization":{"categories":{"#a":[{"name":"x","time_chunks":[{"start_time":"2024-03-01T09:00:00Z","end_time":null}],"paused_duration":0,"status":"Sleeping"}]}}}`,
			cause:   tracker.ErrInvalidStatus,
		},
		{
			name:    "no chunks",
			content: `{"categorization":{"categories":{"#a":[{"name":"x","time_chunks":[],"paused_duration":0,"status":"Stopped"}]}}}`,
			cause:   tracker.ErrEmptyChunks,
		},
		{
			name:    "open chunk on stopped task",
			content: `{"categorization":{"categories":{"#a":[{"name":"x","time_chunks":[{"start_time":"2024-03-01T09:00:00Z","end_time":null}],"paused_duration":0,"status":"Stopped"}]}}}`,
			cause:   tracker.ErrStatusMismatch,
		},
		{
			name:    "null task",
			content: `{"categorization":{"categories":{"#a":[null]}}}`,
			cause:   tracker.ErrNilTask,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			f := newFile(t, nil)
			require.NoError(t, os.MkdirAll(filepath.Dir(f.Path()), 0o750))
			require.NoError(t, os.WriteFile(f.Path(), []byte(testCase.content), 0o600))

			got, err := f.Load()
			require.ErrorIs(t, err, store.ErrStateUnreadable)

			if testCase.cause != nil {
				require.ErrorIs(t, err, testCase.cause)
			}

			require.NotNil(t, got)
			assert.Equal(t, 0, got.Len())
		})
	}
}

func Test_File_Load_Returns_ErrStateUnreadable_When_Read_Fails(t *testing.T) {
	t.Parallel()

	faulty := fs.NewFaulty(fs.NewReal())
	faulty.Fail(fs.OpReadFile, errors.New("disk on fire"))

	f := newFile(t, faulty)

	got, err := f.Load()
	require.ErrorIs(t, err, store.ErrStateUnreadable)
	assert.True(t, fs.IsInjected(err))
	assert.Equal(t, 0, got.Len())
}

func Test_File_Save_Returns_Error_And_Keeps_Old_File_When_Write_Fails(t *testing.T) {
	t.Parallel()

	faulty := fs.NewFaulty(fs.NewReal())
	f := newFile(t, faulty)

	require.NoError(t, f.Save(sampleStore()))

	before, err := os.ReadFile(f.Path())
	require.NoError(t, err)

	faulty.Fail(fs.OpWriteFileAtomic, errors.New("no space"))

	err = f.Save(tracker.NewStore())
	require.Error(t, err)
	assert.True(t, fs.IsInjected(err))

	after, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func Test_File_Quarantine_Moves_File_Aside(t *testing.T) {
	t.Parallel()

	f := newFile(t, nil)

	moved, err := f.Quarantine()
	require.NoError(t, err)
	assert.Empty(t, moved, "nothing to move when the file is missing")

	require.NoError(t, os.MkdirAll(filepath.Dir(f.Path()), 0o750))
	require.NoError(t, os.WriteFile(f.Path(), []byte("garbage"), 0o600))

	moved, err = f.Quarantine()
	require.NoError(t, err)
	assert.Equal(t, f.Path()+store.QuarantineSuffix, moved)
	assert.NoFileExists(t, f.Path())

	data, err := os.ReadFile(moved)
	require.NoError(t, err)
	assert.Equal(t, "garbage", string(data))
}

func Test_File_Export_Writes_Same_Document_As_Save(t *testing.T) {
	t.Parallel()

	f := newFile(t, nil)
	s := sampleStore()

	require.NoError(t, f.Save(s))

	exportPath := filepath.Join(t.TempDir(), "out", "backup.json")
	require.NoError(t, f.Export(s, exportPath))

	saved, err := os.ReadFile(f.Path())
	require.NoError(t, err)

	exported, err := os.ReadFile(exportPath)
	require.NoError(t, err)

	assert.Equal(t, string(saved), string(exported))
}

func Test_Encode_Writes_Documented_Wire_Format(t *testing.T) {
	t.Parallel()

	s := tracker.NewStore()
	s.Categories["#work"] = []*tracker.Task{
		{
			Name:       "a",
			TimeChunks: []tracker.TimeChunk{{Start: at(0), End: atPtr(1)}, {Start: at(2)}},
			Status:     tracker.StatusRunning,

			PausedDuration: 90 * time.Second,
		},
	}

	data, err := store.Encode(s)
	require.NoError(t, err)

	want := `{
  "categorization": {
    "categories": {
      "#work": [
        {
          "name": "a",
          "time_chunks": [
            {
              "start_time": "2024-03-01T09:00:00Z",
              "end_time": "2024-03-01T09:01:00Z"
            },
            {
              "start_time": "2024-03-01T09:02:00Z",
              "end_time": null
            }
          ],
          "paused_duration": 90,
          "status": "Running"
        }
      ]
    }
  }
}
`

	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Fatalf("encoded document mismatch (-want +got):\n%s", diff)
	}
}

func Test_Encode_Writes_Empty_Categories_For_Nil_Store(t *testing.T) {
	t.Parallel()

	data, err := store.Encode(nil)
	require.NoError(t, err)

	got, err := store.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func Test_New_Returns_Error_When_Path_Empty(t *testing.T) {
	t.Parallel()

	_, err := store.New(nil, "")
	require.ErrorIs(t, err, store.ErrPathEmpty)
}
