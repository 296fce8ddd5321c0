package tracker_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/timetrack/internal/tracker"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func Test_LoadConfig_Uses_XDG_Data_Home_When_Unconfigured(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	env := map[string]string{"XDG_DATA_HOME": filepath.Join(dir, "data")}

	cfg, err := tracker.LoadConfig(tracker.LoadConfigInput{WorkDirOverride: dir, Env: env})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data", "tt", "tasks.json"), cfg.StorageAbs)
	assert.Equal(t, tracker.DefaultChartWidth, cfg.ChartWidth)
	assert.Empty(t, cfg.Sources.Global)
	assert.Empty(t, cfg.Sources.Project)
}

func Test_LoadConfig_Falls_Back_To_Home_Then_WorkDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := tracker.LoadConfig(tracker.LoadConfigInput{WorkDirOverride: dir, Env: map[string]string{"HOME": "/home/me"}})
	require.NoError(t, err)
	assert.Equal(t, "/home/me/.local/share/tt/tasks.json", cfg.StorageAbs)

	cfg, err = tracker.LoadConfig(tracker.LoadConfigInput{WorkDirOverride: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tasks.json"), cfg.StorageAbs)
}

func Test_LoadConfig_Layers_Global_Project_And_Override(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	env := map[string]string{"XDG_CONFIG_HOME": filepath.Join(dir, "config")}

	writeConfig(t, filepath.Join(dir, "config", "tt", "config.json"), `{
		// global
		"storage_location": "/global/tasks.json",
		"chart_width": 120,
	}`)

	cfg, err := tracker.LoadConfig(tracker.LoadConfigInput{WorkDirOverride: dir, Env: env})
	require.NoError(t, err)
	assert.Equal(t, "/global/tasks.json", cfg.StorageAbs)
	assert.Equal(t, 120, cfg.ChartWidth)
	assert.Equal(t, filepath.Join(dir, "config", "tt", "config.json"), cfg.Sources.Global)

	writeConfig(t, filepath.Join(dir, tracker.ConfigFileName), `{"storage_location": "project.json"}`)

	cfg, err = tracker.LoadConfig(tracker.LoadConfigInput{WorkDirOverride: dir, Env: env})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "project.json"), cfg.StorageAbs)
	assert.Equal(t, 120, cfg.ChartWidth, "unset keys keep the lower layer's value")
	assert.Equal(t, filepath.Join(dir, tracker.ConfigFileName), cfg.Sources.Project)

	cfg, err = tracker.LoadConfig(tracker.LoadConfigInput{WorkDirOverride: dir, Env: env, FileOverride: "cli.json"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cli.json"), cfg.StorageAbs)
}

func Test_LoadConfig_Returns_Error_When_Explicit_Config_Missing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := tracker.LoadConfig(tracker.LoadConfigInput{WorkDirOverride: dir, ConfigPath: "nope.json"})
	require.ErrorIs(t, err, tracker.ErrConfigFileNotFound)
}

func Test_LoadConfig_Returns_Error_When_Config_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"broken json", `{"storage_location": `, tracker.ErrConfigInvalid},
		{"empty storage", `{"storage_location": ""}`, tracker.ErrStorageLocationEmpty},
		{"negative width", `{"chart_width": -3}`, tracker.ErrChartWidthInvalid},
		{"wrong type", `{"chart_width": "wide"}`, tracker.ErrConfigInvalid},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeConfig(t, filepath.Join(dir, "custom.json"), testCase.content)

			_, err := tracker.LoadConfig(tracker.LoadConfigInput{WorkDirOverride: dir, ConfigPath: "custom.json"})
			require.ErrorIs(t, err, testCase.want)
		})
	}
}

func Test_SetStorageLocation_Writes_Global_Config_Keeping_Other_Keys(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	env := map[string]string{"XDG_CONFIG_HOME": dir}
	cfgPath := filepath.Join(dir, "tt", "config.json")

	writeConfig(t, cfgPath, `{"chart_width": 80, /* note */ }`)

	written, err := tracker.SetStorageLocation(env, "/data/tasks.json", func(path string, data []byte) error {
		return os.WriteFile(path, data, 0o600)
	})
	require.NoError(t, err)
	assert.Equal(t, cfgPath, written)

	cfg, err := tracker.LoadConfig(tracker.LoadConfigInput{WorkDirOverride: dir, Env: env})
	require.NoError(t, err)
	assert.Equal(t, "/data/tasks.json", cfg.StorageAbs)
	assert.Equal(t, 80, cfg.ChartWidth)
}

func Test_SetStorageLocation_Fails_When_No_Config_Home(t *testing.T) {
	t.Parallel()

	_, err := tracker.SetStorageLocation(map[string]string{}, "/data/tasks.json", func(string, []byte) error {
		t.Fatal("write must not be called")

		return nil
	})
	require.ErrorIs(t, err, tracker.ErrConfigFileRead)
}
