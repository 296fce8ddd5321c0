package tracker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	StorageLocation string `json:"storage_location,omitempty"`
	ChartWidth      int    `json:"chart_width,omitempty"`

	// Resolved values (computed, not serialized)
	EffectiveCwd string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	StorageAbs   string `json:"-"` // Absolute path to the data file

	// Sources tracks which config files were loaded (for diagnostics)
	Sources ConfigSources `json:"-"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// ConfigFileName is the project config file name.
const ConfigFileName = ".tt.json"

// DataFileName is the name of the data file inside the storage directory.
const DataFileName = "tasks.json"

// DefaultChartWidth is the timeline width used when chart_width is unset.
const DefaultChartWidth = 96

// appDirName is the per-application directory under XDG config/data homes.
const appDirName = "tt"

// DefaultConfig returns the default configuration for env.
func DefaultConfig(env map[string]string) Config {
	return Config{
		StorageLocation: defaultStorageLocation(env),
		ChartWidth:      DefaultChartWidth,
	}
}

// defaultStorageLocation returns $XDG_DATA_HOME/tt/tasks.json, falling back
// to ~/.local/share/tt/tasks.json, then to tasks.json in the working dir.
func defaultStorageLocation(env map[string]string) string {
	if xdgData := env["XDG_DATA_HOME"]; xdgData != "" {
		return filepath.Join(xdgData, appDirName, DataFileName)
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".local", "share", appDirName, DataFileName)
	}

	return DataFileName
}

// GlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/tt/config.json if set, otherwise ~/.config/tt/config.json.
// Returns empty string if home directory cannot be determined.
func GlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, appDirName, "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", appDirName, "config.json")
	}

	return ""
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	FileOverride    string            // -f/--file flag value; empty means no override
	Env             map[string]string // environment variables
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/tt/config.json or $XDG_CONFIG_HOME/tt/config.json)
// 3. Project config file at default location (.tt.json, if exists)
// 4. Explicit config file via configPath (if non-empty)
// 5. CLI overrides.
//
// All paths in the returned Config are resolved to absolute paths.
func LoadConfig(input LoadConfigInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	if !filepath.IsAbs(workDir) {
		abs, err := filepath.Abs(workDir)
		if err != nil {
			return Config{}, fmt.Errorf("resolving working directory: %w", err)
		}

		workDir = abs
	}

	cfg := DefaultConfig(input.Env)

	globalCfg, globalPath, err := loadGlobalConfig(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	if input.FileOverride != "" {
		cfg.StorageLocation = input.FileOverride
	}

	validateErr := validateConfig(cfg)
	if validateErr != nil {
		return Config{}, validateErr
	}

	cfg.EffectiveCwd = workDir

	if filepath.IsAbs(cfg.StorageLocation) {
		cfg.StorageAbs = cfg.StorageLocation
	} else {
		cfg.StorageAbs = filepath.Join(workDir, cfg.StorageLocation)
	}

	return cfg, nil
}

// loadGlobalConfig loads the global user config file if it exists.
// Returns the config, the path if loaded, and any error.
func loadGlobalConfig(env map[string]string) (Config, string, error) {
	globalCfgPath := GlobalConfigPath(env)
	if globalCfgPath == "" {
		return Config{}, "", nil
	}

	globalCfg, loaded, err := loadConfigFile(globalCfgPath, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return globalCfg, globalCfgPath, nil
}

// loadProjectConfig loads the project config file (.tt.json) or an explicit config file.
// Returns the config, the path if loaded, and any error.
func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		_, statErr := os.Stat(cfgFile)
		if statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		cfgFile = filepath.Join(workDir, ConfigFileName)
		mustExist = false
	}

	fileCfg, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	// A relative storage_location in a project file is relative to that file.
	if fileCfg.StorageLocation != "" && !filepath.IsAbs(fileCfg.StorageLocation) {
		fileCfg.StorageLocation = filepath.Join(filepath.Dir(cfgFile), fileCfg.StorageLocation)
	}

	return fileCfg, cfgFile, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing files return zero config.
// Returns the config, whether the file was loaded, and any error.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, false, nil
	}

	cfg, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	// An explicit "" would silently fall back to the default path.
	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	if val, exists := raw["storage_location"]; exists {
		if str, ok := val.(string); ok && str == "" {
			return Config{}, ErrStorageLocationEmpty
		}
	}

	if cfg.ChartWidth < 0 {
		return Config{}, ErrChartWidthInvalid
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.StorageLocation != "" {
		base.StorageLocation = overlay.StorageLocation
	}

	if overlay.ChartWidth != 0 {
		base.ChartWidth = overlay.ChartWidth
	}

	return base
}

func validateConfig(cfg Config) error {
	if cfg.StorageLocation == "" {
		return ErrStorageLocationEmpty
	}

	if cfg.ChartWidth <= 0 {
		return ErrChartWidthInvalid
	}

	return nil
}

// FormatConfig renders the resolved configuration as key=value lines.
func FormatConfig(cfg Config) string {
	return fmt.Sprintf("storage_location=%s\nchart_width=%d", cfg.StorageAbs, cfg.ChartWidth)
}

// SetStorageLocation rewrites the global config file with storage_location
// set to path, keeping any other keys. Comments in an existing file are not
// preserved. Returns the config file path written.
func SetStorageLocation(env map[string]string, path string, write func(path string, data []byte) error) (string, error) {
	cfgPath := GlobalConfigPath(env)
	if cfgPath == "" {
		return "", fmt.Errorf("%w: cannot determine global config path (set HOME or XDG_CONFIG_HOME)", ErrConfigFileRead)
	}

	if path == "" {
		return "", ErrStorageLocationEmpty
	}

	fields := map[string]any{}

	data, err := os.ReadFile(cfgPath)
	if err == nil {
		standardized, stdErr := hujson.Standardize(data)
		if stdErr != nil {
			return "", fmt.Errorf("%w %s: invalid JSONC: %w", ErrConfigInvalid, cfgPath, stdErr)
		}

		unmarshalErr := json.Unmarshal(standardized, &fields)
		if unmarshalErr != nil {
			return "", fmt.Errorf("%w %s: invalid JSON: %w", ErrConfigInvalid, cfgPath, unmarshalErr)
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrConfigFileRead, cfgPath)
	}

	fields["storage_location"] = path

	out, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}

	writeErr := write(cfgPath, append(out, '\n'))
	if writeErr != nil {
		return "", fmt.Errorf("writing config: %w", writeErr)
	}

	return cfgPath, nil
}
