package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nakachan-ing/notes-cli/internal/errs"
	"github.com/nakachan-ing/notes-cli/internal/model"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. NOTES_LOG_LEVEL.
const EnvPrefix = "NOTES"

func GetConfigPath() (string, error) {
	if customConfig := os.Getenv("NOTES_CONFIG"); customConfig != "" {
		return customConfig, nil
	}

	var configPath string

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			configPath = filepath.Join(appData, "notes-cli", "config.yaml")
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to determine home directory: %w", err)
			}
			configPath = filepath.Join(homeDir, "AppData", "Roaming", "notes-cli", "config.yaml")
		}

	default: // macOS / Linux
		configDir, err := os.UserConfigDir()
		if err != nil {
			homeDir, homeErr := os.UserHomeDir()
			if homeErr != nil {
				return "", fmt.Errorf("failed to determine home directory: %w", homeErr)
			}
			configPath = filepath.Join(homeDir, ".notes-cli", "config.yaml")
		} else {
			configPath = filepath.Join(configDir, "notes-cli", "config.yaml")
		}
	}

	return configPath, nil
}

// Expand `~` to the home directory
func expandHomeDir(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// LoadConfig layers defaults, the YAML config file (if present) and NOTES_*
// environment variables, then validates the result. An empty configPath
// means GetConfigPath.
func LoadConfig(configPath string) (*model.Config, error) {
	if configPath == "" {
		var err error
		if configPath, err = GetConfigPath(); err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v, model.DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file (%s): %w", configPath, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to check config file (%s): %w", configPath, err)
	}

	var config model.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.NotesFile = expandHomeDir(config.NotesFile)
	config.Log.File = expandHomeDir(config.Log.File)

	if err := ValidateConfig(config); err != nil {
		return nil, err
	}
	return &config, nil
}

func ValidateConfig(config model.Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(config); err != nil {
		return errs.Wrap(errs.Validation, fmt.Sprintf("invalid config: %v", err), err)
	}
	return nil
}

// SaveConfig writes config as YAML to configPath, creating its directory.
func SaveConfig(config model.Config, configPath string) error {
	if err := ValidateConfig(config); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to convert config to YAML: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file (%s): %w", configPath, err)
	}
	return nil
}

func setDefaults(v *viper.Viper, d model.Config) {
	v.SetDefault("notes_file", d.NotesFile)
	v.SetDefault("editor", d.Editor)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("display.page_size", d.Display.PageSize)
	v.SetDefault("display.markdown_style", d.Display.MarkdownStyle)
}
