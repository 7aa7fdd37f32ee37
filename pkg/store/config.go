package store

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// EnvConfigPath overrides where the .journey config file is searched for.
	EnvConfigPath = "JOURNEY_CONFIG_PATH"

	keyExports  = "exports"
	keyNotes    = "notes"
	keyLogLevel = "log.level"
	keyLogFile  = "log.file"
)

// Config is the resolved application configuration.
type Config interface {
	// ExportsPath is the directory exports are written to and listed from.
	ExportsPath() string
	// NotesSource is a URL or file path used to seed the notes pane. Empty
	// means start with no notes.
	NotesSource() string
	LogLevel() string
	LogFile() string
}

// LoadConfig reads .journey (yaml) from $JOURNEY_CONFIG_PATH or the working
// directory, layered over JOURNEY_* environment variables and defaults.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault(keyExports, "~/.journey/exports")
	v.SetDefault(keyNotes, "")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFile, "~/.journey/journey.log")
	v.SetConfigName(".journey") // .yaml is implicit
	v.SetConfigType("yaml")
	v.SetEnvPrefix("JOURNEY")
	v.AutomaticEnv()

	if override := os.Getenv(EnvConfigPath); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*fileConfig, error) {
	exports, err := homedir.Expand(v.GetString(keyExports))
	if err != nil {
		return nil, fmt.Errorf("store: expand exports path: %w", err)
	}
	logFile, err := homedir.Expand(v.GetString(keyLogFile))
	if err != nil {
		return nil, fmt.Errorf("store: expand log file: %w", err)
	}
	notes := v.GetString(keyNotes)
	if notes != "" && !isURL(notes) {
		if notes, err = homedir.Expand(notes); err != nil {
			return nil, fmt.Errorf("store: expand notes path: %w", err)
		}
	}
	return &fileConfig{
		Exports: exports,
		Notes:   notes,
		Level:   v.GetString(keyLogLevel),
		File:    logFile,
		Source:  v.ConfigFileUsed(),
	}, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

type fileConfig struct {
	Exports string `json:"exports"`
	Notes   string `json:"notes"`
	Level   string `json:"logLevel"`
	File    string `json:"logFile"`
	Source  string `json:"source,omitempty"`
}

func (f *fileConfig) ExportsPath() string { return f.Exports }
func (f *fileConfig) NotesSource() string { return f.Notes }
func (f *fileConfig) LogLevel() string    { return f.Level }
func (f *fileConfig) LogFile() string     { return f.File }

// ConfigFile returns the config file that was read, if any.
func ConfigFile(c Config) string {
	if fc, ok := c.(*fileConfig); ok {
		return fc.Source
	}
	return ""
}

// StaticConfig is a Config with fixed values, used by tests and flags.
type StaticConfig struct {
	Exports string
	Notes   string
	Level   string
	File    string
}

func (s StaticConfig) ExportsPath() string { return s.Exports }
func (s StaticConfig) NotesSource() string { return s.Notes }
func (s StaticConfig) LogLevel() string    { return s.Level }
func (s StaticConfig) LogFile() string     { return s.File }
