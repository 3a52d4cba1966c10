// Package settings loads bootstrap settings: where data lives and how to log.
// User preferences edited in the app live in store.ConfigStore instead.
package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// AppID identifies the app to Fyne; it also names the preferences file
	AppID = "com.borgmon.stickyalarm"

	configName = ".sticky-alarm" // .yaml is implicit
	envPrefix  = "STICKY_ALARM"
)

type Settings struct {
	DataDir  string `mapstructure:"data_dir"`
	LogLevel string `mapstructure:"log_level"`
	LogEnv   string `mapstructure:"log_env"`
	// Mute uses the terminal bell instead of the audio device
	Mute bool `mapstructure:"mute"`
}

// Load reads settings from defaults, an optional .sticky-alarm.yaml and
// STICKY_ALARM_* environment variables. configDir, when set, is searched
// before the home directory and the working directory.
func Load(configDir string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("data_dir", "~/.sticky-alarm")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_env", "local")
	v.SetDefault("mute", false)

	v.SetConfigName(configName)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if override := os.Getenv(envPrefix + "_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}

	dir, err := homedir.Expand(s.DataDir)
	if err != nil {
		return nil, fmt.Errorf("expanding data dir: %w", err)
	}
	s.DataDir = dir

	return s, nil
}
