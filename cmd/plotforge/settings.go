package main

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Constants for configuration
const (
	DefaultConfigPath = "./plotforge.yaml"
	envPrefix         = "PLOTFORGE"
)

// Settings are the defaults read from plotforge.yaml and PLOTFORGE_*
// variables. Flags given on the command line always win over them.
type Settings struct {
	Theme        string
	Preset       string
	Color        string
	Font         string
	Watermark    string
	EngineDir    string
	StdinTimeout string
}

// LoadSettings reads the optional config file and the environment. A missing
// file at the default path is not an error.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("theme", "light")
	v.SetDefault("stdin-timeout", "3s")
	v.SetDefault("config", DefaultConfigPath)

	explicit := path != ""
	if !explicit {
		path = v.GetString("config")
		explicit = path != DefaultConfigPath
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)) {
			return nil, err
		}
	}

	return &Settings{
		Theme:        v.GetString("theme"),
		Preset:       v.GetString("preset"),
		Color:        v.GetString("color"),
		Font:         v.GetString("font"),
		Watermark:    v.GetString("watermark"),
		EngineDir:    v.GetString("engine-dir"),
		StdinTimeout: v.GetString("stdin-timeout"),
	}, nil
}

// Dark reports whether the configured default theme is the dark one
func (s Settings) Dark() bool {
	return strings.EqualFold(s.Theme, "dark")
}
