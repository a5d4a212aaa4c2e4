package common

import (
	"github.com/fixitylab/checksum-services/constants"
	"github.com/fixitylab/checksum-services/util"
	"github.com/op/go-logging"
	"github.com/spf13/viper"
)

type Config struct {
	// DefaultStyle is the manifest style used when the caller
	// doesn't specify one. The core treats it as an ordinary
	// parameter; it just happens to come from the environment.
	DefaultStyle string

	// LogLevel for the process logger.
	LogLevel logging.Level

	// WorkerCount is the default digest pipeline worker count.
	// Zero means one worker per available CPU.
	WorkerCount int
}

var logLevels = map[string]logging.Level{
	"CRITICAL": logging.CRITICAL,
	"ERROR":    logging.ERROR,
	"WARNING":  logging.WARNING,
	"NOTICE":   logging.NOTICE,
	"INFO":     logging.INFO,
	"DEBUG":    logging.DEBUG,
}

// NewConfig reads settings from the environment. Everything has a
// sane default, so an empty environment yields a working config.
func NewConfig() *Config {
	v := viper.New()
	v.SetDefault("CHECKSUM_STYLE", constants.StyleSFV)
	v.SetDefault("CHECKSUM_WORKERS", 0)
	v.SetDefault("LOG_LEVEL", "ERROR")
	v.AutomaticEnv()

	config := &Config{
		DefaultStyle: v.GetString("CHECKSUM_STYLE"),
		LogLevel:     logging.ERROR,
		WorkerCount:  v.GetInt("CHECKSUM_WORKERS"),
	}
	if level, ok := logLevels[v.GetString("LOG_LEVEL")]; ok {
		config.LogLevel = level
	}
	if !util.StringListContains(constants.ManifestStyles, config.DefaultStyle) {
		config.DefaultStyle = constants.StyleSFV
	}
	if config.WorkerCount < 0 {
		config.WorkerCount = 0
	}
	return config
}
