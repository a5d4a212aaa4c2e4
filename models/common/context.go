package common

import (
	"github.com/fixitylab/checksum-services/util/logger"
	"github.com/op/go-logging"
)

// Context carries the config and logger that the pipeline and
// verification engine run with.
type Context struct {
	Config *Config
	Logger *logging.Logger
}

func NewContext() *Context {
	config := NewConfig()
	return &Context{
		Config: config,
		Logger: logger.InitLogger(config.LogLevel),
	}
}
