package logger

import (
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-hclog"
)

type ILoggerContainer interface {
	GetLogger(name string) (hclog.Logger, error)
}

// LoggerContainer creates one named logger per component. With a log directory every
// component gets its own file inside of it
type LoggerContainer struct {
	lock sync.Mutex

	loggers map[string]hclog.Logger
	config  LoggerConfig
}

var (
	_ ILoggerContainer = (*LoggerContainer)(nil)
	_ ILoggerContainer = (*NullLoggerContainer)(nil)
)

func NewLoggerContainer(config LoggerConfig) *LoggerContainer {
	return &LoggerContainer{
		loggers: map[string]hclog.Logger{},
		config:  config,
	}
}

func (l *LoggerContainer) GetLogger(name string) (hclog.Logger, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	logger, exists := l.loggers[name]
	if exists {
		return logger, nil
	}

	nc := l.config
	nc.Name = name

	if nc.LogFilePath != "" {
		nc.LogFilePath = filepath.Join(nc.LogFilePath, name+".log")
	}

	newLogger, err := NewLogger(nc)
	if err != nil {
		return nil, err
	}

	l.loggers[name] = newLogger

	return newLogger, nil
}

type NullLoggerContainer struct{}

func NewNullLoggerContainer() *NullLoggerContainer {
	return &NullLoggerContainer{}
}

func (l *NullLoggerContainer) GetLogger(string) (hclog.Logger, error) {
	return hclog.NewNullLogger(), nil
}
