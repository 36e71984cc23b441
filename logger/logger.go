package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var errRotatingWithoutFile = errors.New("rotating logs require a log file path")

type RotatingLoggerConfig struct {
	MaxSizeInMB  int  `json:"maxSizeInMB" yaml:"maxSizeInMB"`
	MaxBackups   int  `json:"maxBackups" yaml:"maxBackups"`
	MaxAgeInDays int  `json:"maxAgeInDays" yaml:"maxAgeInDays"`
	Compress     bool `json:"compress" yaml:"compress"`
}

type LoggerConfig struct {
	LogLevel            hclog.Level
	JSONLogFormat       bool
	AppendFile          bool
	LogFilePath         string
	Name                string
	RotatingLogsEnabled bool
	RotatingLogger      RotatingLoggerConfig
}

// NewLogger creates hclog logger writing to stderr, a log file or a lumberjack rotated log file
func NewLogger(config LoggerConfig) (hclog.Logger, error) {
	var output io.Writer

	if config.RotatingLogsEnabled {
		filePath := strings.TrimSpace(config.LogFilePath)
		if filePath == "" {
			return nil, errRotatingWithoutFile
		}

		if err := os.MkdirAll(filepath.Dir(filePath), 0750); err != nil {
			return nil, fmt.Errorf("could not create log directory: %w", err)
		}

		output = &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    config.RotatingLogger.MaxSizeInMB,
			MaxBackups: config.RotatingLogger.MaxBackups,
			MaxAge:     config.RotatingLogger.MaxAgeInDays,
			Compress:   config.RotatingLogger.Compress,
			LocalTime:  false,
		}
	} else {
		file, err := getLogFileWriter(config)
		if err != nil {
			return nil, err
		}

		// a nil *os.File must not end up as a non nil io.Writer
		if file != nil {
			output = file
		}
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       config.Name,
		Level:      config.LogLevel,
		Output:     output,
		JSONFormat: config.JSONLogFormat,
	}), nil
}

// getLogFileWriter opens the log file. Without AppendFile a timestamp is added to the file name
func getLogFileWriter(config LoggerConfig) (*os.File, error) {
	filePath := strings.TrimSpace(config.LogFilePath)
	if filePath == "" {
		return nil, nil
	}

	dir := filepath.Dir(filePath)

	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}

	if !config.AppendFile {
		ext := filepath.Ext(filePath)
		timestamp := strings.NewReplacer(":", "_", "-", "_").Replace(time.Now().UTC().Format(time.RFC3339))
		filePath = strings.TrimSuffix(filePath, ext) + "_" + timestamp + ext
	}

	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("could not create or open log file: %w", err)
	}

	return file, nil
}
