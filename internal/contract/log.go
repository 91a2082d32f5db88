package contract

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file rotation settings.
const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
)

var (
	loggerMu sync.RWMutex
	logger   = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel).With().Timestamp().Logger()
)

// InitLogger configures the process logger. Console output goes to console when
// it is non-nil; a rotating file is added when file is set.
func InitLogger(level zerolog.Level, file string, console io.Writer) {
	var writers []io.Writer
	if console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: console, TimeFormat: "15:04:05"})
	}
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err == nil {
			writers = append(writers, &lumberjack.Logger{
				Filename:   file,
				MaxSize:    logMaxSizeMB,
				MaxBackups: logMaxBackups,
				LocalTime:  true,
			})
		}
	}

	var out io.Writer = io.Discard
	if len(writers) > 0 {
		out = zerolog.MultiLevelWriter(writers...)
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Logger returns the process logger.
func Logger() *zerolog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	l := logger
	return &l
}
