package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger writes application logs to a rotating file under ~/.docify.
type Logger struct {
	logger *log.Logger
}

var (
	globalLogger *Logger
	once         sync.Once
)

// GetLogger returns the singleton logger instance, initializing the rotating
// log file on first use.
func GetLogger() *Logger {
	once.Do(func() {
		logFile := &lumberjack.Logger{
			Filename:   logFilePath(),
			MaxSize:    15, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		globalLogger = &Logger{
			logger: log.New(logFile, "", log.LstdFlags),
		}
	})
	return globalLogger
}

// Close closes the underlying log file.
func (l *Logger) Close() error {
	if logFile, ok := l.logger.Writer().(*lumberjack.Logger); ok {
		return logFile.Close()
	}
	return nil
}

// Log writes a message to the log file only.
func (l *Logger) Log(message string) {
	l.logger.Print(message)
}

// Logf writes a formatted message to the log file only.
func (l *Logger) Logf(format string, v ...interface{}) {
	l.logger.Printf(format, v...)
}

// LogError records an error in the log file.
func (l *Logger) LogError(err error) {
	l.logger.Printf("Error: %s", err)
}

// LogProcessStep logs a step and echoes it to stdout for the user.
func (l *Logger) LogProcessStep(step string) {
	l.logger.Printf("Process Step: %s", step)
	fmt.Println(step)
}

// GetLogPath returns the path to the log file.
func GetLogPath() string {
	return logFilePath()
}

func logFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".docify", "docify.log")
}
