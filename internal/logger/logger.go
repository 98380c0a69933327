// Package logger provides a small leveled, colorized logger used across
// chainsocksd for startup diagnostics and per-session reporting.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Log levels
const (
	DEBUG = iota
	INFO
	WARN
	ERROR
	FATAL
)

// Logger struct
type Logger struct {
	level    int
	log      *log.Logger
	logLevel map[int]string
	colors   map[int]*color.Color
}

var (
	instance *Logger
	once     = &sync.Once{}
)

// Initialize logger once (singleton)
func init() {
	once.Do(func() {
		instance = NewLogger(DEBUG, os.Stdout)
	})
}

// NewLogger initializes a new logger with the specified minimum level
func NewLogger(level int, output io.Writer) *Logger {
	return &Logger{
		level: level,
		log:   log.New(output, "", 0),
		logLevel: map[int]string{
			DEBUG: "DEBUG",
			INFO:  "INFO",
			WARN:  "WARN",
			ERROR: "ERROR",
			FATAL: "FATAL",
		},
		colors: map[int]*color.Color{
			DEBUG: color.New(color.FgBlue),
			INFO:  color.New(color.FgGreen),
			WARN:  color.New(color.FgYellow),
			ERROR: color.New(color.FgRed),
			FATAL: color.New(color.FgMagenta, color.Bold),
		},
	}
}

// SetLevel allows changing the log level dynamically
func SetLevel(level int) {
	instance.level = level
}

// logMessage is the internal logging method that checks the level and logs the message
func (l *Logger) logMessage(level int, args ...any) {
	if level >= l.level {
		timestamp := color.CyanString(time.Now().Format(time.RFC3339))
		tag := l.colors[level].Sprint(l.logLevel[level])
		message := fmt.Sprint(args...)
		l.log.Printf("[%s] [%s] - %s", timestamp, tag, message)
	}
}

// Global log methods

// Debug logs a message with DEBUG level
func Debug(args ...any) {
	instance.logMessage(DEBUG, args...)
}

// Info logs a message with INFO level
func Info(args ...any) {
	instance.logMessage(INFO, args...)
}

// Warn logs a message with WARN level
func Warn(args ...any) {
	instance.logMessage(WARN, args...)
}

// Error logs a message with ERROR level
func Error(args ...any) {
	instance.logMessage(ERROR, args...)
}

// Fatal logs a message with FATAL level and exits the program
func Fatal(args ...any) {
	instance.logMessage(FATAL, args...)
	os.Exit(1)
}
