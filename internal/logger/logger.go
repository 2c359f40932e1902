// Package logger provides tagged, optionally coloured console output.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// Level is a log severity threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

const (
	reset  = "\033[0m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
	bold   = "\033[1m"
)

var (
	mu     sync.Mutex
	out    io.Writer = os.Stdout
	level            = LevelInfo
	colour           = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
)

// ParseLevel maps "debug", "info", "warn" and "error" to a Level. Unknown values map to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// SetLevel sets the minimum level that is printed.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// SetOutput redirects all output. Colours are disabled unless w is a terminal.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	colour = false
	if f, ok := w.(*os.File); ok {
		colour = isatty.IsTerminal(f.Fd())
	}
}

func paint(c, s string) string {
	if !colour {
		return s
	}
	return c + s + reset
}

func write(l Level, c, tag, msg string) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	ts := time.Now().Format("15:04:05")
	fmt.Fprintf(out, "%s %s %s\n", paint(dim, ts), paint(c, fmt.Sprintf("[%s]", tag)), msg)
}

// Debug prints a debug line.
func Debug(tag, msg string) { write(LevelDebug, dim, tag, msg) }

// Info prints an informational line.
func Info(tag, msg string) { write(LevelInfo, cyan, tag, msg) }

// Success prints an informational line highlighted as a success.
func Success(tag, msg string) { write(LevelInfo, green, tag, msg) }

// Warn prints a warning line.
func Warn(tag, msg string) { write(LevelWarn, yellow, tag, msg) }

// Error prints an error line.
func Error(tag, msg string) { write(LevelError, red, tag, msg) }

// Banner prints the startup banner.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, paint(bold, "  EVE Price Bot ")+paint(dim, version))
	fmt.Fprintln(out, paint(dim, "  market prices vs Jita, straight from ESI"))
	fmt.Fprintln(out)
}

// Section prints a section heading.
func Section(title string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "\n%s\n", paint(bold, "== "+title+" =="))
}

// Stats prints a key/value line.
func Stats(key string, value interface{}) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "  %-18s %v\n", key+":", value)
}

// Server prints the listen address.
func Server(addr string) {
	Success("Server", fmt.Sprintf("Listening on http://%s", addr))
}
