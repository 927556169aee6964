package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	enabled   bool
	enabledMu sync.RWMutex
	noColor   bool
	noColorMu sync.RWMutex
	out       io.Writer = os.Stderr
	outMu     sync.RWMutex
)

var (
	tagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))
	timeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	keyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")).Bold(true)
)

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	enabledMu.Lock()
	defer enabledMu.Unlock()
	enabled = enable
}

// IsEnabled returns whether debug mode is enabled
func IsEnabled() bool {
	enabledMu.RLock()
	defer enabledMu.RUnlock()
	return enabled
}

// SetNoColor enables or disables colored output
func SetNoColor(disable bool) {
	noColorMu.Lock()
	defer noColorMu.Unlock()
	noColor = disable
}

// SetOutput redirects debug output. Passing nil restores stderr.
func SetOutput(w io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

func writer() io.Writer {
	outMu.RLock()
	defer outMu.RUnlock()
	return out
}

func useColor() bool {
	noColorMu.RLock()
	defer noColorMu.RUnlock()
	return !noColor
}

// prefix renders "[DEBUG] 15:04:05.000".
func prefix() string {
	timestamp := time.Now().Format("15:04:05.000")
	if useColor() {
		return tagStyle.Render("[DEBUG]") + " " + timeStyle.Render(timestamp)
	}
	return "[DEBUG] " + timestamp
}

// Debug prints a debug message with timestamp
func Debug(format string, args ...interface{}) {
	if !IsEnabled() {
		return
	}
	fmt.Fprintf(writer(), "%s %s\n", prefix(), fmt.Sprintf(format, args...))
}

// DebugSection prints a section header for debug output
func DebugSection(section string) {
	if !IsEnabled() {
		return
	}

	header := fmt.Sprintf("=== %s ===", section)
	if useColor() {
		header = keyStyle.Render(header)
	}
	fmt.Fprintf(writer(), "%s %s\n", prefix(), header)
}

// DebugValue prints key=value style debug info
func DebugValue(key string, value interface{}) {
	if !IsEnabled() {
		return
	}

	if useColor() {
		key = keyStyle.Render(key)
	}
	fmt.Fprintf(writer(), "%s %s = %v\n", prefix(), key, value)
}

// DebugJSON prints structured data as JSON for debugging
func DebugJSON(key string, v interface{}) {
	if !IsEnabled() {
		return
	}

	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		Debug("Failed to marshal %s to JSON: %v", key, err)
		return
	}

	if useColor() {
		key = keyStyle.Render(key)
	}
	fmt.Fprintf(writer(), "%s %s:\n%s\n", prefix(), key, string(jsonBytes))
}
