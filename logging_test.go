package particlefx

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger("fx", false, &buf)

	l.Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("shown %d", 2)
	l.Infof("info")
	l.Warnf("warn")
	l.Errorf("boom: %v", "x")

	out := buf.String()
	assert.Contains(t, out, "[fx] DEBUG: shown 2")
	assert.Contains(t, out, "[fx] INFO: info")
	assert.Contains(t, out, "[fx] WARN: warn")
	assert.Contains(t, out, "[fx] ERROR: boom: x")
}

func TestWriterLoggerNoPrefix(t *testing.T) {
	var buf bytes.Buffer
	NewWriterLogger("", false, &buf).Warnf("plain")
	assert.Contains(t, buf.String(), "WARN: plain")
	assert.NotContains(t, buf.String(), "[")
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.SetDebug(true)
	assert.False(t, l.DebugEnabled())
	l.Errorf("nothing")
}

// recordingLogger keeps every line for assertions.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordingLogger) add(level, format string, args ...any) {
	r.mu.Lock()
	r.lines = append(r.lines, level+": "+fmt.Sprintf(format, args...))
	r.mu.Unlock()
}

func (r *recordingLogger) DebugEnabled() bool                { return true }
func (r *recordingLogger) SetDebug(bool)                     {}
func (r *recordingLogger) Debugf(format string, args ...any) { r.add("DEBUG", format, args...) }
func (r *recordingLogger) Infof(format string, args ...any)  { r.add("INFO", format, args...) }
func (r *recordingLogger) Warnf(format string, args ...any)  { r.add("WARN", format, args...) }
func (r *recordingLogger) Errorf(format string, args ...any) { r.add("ERROR", format, args...) }

func (r *recordingLogger) count(level string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, l := range r.lines {
		if len(l) > len(level) && l[:len(level)+1] == level+":" {
			n++
		}
	}
	return n
}
