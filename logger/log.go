package logger

import "fmt"

// logEntry is one formatted log line waiting to be dispatched to every
// writer the owning Backend holds, at the level it was logged at.
type logEntry struct {
	level Level
	log   []byte
}

// Logger is a per-subsystem handle onto a Backend, tagged with its
// subsystem name. In this module txbuilder (via SetLogger), kasparest (via
// NewClient), and cmd/kaspatxctl take one; sighash and krc20 do not log.
type Logger struct {
	level        Level
	subsystemTag string
	backend      *Backend
	writeChan    chan logEntry
}

// SetLevel sets the minimum level this Logger will forward to its Backend.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

// Level returns the Logger's current minimum level.
func (l *Logger) Level() Level {
	return l.level
}

func (l *Logger) write(level Level, s string) {
	if level < l.level {
		return
	}
	line := fmt.Sprintf("[%s] %s: %s\n", level, l.subsystemTag, s)
	// A send on the channel Close has closed panics; recover drops the line.
	defer func() { _ = recover() }()
	select {
	case l.writeChan <- logEntry{level: level, log: []byte(line)}:
	default:
		// The backend isn't running (Run was never called, or Close was
		// called already) — drop the line rather than block the signing
		// path on a full or closed channel.
	}
}

func (l *Logger) Tracef(format string, args ...interface{})    { l.write(LevelTrace, fmt.Sprintf(format, args...)) }
func (l *Logger) Debugf(format string, args ...interface{})    { l.write(LevelDebug, fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...interface{})     { l.write(LevelInfo, fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...interface{})     { l.write(LevelWarn, fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...interface{})    { l.write(LevelError, fmt.Sprintf(format, args...)) }
func (l *Logger) Criticalf(format string, args ...interface{}) { l.write(LevelCritical, fmt.Sprintf(format, args...)) }
