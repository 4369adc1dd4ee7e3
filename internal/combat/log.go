package combat

import "fmt"

// DefaultLogCapacity is the number of lines a Log keeps.
const DefaultLogCapacity = 1000

// Log is the bounded, append-only battle log. Oldest lines are evicted first.
type Log struct {
	lines    []string
	capacity int
}

// NewLog creates a log holding at most capacity lines.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &Log{capacity: capacity}
}

// Add appends a message, dropping any excess from the front in one step.
func (l *Log) Add(msg string) {
	l.lines = append(l.lines, msg)
	if len(l.lines) > l.capacity {
		l.lines = l.lines[len(l.lines)-l.capacity:]
	}
}

// Addf formats and appends a message.
func (l *Log) Addf(format string, args ...any) {
	l.Add(fmt.Sprintf(format, args...))
}

// Len returns the number of retained lines.
func (l *Log) Len() int {
	return len(l.lines)
}

// Lines returns a copy of the log, oldest first.
func (l *Log) Lines() []string {
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Tail returns a copy of the newest n lines.
func (l *Log) Tail(n int) []string {
	if n <= 0 {
		return nil
	}
	start := max(len(l.lines)-n, 0)
	out := make([]string, len(l.lines)-start)
	copy(out, l.lines[start:])
	return out
}
