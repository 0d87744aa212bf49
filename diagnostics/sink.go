// Package diagnostics implements the message sink the analyzer reports
// against: notices, warnings, and errors bound to an
// optional source region, accumulated in insertion order and rendered
// in bulk.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/ralakus/modlang/source"
)

// Severity classifies a Message.
type Severity int

const (
	Notice Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Notice:
		return "notice"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Message is a single diagnostic: an optional region, a severity, and
// text.
type Message struct {
	Region   *source.Region
	Severity Severity
	Text     string
}

func (m *Message) Error() string {
	if m.Region == nil {
		return fmt.Sprintf("%s: %s", m.Severity, m.Text)
	}
	return fmt.Sprintf("%s: %s: %s", m.Region, m.Severity, m.Text)
}

// Messages is a collected run of diagnostics, modeled on ast.Errors.
type Messages []*Message

func (m Messages) Error() string {
	if len(m) == 0 {
		return "no diagnostics"
	}
	if len(m) == 1 {
		return m[0].Error()
	}
	lines := make([]string, len(m))
	for i, msg := range m {
		lines[i] = msg.Error()
	}
	return fmt.Sprintf("%d diagnostics occurred:\n%s", len(m), strings.Join(lines, "\n"))
}

// HasErrors reports whether any collected message is Error severity.
func (m Messages) HasErrors() bool {
	for _, msg := range m {
		if msg.Severity == Error {
			return true
		}
	}
	return false
}

// Sink is the diagnostic collector for a single analyzer run; each
// Analyzer holds its own Sink rather than sharing a package global. Its lifecycle is init before analysis, drain/print after;
// concurrent access is not supported.
type Sink struct {
	messages Messages
}

// Init returns a freshly initialized Sink, ready to collect messages
// for one analyzer run.
func Init() *Sink {
	return &Sink{}
}

func (s *Sink) emit(region *source.Region, severity Severity, text string) {
	s.messages = append(s.messages, &Message{Region: region, Severity: severity, Text: text})
}

// Noticef records a Notice-severity message.
func (s *Sink) Noticef(region source.Region, format string, args ...any) {
	s.emit(&region, Notice, fmt.Sprintf(format, args...))
}

// Warningf records a Warning-severity message.
func (s *Sink) Warningf(region source.Region, format string, args ...any) {
	s.emit(&region, Warning, fmt.Sprintf(format, args...))
}

// Errorf records an Error-severity message.
func (s *Sink) Errorf(region source.Region, format string, args ...any) {
	s.emit(&region, Error, fmt.Sprintf(format, args...))
}

// Drain returns every message collected so far and resets the sink,
// ending the current run's lifecycle.
func (s *Sink) Drain() Messages {
	msgs := s.messages
	s.messages = nil
	return msgs
}

// Messages returns the messages collected so far without resetting the
// sink.
func (s *Sink) Messages() Messages {
	return s.messages
}
