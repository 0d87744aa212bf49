// Package log wraps logrus for the handful of structured log calls the
// analyzer driver makes at pass boundaries.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Fields aliases logrus.Fields.
type Fields = logrus.Fields

// Entry aliases logrus.Entry.
type Entry = logrus.Entry

var global = logrus.New()

// Global returns the package-level logrus instance.
func Global() *logrus.Logger { return global }

// SetLevel parses and applies a logrus level name ("debug", "info", ...).
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	global.SetLevel(lvl)
	return nil
}

// SetOutput redirects where log lines are written.
func SetOutput(w io.Writer) { global.SetOutput(w) }

// WithFields starts a structured log entry carrying fields.
func WithFields(fields Fields) *Entry { return global.WithFields(fields) }

func Debugf(format string, args ...any) { global.Debugf(format, args...) }
func Infof(format string, args ...any)  { global.Infof(format, args...) }
func Errorf(format string, args ...any) { global.Errorf(format, args...) }
