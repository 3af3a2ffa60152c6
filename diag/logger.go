package diag

import "github.com/sirupsen/logrus"

// Logger replays a Buffer's entries to a structured logrus sink: a
// *logrus.Entry pre-tagged with a "system" field, one
// WithFields(...).Info/.Warn/.Error call per diagnostic.
type Logger struct {
	log *logrus.Entry
}

// NewLogger wraps l with a "system": "verifier" field.
func NewLogger(l *logrus.Logger) *Logger {
	return &Logger{log: l.WithField("system", "verifier")}
}

const diagnosticLogMessage = "verification diagnostic"

// Log emits every entry in b to the wrapped logger at a level matching
// its Severity.
func (lg *Logger) Log(messageName string, b *Buffer) {
	if lg == nil {
		return
	}
	for _, d := range b.Entries() {
		fields := logrus.Fields{
			"message":   messageName,
			"subsystem": d.Subsystem,
			"location":  d.Location.String(),
		}
		if d.Err != nil {
			fields["err"] = d.Err
		}
		entry := lg.log.WithFields(fields)
		switch d.Severity {
		case Error:
			entry.Error(d.Message)
		case Warning:
			entry.Warn(d.Message)
		default:
			entry.Info(diagnosticLogMessage + ": " + d.Message)
		}
	}
}
