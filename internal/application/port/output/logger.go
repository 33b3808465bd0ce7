package output

type LoggerPort interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	WithField(key string, value any) LoggerPort
	WithFields(fields map[string]any) LoggerPort

	Close() error
}

// Discard drops every record.
var Discard LoggerPort = discard{}

type discard struct{}

func (discard) Debug(string, ...any)                   {}
func (discard) Info(string, ...any)                    {}
func (discard) Warn(string, ...any)                    {}
func (discard) Error(string, ...any)                   {}
func (d discard) WithField(string, any) LoggerPort     { return d }
func (d discard) WithFields(map[string]any) LoggerPort { return d }
func (discard) Close() error                           { return nil }
