package session

import (
	"github.com/rs/zerolog"
)

// Notifier receives the user-visible notices auth operations emit. The HTTP
// deployment logs them; a UI embedding would surface them as toasts.
type Notifier interface {
	Success(message string)
	Info(message string)
	Error(message string)
}

// LogNotifier writes notices to the log.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a Notifier backed by the given logger.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Success(message string) {
	n.logger.Info().Str("notice", "success").Msg(message)
}

func (n *LogNotifier) Info(message string) {
	n.logger.Info().Str("notice", "info").Msg(message)
}

func (n *LogNotifier) Error(message string) {
	n.logger.Warn().Str("notice", "error").Msg(message)
}
