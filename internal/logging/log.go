package logging

import "github.com/rs/zerolog"

// Logger returns the active logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Debugf(format string, args ...any) {
	l := Logger()
	l.Debug().Msgf(format, args...)
}

func Infof(format string, args ...any) {
	l := Logger()
	l.Info().Msgf(format, args...)
}

func Warnf(format string, args ...any) {
	l := Logger()
	l.Warn().Msgf(format, args...)
}

func Errf(format string, args ...any) {
	l := Logger()
	l.Error().Msgf(format, args...)
}

// Logf writes a line without a level; it is dropped only when logging is
// disabled.
func Logf(format string, args ...any) {
	l := Logger()
	if l.GetLevel() == zerolog.Disabled {
		return
	}
	l.Log().Msgf(format, args...)
}
