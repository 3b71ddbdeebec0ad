package messagefx

import "go.uber.org/zap"

// ZapWarner sends the not-started warning to a zap logger.
// A nil Logger uses zap.L().
type ZapWarner struct {
	Logger *zap.Logger
}

// Warn logs msg at WARN level.
func (w ZapWarner) Warn(msg string) {
	logger := w.Logger
	if logger == nil {
		logger = zap.L()
	}
	logger.Warn(msg, zap.String("component", "message"))
}
