package clienterr

import "go.uber.org/zap"

// Hook receives errors surfaced by an observed operation, after logging.
// Intended for UI display callbacks.
type Hook func(error)

// Observe runs fn and, on failure, logs the error and invokes hook before
// returning the error unchanged. The public service methods wrap their
// bodies in it so logging and UI reporting stay a single cross-cutting
// concern instead of ad hoc per call site.
func Observe(log *zap.Logger, op string, hook Hook, fn func() error) error {
	err := fn()
	if err != nil {
		LogError(log, op, err)
		if hook != nil {
			hook(err)
		}
	}
	return err
}

// LogError writes the operator-facing summary at error level and the full
// diagnostic report at debug level.
func LogError(log *zap.Logger, op string, err error) {
	report := Classify(err)
	log.Error(op+" failed",
		zap.String("summary", report.Summary),
		zap.String("category", string(report.Category)),
		zap.Error(err),
	)
	log.Debug("error report",
		zap.String("op", op),
		zap.Any("details", report.Details),
		zap.Strings("suggestions", report.Suggestions),
	)
}
