package observability

import (
	"fmt"
	"runtime/debug"
)

// RecoverPanic recovers a panic and logs it with the panic value, stack
// trace, and the operation that was running. Meant for defer in background
// work (webhook delivery, report persistence) where a panic must not take
// down the lint path.
//
//	defer observability.RecoverPanic(logger, "webhook delivery")
func RecoverPanic(logger *Logger, operation string) {
	if r := recover(); r != nil {
		logger.WithField("panic", r).
			WithField("stack", string(debug.Stack())).
			WithField("operation", operation).
			Error("PANIC recovered")
	}
}

// RecoverPanicWithCallback is RecoverPanic plus a cleanup callback that runs
// only when a panic actually occurred. Use it to close channels or release
// state that waiting goroutines depend on.
func RecoverPanicWithCallback(logger *Logger, operation string, callback func()) {
	if r := recover(); r != nil {
		logger.WithField("panic", r).
			WithField("stack", string(debug.Stack())).
			WithField("operation", operation).
			Error("PANIC recovered")
		if callback != nil {
			callback()
		}
	}
}

// MustRecover converts a recovered panic value to an error, for APIs that
// want to surface panics from third-party code as ordinary errors. The
// stack trace is not included; use RecoverPanic where it matters.
//
//	defer func() {
//	    err = observability.MustRecover(recover())
//	}()
func MustRecover(r interface{}) error {
	if r != nil {
		return fmt.Errorf("panic: %v", r)
	}
	return nil
}
