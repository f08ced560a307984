package observability

import "runtime/debug"

// RecoverPanic recovers from a panic and logs it with its stack. It must be called
// directly in a defer statement. The panic is not re-raised.
//
//	func evaluate() {
//	    defer observability.RecoverPanic(logger, "rule documentation_comments")
//	    ...
//	}
func RecoverPanic(logger *Logger, where string) {
	if r := recover(); r != nil {
		if logger == nil {
			logger = Discard()
		}
		logger.WithField("panic", r).
			WithField("stack", string(debug.Stack())).
			WithField("context", where).
			Error("panic recovered")
	}
}
