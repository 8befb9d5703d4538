// Package telemetry is the ambient structured-logging seam every core
// package constructs against. It thinly wraps
// github.com/datatrails/go-datatrails-common/logger, taking a logger.Logger
// constructor parameter the same way other storage and protocol
// constructors in this module do.
package telemetry

import "github.com/datatrails/go-datatrails-common/logger"

// Init configures the package-level logger for a named service. Call once
// at process start; every constructor in this module that isn't given an
// explicit logger.Logger falls back to logger.Sugar.WithServiceName.
func Init(serviceName string) {
	logger.New(serviceName)
}

// Close flushes and releases the process-wide logger. Callers should defer
// this immediately after Init.
func Close() {
	logger.OnExit()
}

// Named returns a logger.Logger scoped to component, falling back to the
// package-level logger.Sugar singleton when no explicit logger is supplied
// by the caller.
func Named(component string) logger.Logger {
	return logger.Sugar.WithServiceName(component)
}

// OrNamed returns log unchanged when non-nil, otherwise a logger scoped to
// component. Every constructor in this module that takes a logger.Logger
// uses this so a nil logger never has to be special-cased by the caller.
func OrNamed(log logger.Logger, component string) logger.Logger {
	if log != nil {
		return log
	}
	return Named(component)
}
