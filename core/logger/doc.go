// Package logger provides a structured logging facility based on Zap.
//
// Every component of the catalog pipeline receives a *zap.Logger at construction. The
// debug level switches to zap's development configuration; any other level uses the
// production configuration at that level.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it to the
// log entry, so all logs of one API request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Scan started", zap.String("volume", vol.Path))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
