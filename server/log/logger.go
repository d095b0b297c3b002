// Package log provides an abstraction over log.Logger.
package log

// Logger is an interface over log.Logger so the whole server shares one log rather than the package default.
type Logger interface {
	// Printf writes the formatted string with values to the logger.
	// Arguments are handled in the manner of fmt.Printf.
	Printf(format string, v ...interface{})
}
