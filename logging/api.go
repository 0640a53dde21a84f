package logging

// logger is a global reference to a shared Logger.  It logs errors until
// Initialize is called so that library users see failures by default.
var logger = newLogger(LogLevelError)

// Initialize initializes the global logger with the named log level
func Initialize(loglevelname string) {
	logger = newLogger(LevelFromName(loglevelname))
}

// LevelFromName converts a log level name into its enumerated value
func LevelFromName(loglevelname string) int {
	switch loglevelname {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warning", "warn":
		return LogLevelWarning
	// everything else (including invalid log levels) should default to verbose
	default:
		return LogLevelVerbose
	}
}

// ShouldProceed indicates whether or not any errors have been logged
func ShouldProceed() bool {
	return ErrorCount() == 0
}

// ErrorCount returns the number of errors logged since initialization
func ErrorCount() int {
	logger.m.Lock()
	defer logger.m.Unlock()

	return logger.errorCount
}

// -----------------------------------------------------------------------------
// NOTE: All log functions will only display if the appropriate log level is
// set.  Most log functions will simply fail silently if below their appropriate
// log level.

// LogGrammarError logs an error in a grammar: a malformed line, a missing rule
// or function, or a semantics template that cannot be decoded
func LogGrammarError(kind, message string) {
	logger.handleMsg(&GrammarMessage{Kind: kind, Message: message, IsError: true})
}

// LogGrammarWarning logs a problem in a grammar that does not stop it from
// being used
func LogGrammarWarning(kind, message string) {
	logger.handleMsg(&GrammarMessage{Kind: kind, Message: message, IsError: false})
}

// LogSentenceError logs a sentence that failed to match.  index is the word
// at which matching failed and may equal len(words) when words are missing.
func LogSentenceError(words []string, index int, message string) {
	logger.handleMsg(&SentenceMessage{Words: words, Index: index, Message: message})
}

// LogConfigError logs an error related to the project configuration
func LogConfigError(kind, message string) {
	logger.handleMsg(&ConfigError{Kind: kind, Message: message})
}

// BeginPhase displays the start of a phase of work at the verbose level
func BeginPhase(phase string) {
	if logger.LogLevel == LogLevelVerbose {
		displayBeginPhase(phase)
	}
}

// EndPhase marks the current phase as finished
func EndPhase(success bool) {
	if logger.LogLevel == LogLevelVerbose {
		displayEndPhase(success)
	}
}

// Finish flushes the buffered warnings and displays the closing summary.  It
// returns whether the run was free of errors.
func Finish() bool {
	warningCount := logger.flushWarnings()
	errorCount := ErrorCount()

	if logger.LogLevel > LogLevelSilent {
		displayFinished(errorCount == 0, errorCount, warningCount)
	}

	return errorCount == 0
}

// SetLevel changes the log level of the global logger while keeping the
// messages it has already collected
func SetLevel(loglevelname string) {
	logger.m.Lock()
	defer logger.m.Unlock()

	logger.LogLevel = LevelFromName(loglevelname)
}
