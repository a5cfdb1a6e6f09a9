package observe

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// envLevelVars lists the environment variables LevelFromEnv checks, in
// precedence order. FBP_LOG_LEVEL lets an embedding application scope a log
// level override to this module specifically; LOG_LEVEL is the generic
// fallback a process-wide convention typically sets.
var envLevelVars = [...]string{"FBP_LOG_LEVEL", "LOG_LEVEL"}

// LevelFromEnv returns the log level configured via environment variables,
// checking each of envLevelVars in order. Default: INFO.
func LevelFromEnv() slog.Level {
	for _, name := range envLevelVars {
		if raw := os.Getenv(name); raw != "" {
			return ParseLevel(raw)
		}
	}
	return slog.LevelInfo
}

// ParseLevel parses a log level string into a slog.Level, delegating to
// slog.Level's own text unmarshaling (case-insensitive DEBUG/INFO/WARN/ERROR,
// plus an offset suffix such as "INFO+4"). "WARNING" is accepted as an alias
// for slog's "WARN". Unknown values print a warning to stderr and fall back
// to INFO.
func ParseLevel(raw string) slog.Level {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "WARNING" {
		s = "WARN"
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		fmt.Fprintf(os.Stderr, "observe: unknown log level %q, using INFO\n", raw)
		return slog.LevelInfo
	}
	return level
}

// DefaultLogger builds a *slog.Logger writing to stderr at the level
// reported by [LevelFromEnv].
func DefaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: LevelFromEnv()}))
}
