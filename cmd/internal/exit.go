package internal

import (
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// Stderr receives Echo and Fatal output.
	Stderr io.Writer = os.Stderr
	// Stdout receives Print output.
	Stdout io.Writer = os.Stdout
)

// Fatal will Echo the message and os.Exit with code 1.
func Fatal(msg string, args ...any) {
	Echo(msg, args...)
	os.Exit(1)
}

// Echo will emit the given message to Stderr without any logging formatting.
func Echo(msg string, args ...any) {
	_, _ = fmt.Fprintf(Stderr, withNewline(msg), args...)
}

// Print emits a command result to Stdout, so it can be piped separately from diagnostics.
func Print(msg string, args ...any) {
	_, _ = fmt.Fprintf(Stdout, withNewline(msg), args...)
}

func withNewline(msg string) string {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	return msg
}
