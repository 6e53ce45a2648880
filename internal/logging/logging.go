// Package logging installs the process-wide slog handler every command
// and the driver log through.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/vlaran/mitonet/structure"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Configure installs a process-wide slog default logger writing
// text-formatted records to stderr.
//
// Supported levels: debug, info, warn, error.
func Configure(level string) error {
	parsed, err := parseLevel(level)
	if err != nil {
		return err
	}

	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parsed})
	slog.SetDefault(slog.New(h))

	return nil
}

// LogContractViolation logs a fatal structural-invariant failure raised by
// the structure package, attaching the network state it occurred in
// (segment and cluster counts) so the offending run can be correlated with
// a snapshot. Driver.Run calls this from its panic-recovery path; it never
// returns control to the rewrite that raised cv.
func LogContractViolation(cv *structure.ContractViolation, segments, clusters int) {
	slog.Error("contract violation", "op", cv.Op, "msg", cv.Msg, "segments", segments, "clusters", clusters)
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", LevelInfo:
		return slog.LevelInfo, nil
	case LevelDebug:
		return slog.LevelDebug, nil
	case LevelWarn:
		return slog.LevelWarn, nil
	case LevelError:
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q", level)
	}
}
