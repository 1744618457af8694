// internal/writers/registry.go
package writers

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"syscall"

	"rapsim/pkg/api"
)

// Outcome writer registry (format → handler). Writer files register
// themselves from init().
var outcomeWriters = map[string]func(w io.Writer, rows []api.StageOutcomeV1) error{}

// RegisterOutcome adds a format handler (idempotent, last wins).
func RegisterOutcome(format string, fn func(io.Writer, []api.StageOutcomeV1) error) {
	outcomeWriters[format] = fn
}

// WriteOutcomes dispatches rows to the handler for format.
func WriteOutcomes(format string, w io.Writer, rows []api.StageOutcomeV1) error {
	fn, ok := outcomeWriters[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (expected one of: %s)", format, strings.Join(Formats(), ", "))
	}
	return fn(w, rows)
}

// Formats lists the registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(outcomeWriters))
	for k := range outcomeWriters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Useful when downstream consumers (like `head`) close early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
