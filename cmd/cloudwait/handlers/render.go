package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/imamik/cloudwait/internal/poll"
)

// ErrNotConverged is returned when at least one operation timed out or
// failed.
var ErrNotConverged = errors.New("not all operations converged")

// result is one rendered operation outcome.
type result struct {
	Operation     string        `json:"operation"`
	Target        string        `json:"target"`
	Outcome       string        `json:"outcome"`
	CorrelationID string        `json:"correlationId,omitempty"`
	Attempts      int           `json:"attempts"`
	Elapsed       time.Duration `json:"-"`
	ElapsedText   string        `json:"elapsed"`
	Detail        string        `json:"detail,omitempty"`
	Error         string        `json:"error,omitempty"`
	ok            bool
}

// newResult converts an outcome. detail describes the last observed state.
func newResult[S any](operation, target string, out poll.Outcome[S], detail func(S) string) result {
	r := result{
		Operation:     operation,
		Target:        target,
		Outcome:       out.Kind.String(),
		CorrelationID: out.CorrelationID,
		Attempts:      out.Attempts,
		Elapsed:       out.Elapsed,
		ElapsedText:   out.Elapsed.String(),
		ok:            out.OK(),
	}
	if detail != nil && out.Attempts > 0 {
		r.Detail = detail(out.Last)
	}
	if err := out.AsError(); err != nil {
		r.Error = err.Error()
	}
	return r
}

// Colors matching the terminal palette used across the CLI.
var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorAmber = lipgloss.Color("#f59e0b")
	colorDim   = lipgloss.Color("#6b7280")
)

var (
	okStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorGreen)

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRed)

	timeoutStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAmber)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// render writes results as JSON, as styled rows on a terminal or as plain
// rows otherwise.
func render(w io.Writer, results []result, jsonOutput, styled bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		return nil
	}

	var b strings.Builder
	for _, r := range results {
		b.WriteString(renderRow(r, styled))
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func renderRow(r result, styled bool) string {
	status := strings.ToUpper(r.Outcome)
	meta := fmt.Sprintf("attempts=%d elapsed=%s", r.Attempts, r.ElapsedText)
	if r.CorrelationID != "" {
		meta += " id=" + r.CorrelationID
	}
	if r.Detail != "" {
		meta += " state=" + r.Detail
	}

	if styled {
		switch {
		case r.ok:
			status = okStyle.Render(status)
		case r.Outcome == poll.TimedOut.String():
			status = timeoutStyle.Render(status)
		default:
			status = failStyle.Render(status)
		}
		meta = dimStyle.Render(meta)
	}

	row := fmt.Sprintf("%-10s %-16s %s  %s", status, r.Operation, r.Target, meta)
	if r.Error != "" {
		row += "\n  " + r.Error
	}
	return row
}

// summarize returns ErrNotConverged with a count when any result failed.
// A non-nil cause is wrapped as well, so callers can match the underlying
// provider or timeout errors.
func summarize(results []result, cause error) error {
	failed := 0
	for _, r := range results {
		if !r.ok {
			failed++
		}
	}
	if failed == 0 {
		return nil
	}
	if cause == nil {
		return fmt.Errorf("%w: %d of %d", ErrNotConverged, failed, len(results))
	}
	return fmt.Errorf("%w: %d of %d: %w", ErrNotConverged, failed, len(results), cause)
}
