package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/promptlens/promptlens/internal/reporting"
)

// Exit codes for different failure modes
const (
	ExitSuccess      = 0 // Report produced and every threshold met
	ExitBelowMinimum = 1 // Report produced but a threshold was missed
	ExitError        = 2 // Configuration or runtime error
)

// ThresholdError indicates that an evaluation ran successfully but the
// report missed one or more configured thresholds.
type ThresholdError struct {
	Failures []reporting.GateFailure
}

func (e *ThresholdError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.String()
	}
	return "thresholds not met: " + strings.Join(msgs, "; ")
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var thresholdErr *ThresholdError
	if errors.As(err, &thresholdErr) {
		return ExitBelowMinimum
	}
	return ExitError
}
