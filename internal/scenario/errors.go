package scenario

import (
	"errors"
	"fmt"

	"github.com/logist-pro/lgp-api-examples/client"
)

// Step names one stage of the workflow.
type Step string

const (
	StepProbe        Step = "probe"
	StepLogin        Step = "login"
	StepDictionaries Step = "dictionaries"
	StepPayload      Step = "payload"
	StepSubmit       Step = "submit"
	StepStatus       Step = "status"
)

// StepError reports which step aborted the run.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("%s step failed: %v", e.Step, e.Err) }

func (e *StepError) Unwrap() error { return e.Err }

// ExitCode maps a run error to the process exit status: one code per step,
// with a missing session cookie told apart from a rejected login.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var se *StepError
	if !errors.As(err, &se) {
		return 1
	}
	switch se.Step {
	case StepProbe:
		return 1
	case StepLogin:
		if errors.Is(err, client.ErrMissingCookie) {
			return 3
		}
		return 2
	case StepDictionaries:
		return 4
	case StepPayload:
		return 5
	case StepSubmit:
		return 6
	case StepStatus:
		return 7
	default:
		return 1
	}
}
