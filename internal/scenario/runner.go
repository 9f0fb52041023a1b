// Package scenario runs the end-to-end marketplace workflow: probe, login,
// dictionaries, submit a tender and read back its status. Every step is a
// hard precondition for the next, so the first failure aborts the run.
package scenario

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/logist-pro/lgp-api-examples/client"
)

// Result is the outcome of a successful run.
type Result struct {
	TenderID string
	Tender   *client.Tender
}

// Runner drives one workflow run with a single client.
type Runner struct {
	client      *client.Client
	creds       client.Credentials
	builder     Builder
	awaitStatus []string
}

// NewRunner creates a Runner. When awaitStatus is non-empty the status step
// polls until the tender reaches one of those statuses.
func NewRunner(c *client.Client, creds client.Credentials, b Builder, awaitStatus ...string) *Runner {
	return &Runner{client: c, creds: creds, builder: b, awaitStatus: awaitStatus}
}

// Run executes the steps in order and stops at the first failure, which is
// returned as a *StepError.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	started := time.Now()

	if err := r.client.Probe(ctx); err != nil {
		return nil, &StepError{Step: StepProbe, Err: err}
	}
	log.Debug().Msg("api reachable")

	if _, err := r.client.Login(ctx, r.creds); err != nil {
		return nil, &StepError{Step: StepLogin, Err: err}
	}
	log.Debug().Str("login", r.creds.Login).Msg("logged in")

	dicts, err := r.client.FetchDictionaries(ctx)
	if err != nil {
		return nil, &StepError{Step: StepDictionaries, Err: err}
	}

	tenderID, err := r.builder.Submit(ctx, r.client, dicts)
	if err != nil {
		var se *StepError
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, &StepError{Step: StepSubmit, Err: err}
	}
	log.Debug().Str("builder", r.builder.Name()).Str("tender_id", tenderID).Msg("tender submitted")

	tender, err := r.client.AwaitTenderStatus(ctx, tenderID, r.awaitStatus...)
	if err != nil {
		return nil, &StepError{Step: StepStatus, Err: err}
	}

	log.Info().
		Str("tender_id", tenderID).
		Str("status", tender.Status).
		Dur("elapsed", time.Since(started)).
		Msg("scenario completed")
	return &Result{TenderID: tenderID, Tender: tender}, nil
}
