/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package drill runs a full provision-then-teardown exercise over a fleet of
// stacks: create each stack in deployment order, then delete every one of
// them again regardless of how the creates went. It is the tool's answer to
// "do these templates actually deploy, and do they clean up after
// themselves?".
package drill

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/stackdrill/stackdrill/internal/lifecycle"
	"github.com/stackdrill/stackdrill/internal/model"
)

// Options controls a drill run
type Options struct {
	// Keep skips the teardown phase, leaving created stacks in place
	Keep bool
}

// StackResult records how one stack fared in one phase
type StackResult struct {
	StackName string
	Outcome   lifecycle.Outcome
	Err       error
}

// Report collects per-stack results for both phases of a run
type Report struct {
	Creates []StackResult
	Deletes []StackResult
}

// Failed reports whether any operation in either phase errored
func (r *Report) Failed() bool {
	for _, result := range r.Creates {
		if result.Err != nil {
			return true
		}
	}
	for _, result := range r.Deletes {
		if result.Err != nil {
			return true
		}
	}
	return false
}

// Runner defines the interface for drill execution
type Runner interface {
	Run(ctx context.Context, stacks []*model.Stack, opts Options) *Report
}

// DrillRunner implements Runner on top of a lifecycle engine
type DrillRunner struct {
	lifecycle lifecycle.Lifecycle
	out       io.Writer
}

// NewDrillRunner creates a runner writing progress to stdout
func NewDrillRunner(lc lifecycle.Lifecycle) *DrillRunner {
	return &DrillRunner{
		lifecycle: lc,
		out:       os.Stdout,
	}
}

// SetOutput redirects progress output (for testing)
func (r *DrillRunner) SetOutput(w io.Writer) {
	r.out = w
}

// Run creates every stack in order, then tears all of them down in the same
// order the creates were attempted. A failed or skipped create never stops
// the sequence, and teardown runs unconditionally unless Keep is set.
// Context cancellation is honoured between operations; stacks that can no
// longer be processed are recorded with the context's error.
func (r *DrillRunner) Run(ctx context.Context, stacks []*model.Stack, opts Options) *Report {
	report := &Report{}

	fmt.Fprintf(r.out, "Drilling %d stack(s)...\n", len(stacks))

	for _, stack := range stacks {
		if err := ctx.Err(); err != nil {
			report.Creates = append(report.Creates, StackResult{StackName: stack.Name, Err: err})
			continue
		}

		result, err := r.lifecycle.Create(ctx, stack)
		if err != nil {
			fmt.Fprintf(r.out, "Error creating stack %s: %v\n", stack.Name, err)
			report.Creates = append(report.Creates, StackResult{StackName: stack.Name, Err: err})
			continue
		}
		report.Creates = append(report.Creates, StackResult{StackName: stack.Name, Outcome: result.Outcome})
	}

	if opts.Keep {
		fmt.Fprintf(r.out, "Keeping %d stack(s) in place, skipping teardown\n", len(stacks))
		r.printSummary(report)
		return report
	}

	fmt.Fprintf(r.out, "\nTearing down %d stack(s)...\n", len(stacks))

	// Teardown walks the same order the creates were attempted, covering
	// stacks whose create failed or was skipped
	for _, stack := range stacks {
		if err := ctx.Err(); err != nil {
			report.Deletes = append(report.Deletes, StackResult{StackName: stack.Name, Err: err})
			continue
		}

		result, err := r.lifecycle.Delete(ctx, stack)
		if err != nil {
			fmt.Fprintf(r.out, "Error deleting stack %s: %v\n", stack.Name, err)
			report.Deletes = append(report.Deletes, StackResult{StackName: stack.Name, Err: err})
			continue
		}
		report.Deletes = append(report.Deletes, StackResult{StackName: stack.Name, Outcome: result.Outcome})
	}

	r.printSummary(report)
	return report
}

// printSummary writes one line per stack per phase plus a verdict
func (r *DrillRunner) printSummary(report *Report) {
	fmt.Fprintf(r.out, "\nDrill summary:\n")

	for _, result := range report.Creates {
		r.printResult("create", result)
	}
	for _, result := range report.Deletes {
		r.printResult("delete", result)
	}

	if report.Failed() {
		fmt.Fprintf(r.out, "\nDrill completed with failures\n")
	} else {
		fmt.Fprintf(r.out, "\nDrill completed successfully\n")
	}
}

func (r *DrillRunner) printResult(phase string, result StackResult) {
	if result.Err != nil {
		fmt.Fprintf(r.out, "  ✗ %s %s: %v\n", phase, result.StackName, result.Err)
		return
	}
	fmt.Fprintf(r.out, "  ✓ %s %s (%s)\n", phase, result.StackName, result.Outcome)
}
