// Package loadsim runs the simulated long load sequence of the categories
// view: a start notice, a fixed number of progress steps separated by a
// delay, and a completion signal.
package loadsim

import (
	"context"
	"errors"
	"time"
)

const (
	// DefaultSteps is the number of progress steps.
	DefaultSteps = 3
	// DefaultDelay is the pause after each step.
	DefaultDelay = 2 * time.Second

	// StartedMessage is shown when the sequence begins.
	StartedMessage = "Starting very very long operation"
	// StepFormat is the step label; the argument is the 1-based step number.
	StepFormat = "Loading %d category ..."
	// FinishedMessage is shown when the sequence completes.
	FinishedMessage = "Finished!"
)

// Reporter receives progress from a running sequence. Calls happen on the
// goroutine running the sequence, in order.
type Reporter interface {
	Started(ctx context.Context) error
	Step(ctx context.Context, step int) error
	Finished(ctx context.Context) error
}

// Sequence configures one run.
type Sequence struct {
	Steps int
	Delay time.Duration
	// Sleep waits for d or until ctx is done. Nil uses a timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Run reports Started, then Steps calls to Step each followed by Delay, then
// Finished. A cancelled ctx stops the sequence and returns ctx.Err() without
// reporting Finished.
func (s Sequence) Run(ctx context.Context, reporter Reporter) error {
	if reporter == nil {
		return errors.New("load reporter is required")
	}
	steps := s.Steps
	if steps <= 0 {
		steps = DefaultSteps
	}
	delay := s.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	sleep := s.Sleep
	if sleep == nil {
		sleep = timerSleep
	}

	if err := reporter.Started(ctx); err != nil {
		return err
	}
	for step := 1; step <= steps; step++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := reporter.Step(ctx, step); err != nil {
			return err
		}
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return reporter.Finished(ctx)
}

func timerSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
