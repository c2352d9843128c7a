package loadsim

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

type recorder struct {
	events []string
	failAt string
	onStep func(step int)
}

func (r *recorder) record(event string) error {
	r.events = append(r.events, event)
	if event == r.failAt {
		return errors.New("write failed")
	}
	return nil
}

func (r *recorder) Started(context.Context) error { return r.record("started") }

func (r *recorder) Step(_ context.Context, step int) error {
	if r.onStep != nil {
		r.onStep(step)
	}
	return r.record(fmt.Sprintf("step %d", step))
}

func (r *recorder) Finished(context.Context) error { return r.record("finished") }

func noSleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

func TestRunReportsThreeStepsBeforeFinished(t *testing.T) {
	rec := &recorder{}
	var delays []time.Duration
	seq := Sequence{
		Delay: 2 * time.Second,
		Sleep: func(ctx context.Context, d time.Duration) error {
			delays = append(delays, d)
			return nil
		},
	}

	if err := seq.Run(context.Background(), rec); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "started,step 1,step 2,step 3,finished"
	if got := strings.Join(rec.events, ","); got != want {
		t.Fatalf("events = %q, want %q", got, want)
	}
	if len(delays) != DefaultSteps {
		t.Fatalf("expected %d delays, got %d", DefaultSteps, len(delays))
	}
	for _, d := range delays {
		if d != 2*time.Second {
			t.Fatalf("delay = %v, want 2s", d)
		}
	}
}

func TestRunHonorsConfiguredSteps(t *testing.T) {
	rec := &recorder{}
	if err := (Sequence{Steps: 5, Sleep: noSleep}).Run(context.Background(), rec); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(rec.events) != 7 {
		t.Fatalf("events = %v", rec.events)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec := &recorder{onStep: func(step int) {
		if step == 2 {
			cancel()
		}
	}}

	err := (Sequence{Sleep: noSleep}).Run(ctx, rec)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want %v", err, context.Canceled)
	}
	for _, event := range rec.events {
		if event == "finished" || event == "step 3" {
			t.Fatalf("unexpected event after cancel: %v", rec.events)
		}
	}
}

func TestRunStopsOnReporterError(t *testing.T) {
	rec := &recorder{failAt: "step 1"}
	if err := (Sequence{Sleep: noSleep}).Run(context.Background(), rec); err == nil {
		t.Fatal("expected reporter error")
	}
	if got := strings.Join(rec.events, ","); got != "started,step 1" {
		t.Fatalf("events = %q", got)
	}
}

func TestRunRequiresReporter(t *testing.T) {
	if err := (Sequence{}).Run(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil reporter")
	}
}

func TestTimerSleepCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := timerSleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want %v", err, context.Canceled)
	}
	if err := timerSleep(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("sleep: %v", err)
	}
}
