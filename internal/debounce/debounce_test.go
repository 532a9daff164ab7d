package debounce

import (
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu     sync.Mutex
	values []string
	calls  chan struct{}
}

func newRecorder() *recorder {
	return &recorder{calls: make(chan struct{}, 16)}
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
	r.calls <- struct{}{}
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.calls:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for delivery")
	}
}

func TestDebouncer_DeliversLatestAfterQuietPeriod(t *testing.T) {
	rec := newRecorder()
	d := New(20*time.Millisecond, rec.record)

	d.Trigger("0")
	d.Trigger("0.1")
	d.Trigger("0.15")
	rec.wait(t)

	time.Sleep(40 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 1 || got[0] != "0.15" {
		t.Fatalf("expected only the last value, got %v", got)
	}
}

func TestDebouncer_Flush(t *testing.T) {
	rec := newRecorder()
	d := New(time.Hour, rec.record)

	if d.Flush() {
		t.Fatalf("expected nothing to flush")
	}
	d.Trigger("0.2")
	if !d.Flush() {
		t.Fatalf("expected pending value to flush")
	}
	rec.wait(t)
	if d.Flush() {
		t.Fatalf("expected flush to clear the pending value")
	}
	if got := rec.snapshot(); len(got) != 1 || got[0] != "0.2" {
		t.Fatalf("unexpected deliveries %v", got)
	}
}

func TestDebouncer_StopDiscards(t *testing.T) {
	rec := newRecorder()
	d := New(10*time.Millisecond, rec.record)

	d.Trigger("0.2")
	d.Stop()
	d.Trigger("0.3")

	time.Sleep(40 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("expected no deliveries after stop, got %v", got)
	}
	if d.Flush() {
		t.Fatalf("expected nothing pending after stop")
	}
}

func TestDebouncer_ZeroDelayIsSynchronous(t *testing.T) {
	rec := newRecorder()
	d := New(0, rec.record)

	d.Trigger("a")
	d.Trigger("b")
	if got := rec.snapshot(); len(got) != 2 || got[1] != "b" {
		t.Fatalf("expected synchronous deliveries, got %v", got)
	}
}

func TestDebouncer_StopAndFlushWaitForRunningDelivery(t *testing.T) {
	for name, finish := range map[string]func(*Debouncer[string]){
		"stop":  func(d *Debouncer[string]) { d.Stop() },
		"flush": func(d *Debouncer[string]) { d.Flush() },
	} {
		t.Run(name, func(t *testing.T) {
			started := make(chan struct{})
			release := make(chan struct{})
			var mu sync.Mutex
			done := false
			d := New(time.Millisecond, func(string) {
				close(started)
				<-release
				mu.Lock()
				done = true
				mu.Unlock()
			})

			d.Trigger("0.15")
			select {
			case <-started:
			case <-time.After(2 * time.Second):
				t.Fatalf("timed out waiting for delivery to start")
			}

			returned := make(chan struct{})
			go func() {
				finish(d)
				close(returned)
			}()

			select {
			case <-returned:
				t.Fatalf("returned while a delivery was still running")
			case <-time.After(30 * time.Millisecond):
			}

			close(release)
			select {
			case <-returned:
			case <-time.After(2 * time.Second):
				t.Fatalf("timed out waiting for return")
			}
			mu.Lock()
			defer mu.Unlock()
			if !done {
				t.Fatalf("expected delivery to finish before return")
			}
		})
	}
}
