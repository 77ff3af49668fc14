package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"land-regen/shared/config"
)

type fakePinger struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakePinger) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *fakePinger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testConfig(schedule string) *config.Config {
	return &config.Config{
		Monitoring: config.MonitoringConfig{ProbeSchedule: schedule},
	}
}

func TestRunOnce(t *testing.T) {
	tests := []struct {
		name    string
		pingErr error
	}{
		{name: "Backend up", pingErr: nil},
		{name: "Backend down", pingErr: errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pinger := &fakePinger{err: tt.pingErr}
			var reported error
			called := false

			s := New(testConfig("*/30 * * * * *"), pinger, func(err error) {
				called = true
				reported = err
			})

			err := s.RunOnce(context.Background())
			if !errors.Is(err, tt.pingErr) {
				t.Errorf("Expected error %v, got %v", tt.pingErr, err)
			}
			if !called {
				t.Fatal("Expected result callback to run")
			}
			if !errors.Is(reported, tt.pingErr) {
				t.Errorf("Expected callback error %v, got %v", tt.pingErr, reported)
			}
			if pinger.count() != 1 {
				t.Errorf("Expected 1 ping, got %d", pinger.count())
			}
		})
	}
}

func TestStartProbesImmediatelyAndStops(t *testing.T) {
	pinger := &fakePinger{}
	s := New(testConfig("@every 1h"), pinger, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for pinger.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if pinger.count() == 0 {
		t.Fatal("Expected an immediate probe on start")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Scheduler did not stop after cancellation")
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := New(testConfig("not a schedule"), &fakePinger{}, nil)
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("Expected error for invalid schedule")
	}
}
