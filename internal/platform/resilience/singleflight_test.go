package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var calls atomic.Int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			<-start
			out, err, _ := g.Do(context.Background(), "competitions", func(context.Context) (any, error) {
				calls.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil || out != "ok" {
				t.Errorf("unexpected result %v, %v", out, err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one call, got %d", got)
	}
}

func TestSingleFlight_WaiterHonoursContext(t *testing.T) {
	var g SingleFlight
	release := make(chan struct{})
	defer close(release)

	go func() {
		_, _, _ = g.Do(context.Background(), "slow", func(context.Context) (any, error) {
			<-release
			return nil, nil
		})
	}()
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err, _ := g.Do(ctx, "slow", func(context.Context) (any, error) {
		t.Errorf("second caller must not run its own call")
		return nil, nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestSingleFlight_SharedCallSurvivesFirstCallerCancel(t *testing.T) {
	var g SingleFlight
	started := make(chan struct{})
	release := make(chan struct{})

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err, _ := g.Do(firstCtx, "teams", func(ctx context.Context) (any, error) {
			close(started)
			<-release
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return "ok", nil
		})
		firstErr <- err
	}()
	<-started

	secondOut := make(chan any, 1)
	secondErr := make(chan error, 1)
	go func() {
		out, err, _ := g.Do(context.Background(), "teams", func(context.Context) (any, error) {
			t.Errorf("second caller must join the call in flight")
			return nil, nil
		})
		secondOut <- out
		secondErr <- err
	}()
	time.Sleep(10 * time.Millisecond)

	cancelFirst()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected first caller cancelled, got %v", err)
	}
	close(release)

	if err := <-secondErr; err != nil {
		t.Fatalf("expected second caller to succeed, got %v", err)
	}
	if out := <-secondOut; out != "ok" {
		t.Fatalf("unexpected shared result %v", out)
	}
}
