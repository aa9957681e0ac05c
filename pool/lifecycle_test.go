package pool

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/utkarsh5026/mrpool/internal/workload"
)

func TestPool_Close(t *testing.T) {
	runWorkerCountTest(t, func(t *testing.T, n int) {
		p, err := NewPool[int, int](WithWorkerCount(n))
		if err != nil {
			t.Fatal(err)
		}

		if p.Closed() {
			t.Fatal("new pool reported closed")
		}
		if p.State() != StateOpen {
			t.Fatalf("expected state %v, got %v", StateOpen, p.State())
		}

		p.Close()
		p.Close()

		if !p.Closed() {
			t.Error("expected pool to be closed")
		}
		if p.State() != StateClosed {
			t.Errorf("expected state %v, got %v", StateClosed, p.State())
		}

		_, err = p.MapReduce(context.Background(), []int{1, 2}, negate, add)
		if !errors.Is(err, ErrPoolNotRunning) {
			t.Errorf("expected ErrPoolNotRunning, got %v", err)
		}
		if p.State() != StateClosed {
			t.Errorf("rejected call changed state to %v", p.State())
		}
	})
}

func TestPool_AutoClose(t *testing.T) {
	runWorkerCountTest(t, func(t *testing.T, n int) {
		p := newTestPool[int, int](t, WithWorkerCount(n), WithAutoClose(true))

		got, err := p.MapReduce(context.Background(), []int{0, 1, 2}, negate, add)
		if err != nil {
			t.Fatalf("first call failed: %v", err)
		}
		if got != -3 {
			t.Errorf("expected -3, got %d", got)
		}
		if !p.Closed() {
			t.Error("pool should close itself after the first call")
		}

		_, err = p.MapReduce(context.Background(), []int{0, 1, 2}, negate, add)
		if !errors.Is(err, ErrPoolNotRunning) {
			t.Errorf("expected ErrPoolNotRunning on second call, got %v", err)
		}
	})
}

func TestPool_AutoCloseOverriddenPerCall(t *testing.T) {
	want := referenceIndex()

	runWorkerCountTest(t, func(t *testing.T, n int) {
		p := newTestPool[int, workload.InvertedIndex](t, WithWorkerCount(n), WithAutoClose(true))

		if _, err := p.MapReduce(context.Background(), workload.Range(50), index, merge, Close(false)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Closed() {
			t.Fatal("Close(false) should keep the pool open")
		}

		got, err := p.MapReduce(context.Background(), workload.Range(50), index, merge)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !p.Closed() {
			t.Error("pool default should close the pool after the second call")
		}
		if len(got) != len(want) {
			t.Errorf("expected %d words, got %d", len(want), len(got))
		}
	})
}

func TestPool_CloseOnCall(t *testing.T) {
	runWorkerCountTest(t, func(t *testing.T, n int) {
		p := newTestPool[int, int](t, WithWorkerCount(n))

		if _, err := p.MapReduce(context.Background(), []int{1}, negate, add, Close(false)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Closed() {
			t.Fatal("Close(false) should keep the pool open")
		}

		if _, err := p.MapReduce(context.Background(), []int{1}, negate, add, Close(true)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !p.Closed() {
			t.Fatal("Close(true) should close the pool")
		}

		if _, err := p.MapReduce(context.Background(), []int{1}, negate, add); !errors.Is(err, ErrPoolNotRunning) {
			t.Errorf("expected ErrPoolNotRunning, got %v", err)
		}
	})
}

// A call made with Close(true) marks the pool closed before it runs, so a
// failing call still leaves the pool closed.
func TestPool_CloseIntentSurvivesFailedCall(t *testing.T) {
	runWorkerCountTest(t, func(t *testing.T, n int) {
		p := newTestPool[int, int](t, WithWorkerCount(n))

		observed := make(chan bool, 16)
		boom := errors.New("boom")
		m := func(ctx context.Context, x int) (int, error) {
			observed <- p.Closed()
			return 0, boom
		}

		_, err := p.MapReduce(context.Background(), []int{1}, m, add, Close(true))
		if !errors.Is(err, boom) {
			t.Fatalf("expected %v, got %v", boom, err)
		}
		if !<-observed {
			t.Error("pool should already report closed while the call runs")
		}
		if !p.Closed() {
			t.Error("pool should stay closed after the failed call")
		}
		if _, err := p.MapReduce(context.Background(), []int{1}, negate, add); !errors.Is(err, ErrPoolNotRunning) {
			t.Errorf("expected ErrPoolNotRunning, got %v", err)
		}
	})
}

// Closing through the pool default happens only after success.
func TestPool_AutoCloseSkippedOnFailure(t *testing.T) {
	runWorkerCountTest(t, func(t *testing.T, n int) {
		p := newTestPool[int, int](t, WithWorkerCount(n), WithAutoClose(true))

		boom := errors.New("boom")
		_, err := p.MapReduce(context.Background(), []int{1, 2}, func(ctx context.Context, x int) (int, error) {
			return 0, boom
		}, add)
		if !errors.Is(err, boom) {
			t.Fatalf("expected %v, got %v", boom, err)
		}
		if p.Closed() {
			t.Error("a failed call should not trigger the auto-close")
		}
	})
}

func TestPool_Terminate(t *testing.T) {
	runWorkerCountTest(t, func(t *testing.T, n int) {
		p := newTestPool[int, int](t, WithWorkerCount(n))

		if _, err := p.MapReduce(context.Background(), []int{0, 1, 2}, negate, add); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		p.Terminate()
		if !p.Closed() {
			t.Error("terminated pool should report closed")
		}
		if p.State() != StateTerminated {
			t.Errorf("expected state %v, got %v", StateTerminated, p.State())
		}

		if _, err := p.MapReduce(context.Background(), []int{1}, negate, add); !errors.Is(err, ErrPoolNotRunning) {
			t.Errorf("expected ErrPoolNotRunning, got %v", err)
		}

		// Close after Terminate is harmless.
		p.Close()
		if p.State() != StateTerminated {
			t.Errorf("Close after Terminate changed state to %v", p.State())
		}
	})
}

func TestPool_TerminateInFlight(t *testing.T) {
	p, err := NewPool[int, int](WithWorkerCount(2))
	if err != nil {
		t.Fatal(err)
	}

	started := make(chan struct{}, 2)
	errCh := make(chan error, 1)
	go func() {
		_, err := p.MapReduce(context.Background(), []int{1, 2, 3, 4}, func(ctx context.Context, x int) (int, error) {
			started <- struct{}{}
			<-ctx.Done()
			return 0, ctx.Err()
		}, add)
		errCh <- err
	}()

	<-started
	p.Terminate()

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrTerminated) {
			t.Errorf("expected ErrTerminated, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight call was not released by Terminate")
	}
}

func TestUse(t *testing.T) {
	t.Run("closes after success", func(t *testing.T) {
		p, err := NewPool[int, []int](WithWorkerCount(1))
		if err != nil {
			t.Fatal(err)
		}

		var got []int
		err = Use(p, func(p *Pool[int, []int]) error {
			var err error
			got, err = p.MapConcat(context.Background(), workload.Range(3), addOne)
			return err
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(got, []int{1, 2, 3}) {
			t.Errorf("expected [1 2 3], got %v", got)
		}
		if !p.Closed() {
			t.Error("pool should be closed after the scope exits")
		}
	})

	t.Run("closes and propagates error", func(t *testing.T) {
		p, err := NewPool[int, int](WithWorkerCount(2))
		if err != nil {
			t.Fatal(err)
		}

		boom := errors.New("boom")
		err = Use(p, func(p *Pool[int, int]) error {
			return boom
		})
		if err != boom {
			t.Errorf("expected the scope's error unchanged, got %v", err)
		}
		if !p.Closed() {
			t.Error("pool should be closed after the scope exits")
		}
	})

	t.Run("closes on panic", func(t *testing.T) {
		p, err := NewPool[int, int](WithWorkerCount(2))
		if err != nil {
			t.Fatal(err)
		}

		func() {
			defer func() {
				if r := recover(); r != "scope panic" {
					t.Errorf("expected the scope's panic to propagate, got %v", r)
				}
			}()
			_ = Use(p, func(p *Pool[int, int]) error {
				panic("scope panic")
			})
		}()

		if !p.Closed() {
			t.Error("pool should be closed after a panicking scope")
		}
	})
}

func TestWithPool(t *testing.T) {
	var scoped *Pool[int, int]
	err := WithPool(func(p *Pool[int, int]) error {
		scoped = p
		got, err := p.MapReduce(context.Background(), []int{0, 1, 2}, negate, add)
		if err != nil {
			return err
		}
		if got != -3 {
			t.Errorf("expected -3, got %d", got)
		}
		return nil
	}, WithWorkerCount(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !scoped.Closed() {
		t.Error("pool should be closed after WithPool returns")
	}

	err = WithPool(func(p *Pool[int, int]) error {
		t.Error("scope should not run when the pool cannot be built")
		return nil
	}, WithWorkerCount(-100000))
	if !errors.Is(err, ErrInvalidWorkerCount) {
		t.Errorf("expected ErrInvalidWorkerCount, got %v", err)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateOpen:       "open",
		StateClosed:     "closed",
		StateTerminated: "terminated",
		State(7):        "State(7)",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}
