package fetchpool

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

func TestMapKeepsOrderAndPerItemErrors(t *testing.T) {
	items := []string{"1", "x", "3"}
	got := Map(context.Background(), 2, items, func(_ context.Context, s string) (int, error) {
		return strconv.Atoi(s)
	})

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Value != 1 || got[0].Err != nil {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Err == nil {
		t.Error("got[1] should carry the parse error")
	}
	if got[2].Value != 3 || got[2].Err != nil {
		t.Errorf("got[2] = %+v", got[2])
	}
}

func TestMapBoundsConcurrency(t *testing.T) {
	var inFlight, peak int32
	items := make([]int, 20)

	Map(context.Background(), 3, items, func(context.Context, int) (struct{}, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return struct{}{}, nil
	})

	if peak > 3 {
		t.Errorf("peak in flight = %d, want <= 3", peak)
	}
}

func TestMapFailureDoesNotStopSiblings(t *testing.T) {
	var calls int32
	items := []int{0, 1, 2, 3, 4, 5}
	got := Map(context.Background(), 2, items, func(_ context.Context, i int) (int, error) {
		atomic.AddInt32(&calls, 1)
		if i == 0 {
			return 0, errors.New("boom")
		}
		return i * 10, nil
	})

	if calls != int32(len(items)) {
		t.Errorf("calls = %d, want %d", calls, len(items))
	}
	if got[0].Err == nil {
		t.Error("got[0] should carry its error")
	}
	for i := 1; i < len(items); i++ {
		if got[i].Err != nil || got[i].Value != i*10 {
			t.Errorf("got[%d] = %+v, want %d", i, got[i], i*10)
		}
	}
}

func TestMapCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := Map(ctx, 0, []int{1, 2}, func(context.Context, int) (int, error) {
		t.Error("fn called after cancel")
		return 0, nil
	})
	for i, r := range got {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("got[%d].Err = %v, want context.Canceled", i, r.Err)
		}
	}
}
