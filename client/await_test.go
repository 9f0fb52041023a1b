package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func newAwaitClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/account/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Set-Cookie", "SID=xyz; Path=/")
	})
	mux.HandleFunc("/api/v1/tender/T1", h)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	base := []Option{WithHTTPClient(srv.Client()), WithPollInterval(time.Millisecond, 5*time.Millisecond)}
	c, err := New(srv.URL, "k", append(base, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Login(context.Background(), Credentials{}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	return c
}

func TestAwaitTenderStatus_ReachesStatus(t *testing.T) {
	var polls int32
	c := newAwaitClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&polls, 1) < 3 {
			_, _ = io.WriteString(w, `{"Status":"Draft"}`)
			return
		}
		_, _ = io.WriteString(w, `{"Status":"Awaiting"}`)
	})
	got, err := c.AwaitTenderStatus(context.Background(), "T1", "Awaiting", "Assigned")
	if err != nil {
		t.Fatalf("AwaitTenderStatus: %v", err)
	}
	if got.Status != "Awaiting" || atomic.LoadInt32(&polls) != 3 {
		t.Fatalf("status=%q polls=%d", got.Status, polls)
	}
}

func TestAwaitTenderStatus_NoStatusesIsSingleFetch(t *testing.T) {
	var polls int32
	c := newAwaitClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&polls, 1)
		_, _ = io.WriteString(w, `{"Status":"Draft"}`)
	})
	got, err := c.AwaitTenderStatus(context.Background(), "T1")
	if err != nil || got.Status != "Draft" || atomic.LoadInt32(&polls) != 1 {
		t.Fatalf("got=%+v err=%v polls=%d", got, err, polls)
	}
}

func TestAwaitTenderStatus_Timeout(t *testing.T) {
	c := newAwaitClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"Status":"Draft"}`)
	}, WithAwaitTimeout(20*time.Millisecond))
	got, err := c.AwaitTenderStatus(context.Background(), "T1", "Awaiting")
	if !errors.Is(err, ErrAwaitTimeout) {
		t.Fatalf("expected ErrAwaitTimeout, got %v", err)
	}
	if got == nil || got.Status != "Draft" {
		t.Fatalf("last view must be returned, got %+v", got)
	}
}

func TestAwaitTenderStatus_ContextDeadline(t *testing.T) {
	c := newAwaitClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"Status":"Draft"}`)
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := c.AwaitTenderStatus(ctx, "T1", "Awaiting"); !errors.Is(err, ErrAwaitTimeout) {
		t.Fatalf("expected ErrAwaitTimeout, got %v", err)
	}
}

func TestAwaitTenderStatus_FetchErrorIsFatal(t *testing.T) {
	var polls int32
	c := newAwaitClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&polls, 1)
		w.WriteHeader(http.StatusNotFound)
	})
	_, err := c.AwaitTenderStatus(context.Background(), "T1", "Awaiting")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if atomic.LoadInt32(&polls) != 1 {
		t.Fatalf("fetch errors must not be retried, polls=%d", polls)
	}
}

func TestAwaitTenderStatus_BudgetFollowsClock(t *testing.T) {
	var polls int32
	fake := clockwork.NewFakeClock()
	c := newAwaitClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&polls, 1)
		_, _ = io.WriteString(w, `{"Status":"Draft"}`)
	}, WithAwaitTimeout(time.Second), WithClock(fake))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	type result struct {
		tender *Tender
		err    error
	}
	done := make(chan result, 1)
	go func() {
		got, err := c.AwaitTenderStatus(ctx, "T1", "Awaiting")
		done <- result{got, err}
	}()

	// The first poll is followed by a wait on the fake clock; jumping past
	// the budget makes the second poll the last one.
	if err := fake.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("await never waited on the clock: %v", err)
	}
	fake.Advance(2 * time.Second)

	select {
	case res := <-done:
		if !errors.Is(res.err, ErrAwaitTimeout) {
			t.Fatalf("expected ErrAwaitTimeout, got %v", res.err)
		}
		if ctx.Err() != nil {
			t.Fatalf("stopped by the context, not by the await budget")
		}
		if res.tender == nil || res.tender.Status != "Draft" {
			t.Fatalf("last view must be returned, got %+v", res.tender)
		}
		if n := atomic.LoadInt32(&polls); n != 2 {
			t.Fatalf("polls=%d want 2", n)
		}
	case <-ctx.Done():
		t.Fatalf("await did not honour the budget on the fake clock")
	}
}
