package shutdown

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHooksRunInReverseOrder(t *testing.T) {
	h := NewHandler(time.Second)

	var order []string
	h.OnShutdown(func(context.Context) error {
		order = append(order, "first")
		return nil
	})
	h.OnShutdown(func(context.Context) error {
		order = append(order, "second")
		return nil
	})

	go h.Trigger()
	if err := h.Wait(); err != nil {
		t.Fatalf("Wait error: %v", err)
	}

	if len(order) != 2 || order[0] != "second" || order[1] != "first" {
		t.Errorf("hook order = %v, want [second first]", order)
	}

	select {
	case <-h.Done():
	default:
		t.Error("Done not closed after Wait")
	}
}

func TestLastHookErrorWins(t *testing.T) {
	h := NewHandler(time.Second)

	errA := errors.New("a")
	errB := errors.New("b")
	h.OnShutdown(func(context.Context) error { return errA })
	h.OnShutdown(func(context.Context) error { return errB })

	go h.Trigger()
	// Reverse order: errB runs first, errA last.
	if err := h.Wait(); !errors.Is(err, errA) {
		t.Errorf("Wait error = %v, want %v", err, errA)
	}
}

func TestTriggerIsIdempotent(t *testing.T) {
	h := NewHandler(time.Second)
	h.Trigger()
	h.Trigger()

	if err := h.Wait(); err != nil {
		t.Fatalf("Wait error: %v", err)
	}
}
