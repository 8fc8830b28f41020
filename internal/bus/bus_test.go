package bus

import (
	"context"
	"testing"
	"time"
)

func TestSendRecv(t *testing.T) {
	b := New[int](1)
	ctx := context.Background()

	if err := b.Sender().Send(ctx, 42); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	v, err := b.Recv(ctx)
	if err != nil {
		t.Fatalf("Recv returned error: %v", err)
	}
	if v != 42 {
		t.Errorf("got %d, want 42", v)
	}
}

func TestRecvOrder(t *testing.T) {
	b := New[int](4)
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		if err := b.Sender().Send(ctx, i); err != nil {
			t.Fatalf("Send(%d) returned error: %v", i, err)
		}
	}
	for i := 0; i < 4; i++ {
		v, err := b.Recv(ctx)
		if err != nil {
			t.Fatalf("Recv returned error: %v", err)
		}
		if v != i {
			t.Errorf("got %d, want %d", v, i)
		}
	}
}

func TestSendAfterClose(t *testing.T) {
	b := New[int](1)
	b.Close()
	if err := b.Sender().Send(context.Background(), 1); err != ErrClosed {
		t.Errorf("got %v, want ErrClosed", err)
	}
}

func TestRecvDrainsAfterClose(t *testing.T) {
	b := New[int](1)
	ctx := context.Background()
	if err := b.Sender().Send(ctx, 7); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	b.Close()

	v, err := b.Recv(ctx)
	if err != nil {
		t.Fatalf("Recv returned error: %v", err)
	}
	if v != 7 {
		t.Errorf("got %d, want 7", v)
	}

	if _, err := b.Recv(ctx); err != ErrClosed {
		t.Errorf("got %v, want ErrClosed", err)
	}
}

func TestRecvContextCancel(t *testing.T) {
	b := New[int](0)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := b.Recv(ctx); err != context.DeadlineExceeded {
		t.Errorf("got %v, want DeadlineExceeded", err)
	}
}
