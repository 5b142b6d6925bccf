package audio

import (
	"errors"
	"testing"
	"time"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()

	for i := 0; i < 100; i++ {
		if err := q.Send(SetVolume{Level: i}); err != nil {
			t.Fatalf("Send(%d) error = %v", i, err)
		}
	}

	for i := 0; i < 100; i++ {
		cmd, ok := q.Receive()
		if !ok {
			t.Fatalf("Receive() closed after %d commands", i)
		}
		if got := cmd.(SetVolume).Level; got != i {
			t.Fatalf("Receive() #%d = %d, want %d", i, got, i)
		}
	}
}

func TestQueueDrainsAfterClose(t *testing.T) {
	q := NewQueue()
	q.Send(TogglePause{})
	q.Send(SetVolume{Level: 10})
	q.Close()

	if _, ok := q.Receive(); !ok {
		t.Fatal("first Receive() after Close should still deliver")
	}
	if _, ok := q.Receive(); !ok {
		t.Fatal("second Receive() after Close should still deliver")
	}
	if cmd, ok := q.Receive(); ok {
		t.Errorf("Receive() on drained closed queue = %v, want closed", cmd)
	}
}

func TestQueueSendAfterClose(t *testing.T) {
	q := NewQueue()
	q.Close()
	q.Close()

	if err := q.Send(TogglePause{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Send() after Close error = %v, want ErrClosed", err)
	}
	if cmd, ok := q.Receive(); ok {
		t.Errorf("Receive() = %v after rejected Send, want closed", cmd)
	}
}

func TestQueueReceiveBlocks(t *testing.T) {
	q := NewQueue()
	got := make(chan Command, 1)

	go func() {
		cmd, _ := q.Receive()
		got <- cmd
	}()

	select {
	case cmd := <-got:
		t.Fatalf("Receive() returned %v before any Send", cmd)
	case <-time.After(20 * time.Millisecond):
	}

	q.Send(TogglePause{})

	select {
	case cmd := <-got:
		if _, ok := cmd.(TogglePause); !ok {
			t.Errorf("Receive() = %v, want TogglePause", cmd)
		}
	case <-time.After(time.Second):
		t.Fatal("Receive() did not wake up after Send")
	}
}

func TestQueueCloseWakesReceiver(t *testing.T) {
	q := NewQueue()
	done := make(chan bool, 1)

	go func() {
		_, ok := q.Receive()
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	q.Close()

	select {
	case ok := <-done:
		if ok {
			t.Error("Receive() reported a command on an empty closed queue")
		}
	case <-time.After(time.Second):
		t.Fatal("Close() did not wake a blocked Receive()")
	}
}
