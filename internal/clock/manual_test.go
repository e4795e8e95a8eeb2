package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManual_FiresInDeadlineOrder(t *testing.T) {
	m := NewManual(epoch)
	var order []string

	m.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	m.AfterFunc(20*time.Millisecond, func() { order = append(order, "b") })

	m.Advance(25 * time.Millisecond)
	if got := len(order); got != 2 {
		t.Fatalf("fired = %d, want 2", got)
	}

	m.Advance(5 * time.Millisecond)
	want := []string{"a", "b", "c"}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestManual_NowDuringCallback(t *testing.T) {
	m := NewManual(epoch)
	var seen time.Time

	m.AfterFunc(40*time.Millisecond, func() { seen = m.Now() })
	m.Advance(100 * time.Millisecond)

	if want := epoch.Add(40 * time.Millisecond); !seen.Equal(want) {
		t.Errorf("Now in callback = %v, want %v", seen, want)
	}
	if want := epoch.Add(100 * time.Millisecond); !m.Now().Equal(want) {
		t.Errorf("Now after advance = %v, want %v", m.Now(), want)
	}
}

func TestManual_Stop(t *testing.T) {
	m := NewManual(epoch)
	fired := false

	timer := m.AfterFunc(10*time.Millisecond, func() { fired = true })
	if !timer.Stop() {
		t.Error("Stop() = false, want true for pending timer")
	}
	if timer.Stop() {
		t.Error("second Stop() = true, want false")
	}

	m.Advance(time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
	if m.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", m.Pending())
	}
}

func TestManual_TimerScheduledByCallback(t *testing.T) {
	m := NewManual(epoch)
	var fired []time.Duration

	m.AfterFunc(10*time.Millisecond, func() {
		fired = append(fired, m.Now().Sub(epoch))
		m.AfterFunc(10*time.Millisecond, func() {
			fired = append(fired, m.Now().Sub(epoch))
		})
	})

	m.Advance(50 * time.Millisecond)

	if len(fired) != 2 {
		t.Fatalf("fired = %v, want two callbacks", fired)
	}
	if fired[1] != 20*time.Millisecond {
		t.Errorf("nested timer fired at %v, want 20ms", fired[1])
	}
}

func TestManual_ZeroDelayFiresOnAdvanceZero(t *testing.T) {
	m := NewManual(epoch)
	fired := false

	m.AfterFunc(0, func() { fired = true })
	if fired {
		t.Fatal("zero-delay timer fired synchronously")
	}

	m.Advance(0)
	if !fired {
		t.Error("zero-delay timer did not fire on Advance(0)")
	}
}

func TestReal_AfterFunc(t *testing.T) {
	done := make(chan struct{})
	Real().AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("real timer did not fire")
	}
}
