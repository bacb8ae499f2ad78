package input

import "testing"

func TestQueueFIFOAndDrain(t *testing.T) {
	q := NewQueue(4)
	for i := 0; i < 3; i++ {
		if !q.Push(ButtonEvent(1, i, true)) {
			t.Fatalf("Push(%d) rejected", i)
		}
	}
	q.Close()

	var codes []int
	for ev := range q.Events() {
		codes = append(codes, ev.Code)
	}
	if len(codes) != 3 || codes[0] != 0 || codes[1] != 1 || codes[2] != 2 {
		t.Errorf("drained %v, want [0 1 2]", codes)
	}
}

func TestQueueFullDrops(t *testing.T) {
	q := NewQueue(1)
	q.Push(Connected(1))
	if q.Push(Connected(2)) {
		t.Error("Push into a full queue should be rejected")
	}
	if q.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", q.Dropped())
	}
}

func TestQueuePushAfterClose(t *testing.T) {
	q := NewQueue(2)
	q.Close()
	q.Close()
	if q.Push(Connected(1)) {
		t.Error("Push after Close should be rejected")
	}
	if q.Dropped() != 0 {
		t.Errorf("closed rejections should not count as drops, got %d", q.Dropped())
	}
}
