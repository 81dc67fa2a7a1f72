package stratum

import "testing"

func TestEventsDoubleBuffered(t *testing.T) {
	w := NewWorld()
	collide := w.RegisterEventType()

	w.SendEvent(collide, "a-vs-b")
	if got := w.ReadEvents(collide); len(got) != 0 {
		t.Fatalf("ReadEvents() = %v before any swap, want empty", got)
	}

	w.SwapEventBuffers()
	got := w.ReadEvents(collide)
	if len(got) != 1 || got[0].(string) != "a-vs-b" {
		t.Fatalf("ReadEvents() = %v after swap, want [a-vs-b]", got)
	}

	w.SwapEventBuffers()
	if got := w.ReadEvents(collide); len(got) != 0 {
		t.Fatalf("ReadEvents() = %v after second swap with nothing sent, want empty", got)
	}
}

func TestEventsSeparateTypesDoNotCrossTalk(t *testing.T) {
	w := NewWorld()
	a := w.RegisterEventType()
	b := w.RegisterEventType()

	w.SendEvent(a, 1)
	w.SwapEventBuffers()

	if len(w.ReadEvents(a)) != 1 {
		t.Fatalf("event type a should have one event")
	}
	if len(w.ReadEvents(b)) != 0 {
		t.Fatalf("event type b should have none")
	}
}
