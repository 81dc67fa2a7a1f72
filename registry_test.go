package stratum

import "testing"

func TestRegistryLookupAndInfoRoundTrip(t *testing.T) {
	r := newRegistry()
	id := r.register("Position", 16, nil)

	got, ok := r.lookup("Position")
	if !ok || got != id {
		t.Fatalf("lookup(%q) = (%v, %v), want (%v, true)", "Position", got, ok, id)
	}

	info, ok := r.info(id)
	if !ok {
		t.Fatalf("info(%v) missing", id)
	}
	if info.name != "Position" || info.size != 16 {
		t.Fatalf("info(%v) = %+v, unexpected", id, info)
	}
}

func TestRegistryDuplicateNamePanics(t *testing.T) {
	r := newRegistry()
	r.register("Position", 16, nil)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected register to panic on a duplicate name")
		}
	}()
	r.register("Position", 16, nil)
}

func TestRegistryCapacityExceededPanics(t *testing.T) {
	orig := Config.MaxComponents
	Config.MaxComponents = 1
	defer func() { Config.MaxComponents = orig }()

	r := newRegistry()
	r.register("Position", 16, nil)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected register to panic once the registry is at capacity")
		}
	}()
	r.register("Velocity", 16, nil)
}

func TestRegistryUnknownIDNotFound(t *testing.T) {
	r := newRegistry()
	r.register("Position", 16, nil)

	if _, ok := r.info(0); ok {
		t.Fatalf("info(0) should never be found, 0 is reserved")
	}
	if _, ok := r.info(99); ok {
		t.Fatalf("info(99) should not be found in an empty-but-one registry")
	}
}
