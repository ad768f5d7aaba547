package module

import "testing"

type searchPorts struct{ Hits int }

func TestRegistryRoundTrip(t *testing.T) {
	t.Cleanup(Reset)

	Register("search", searchPorts{Hits: 3})

	got, ok := PortsAs[searchPorts]("search")
	if !ok {
		t.Fatal("ports not found")
	}
	if got.Hits != 3 {
		t.Fatalf("hits = %d, want 3", got.Hits)
	}
}

func TestRegistryMissingName(t *testing.T) {
	t.Cleanup(Reset)

	if _, ok := PortsAs[searchPorts]("nope"); ok {
		t.Fatal("expected miss")
	}
}

func TestRegistryWrongType(t *testing.T) {
	t.Cleanup(Reset)

	Register("search", "not a port set")
	if _, ok := PortsAs[searchPorts]("search"); ok {
		t.Fatal("expected type mismatch")
	}
}

func TestRegistryReset(t *testing.T) {
	Register("search", searchPorts{})
	Reset()
	if _, ok := PortsAs[searchPorts]("search"); ok {
		t.Fatal("expected empty registry after reset")
	}
}
