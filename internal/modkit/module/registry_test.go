package module

import "testing"

func TestRegistryRoundTrip(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	type ports struct{ Label string }
	Register("papers", ports{Label: "x"})

	got, ok := PortsAs[ports]("papers")
	if !ok || got.Label != "x" {
		t.Fatalf("lookup failed: ok=%v got=%+v", ok, got)
	}

	if _, ok := PortsAs[ports]("missing"); ok {
		t.Fatal("missing name should not resolve")
	}
	if _, ok := PortsAs[int]("papers"); ok {
		t.Fatal("wrong type assertion should not resolve")
	}
}
