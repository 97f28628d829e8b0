package modkit

import (
	"net/http"
	"testing"

	"paperscope/internal/modkit/httpkit"
)

func TestBuildDefaults(t *testing.T) {
	t.Parallel()

	b := Build()
	if b.Name != "" || b.Prefix != "" || len(b.Mw) != 0 || b.Ports != nil {
		t.Fatalf("unexpected defaults: %+v", b)
	}
	if b.Subrouter == nil || b.Register == nil {
		t.Fatal("hooks must default to no-ops, not nil")
	}
	// defaults must be callable
	if got := b.Subrouter(nil); got != nil {
		t.Fatal("default subrouter should pass through")
	}
	b.Register(nil)
}

func TestBuildAppliesOptions(t *testing.T) {
	t.Parallel()

	mw := func(next http.Handler) http.Handler { return next }
	type ports struct{ N int }

	var registered bool
	b := Build(
		WithName("papers"),
		WithPrefix("/papers"),
		WithMiddlewares(mw, mw),
		WithPorts(ports{N: 7}),
		WithSubrouter(func(r httpkit.Router) httpkit.Router { return r }),
		WithRegister(func(httpkit.Router) { registered = true }),
	)

	if b.Name != "papers" || b.Prefix != "/papers" {
		t.Fatalf("name/prefix not applied: %+v", b)
	}
	if len(b.Mw) != 2 {
		t.Fatalf("middleware count = %d, want 2", len(b.Mw))
	}
	if p, ok := b.Ports.(ports); !ok || p.N != 7 {
		t.Fatalf("ports not applied: %#v", b.Ports)
	}
	b.Register(nil)
	if !registered {
		t.Fatal("register hook not applied")
	}
}
