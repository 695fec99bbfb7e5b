package aip

import (
	"sync"
	"testing"
)

func TestRegistry_Identifiers(t *testing.T) {
	reg := NewRegistry()
	if _, err := NewIn(reg, "main", mainMainView, mainLabel); err != nil {
		t.Fatal(err)
	}
	if _, err := NewIn(reg, "home", homeMainView, homeTableView); err != nil {
		t.Fatal(err)
	}

	got := reg.Identifiers()
	want := []string{"home.mainView", "home.tableView", "main.mainView", "main.label"}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i, e := range got {
		if e.Identifier != want[i] {
			t.Errorf("entry %d = %q, want %q", i, e.Identifier, want[i])
		}
	}
}

func TestRegistry_Lookup(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("home", []string{"mainView"}); err != nil {
		t.Fatal(err)
	}

	tokens, ok := reg.Lookup("home")
	if !ok || len(tokens) != 1 || tokens[0] != "mainView" {
		t.Errorf("Lookup(home) = %v, %v", tokens, ok)
	}
	if _, ok := reg.Lookup("missing"); ok {
		t.Error("Lookup(missing) should report false")
	}
}

func TestRegistry_ConcurrentRegister(t *testing.T) {
	reg := NewRegistry()
	namespaces := []Namespace{"a", "b", "c", "d", "e", "f", "g", "h"}

	var wg sync.WaitGroup
	for _, ns := range namespaces {
		wg.Add(1)
		go func(ns Namespace) {
			defer wg.Done()
			_ = reg.Register(ns, []string{"view"})
		}(ns)
	}
	wg.Wait()

	if got := len(reg.Namespaces()); got != len(namespaces) {
		t.Errorf("registered %d namespaces, want %d", got, len(namespaces))
	}
}
