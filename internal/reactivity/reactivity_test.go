package reactivity

import (
	"strings"
	"testing"
)

type recordingLibrary struct {
	names     []string
	factories []DataFactory
}

func (l *recordingLibrary) Data(name string, factory DataFactory) {
	l.names = append(l.names, name)
	l.factories = append(l.factories, factory)
}

func TestInitializeRegistersAndReturnsLibrary(t *testing.T) {
	lib := &recordingLibrary{}
	if got := Initialize(lib); got != lib {
		t.Fatal("expected Initialize to return the same library")
	}
	if len(lib.names) != 1 || lib.names[0] != DataName {
		t.Fatalf("expected one %q registration, got %v", DataName, lib.names)
	}
	state, ok := lib.factories[0]().(*PageLoadState)
	if !ok {
		t.Fatalf("expected *PageLoadState, got %T", lib.factories[0]())
	}
	if state.PageLoaded() == 0 {
		t.Fatal("expected initial counter to be truthy")
	}
}

func TestPageLoadIncrementsOncePerEvent(t *testing.T) {
	state := NewPageLoadState()
	initial := state.PageLoaded()

	const loads = 7
	handler := state.Bindings()[PageLoadBinding]
	for i := 0; i < loads; i++ {
		handler()
	}
	if got := state.PageLoaded(); got != initial+loads {
		t.Fatalf("expected %d, got %d", initial+loads, got)
	}
}

func TestFactoryReturnsFreshState(t *testing.T) {
	reg := Initialize(NewRegistry())
	a, _ := reg.New(DataName)
	b, _ := reg.New(DataName)
	a.(*PageLoadState).OnPageLoad()
	if b.(*PageLoadState).PageLoaded() != 1 {
		t.Fatal("expected each binding to own its counter")
	}
	if _, ok := reg.New("missing"); ok {
		t.Fatal("expected unknown source to be reported")
	}
}

func TestEntryScript(t *testing.T) {
	if _, err := NewRegistry().EntryScript(); err == nil {
		t.Fatal("expected error when the data source is not registered")
	}

	script, err := Initialize(NewRegistry()).EntryScript()
	if err != nil {
		t.Fatalf("entry script: %v", err)
	}
	for _, want := range []string{
		`Alpine.data("astro"`,
		`pageLoaded: 1,`,
		`["@astro:page-load.document"]()`,
		`this.pageLoaded++;`,
		`return Alpine;`,
	} {
		if !strings.Contains(string(script), want) {
			t.Fatalf("expected %q in script:\n%s", want, script)
		}
	}
}
