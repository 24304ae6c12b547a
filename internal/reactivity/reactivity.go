// Package reactivity registers the client-side state that lets page
// expressions re-evaluate after each client-side navigation.
package reactivity

import "sync"

const (
	// DataName is the x-data name pages bind to.
	DataName = "astro"
	// BindingName is the x-bind object that carries the page-load handler.
	BindingName = "refreshOnPageLoad"
	// PageLoadEvent is dispatched on document after every navigation.
	PageLoadEvent = "astro:page-load"
	// PageLoadBinding is the listener key inside BindingName.
	PageLoadBinding = "@" + PageLoadEvent + ".document"
)

// initialPageLoaded is truthy so expressions guarded by the counter pass
// before the first navigation event.
const initialPageLoaded = 1

// DataFactory builds a fresh component state for each element that binds it.
type DataFactory func() any

// Library is the reactive-state host a data source is registered with.
type Library interface {
	Data(name string, factory DataFactory)
}

// Initialize registers the page-load data source on lib and returns lib so
// the host can keep chaining its own setup.
func Initialize[L Library](lib L) L {
	lib.Data(DataName, func() any { return NewPageLoadState() })
	return lib
}

// PageLoadState counts page loads. The counter only moves through
// OnPageLoad; its value means nothing beyond having changed.
type PageLoadState struct {
	mu         sync.Mutex
	pageLoaded int
}

func NewPageLoadState() *PageLoadState {
	return &PageLoadState{pageLoaded: initialPageLoaded}
}

// OnPageLoad records one page-load event.
func (s *PageLoadState) OnPageLoad() {
	s.mu.Lock()
	s.pageLoaded++
	s.mu.Unlock()
}

// PageLoaded returns the current counter.
func (s *PageLoadState) PageLoaded() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageLoaded
}

// Bindings returns the event listeners exposed under BindingName.
func (s *PageLoadState) Bindings() map[string]func() {
	return map[string]func(){PageLoadBinding: s.OnPageLoad}
}
