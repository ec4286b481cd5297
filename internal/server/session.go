package server

import (
	"sync"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"
)

// ClickState is the retained cross-filter selection of one source chart.
type ClickState struct {
	Column string
	Value  cty.Value
}

// Session is the per-connection control state: the active page, every control
// value the client has changed, retained chart clicks and the theme toggle.
type Session struct {
	ID string

	mu       sync.Mutex
	pageID   string
	controls map[string]cty.Value
	clicks   map[string]ClickState
	dark     bool
}

// NewSession creates an empty session with a fresh id.
func NewSession(dark bool) *Session {
	return &Session{
		ID:       uuid.NewString(),
		controls: make(map[string]cty.Value),
		clicks:   make(map[string]ClickState),
		dark:     dark,
	}
}

// SelectPage switches the session to a page and clears the previous page's
// retained clicks. Control values survive page switches; clicks do not.
func (s *Session) SelectPage(pageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageID = pageID
	s.clicks = make(map[string]ClickState)
}

// PageID returns the currently selected page id, empty before the first
// selection.
func (s *Session) PageID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageID
}

// SetControl records the client-side value of a control.
func (s *Session) SetControl(componentID string, v cty.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controls[componentID] = v
}

// Control returns the recorded value of a control, or cty.NilVal when the
// client has not touched it.
func (s *Session) Control(componentID string) cty.Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controls[componentID]
}

// SetClick retains a chart click for cross-filtering. A null value clears the
// selection.
func (s *Session) SetClick(sourceID, column string, v cty.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v == cty.NilVal || v.IsNull() {
		delete(s.clicks, sourceID)
		return
	}
	s.clicks[sourceID] = ClickState{Column: column, Value: v}
}

// Click returns the retained click of a source chart.
func (s *Session) Click(sourceID string) (ClickState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clicks[sourceID]
	return c, ok
}

// SetDark toggles the session theme.
func (s *Session) SetDark(dark bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dark = dark
}

// Dark reports the session theme.
func (s *Session) Dark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}
