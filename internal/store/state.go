/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package store holds the authoritative in-memory layout state. Every
// operation on State is a pure transform: it returns a fresh snapshot and
// never mutates the receiver. Invalid targets (unknown widget or tab ids)
// and refused structural changes (deleting the last tab, renaming to an
// empty string) are signaled as no-ops, not errors; stale pointer events
// racing a delete are expected and must not fail the interaction loop.
package store

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"screendesigner/internal/domain"
)

// DefaultTabName is used for the tab synthesized on first load.
const DefaultTabName = "Tab 1"

// State is an immutable snapshot of all layouts plus transient load status.
// Whenever Layouts is non-empty, ActiveTabID keys an existing entry; the
// empty ActiveTabID is valid only in the just-initialized, not-yet-loaded
// state.
type State struct {
	Layouts     map[string]domain.Layout
	ActiveTabID string
	IsLoading   bool
	Err         string
}

// NewState returns the empty, not-yet-loaded state.
func NewState() State {
	return State{Layouts: map[string]domain.Layout{}}
}

// ActiveLayout returns the layout the ActiveTabID points at.
func (s State) ActiveLayout() (domain.Layout, bool) {
	l, ok := s.Layouts[s.ActiveTabID]
	return l, ok
}

// TabIDs returns all tab ids in deterministic (sorted) order.
func (s State) TabIDs() []string {
	ids := make([]string, 0, len(s.Layouts))
	for id := range s.Layouts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// clone copies the snapshot; layout values are deep-copied lazily by the
// callers that replace them.
func (s State) clone() State {
	c := s
	c.Layouts = make(map[string]domain.Layout, len(s.Layouts))
	for id, l := range s.Layouts {
		c.Layouts[id] = l
	}
	return c
}

// firstTabID picks the deterministic "first remaining" tab.
func (s State) firstTabID() string {
	ids := s.TabIDs()
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// StartLoad marks a load in flight and clears the previous error.
func (s State) StartLoad() State {
	c := s.clone()
	c.IsLoading = true
	c.Err = ""
	return c
}

// FailLoad records a load failure. Layouts keep whatever they were.
func (s State) FailLoad(msg string) State {
	c := s.clone()
	c.IsLoading = false
	c.Err = msg
	return c
}

// FailSave records a save failure without rolling back in-memory state.
func (s State) FailSave(msg string) State {
	c := s.clone()
	c.Err = msg
	return c
}

// LoadLayouts adopts fetched layouts. An empty fetch synthesizes a single
// default tab so the designer always has a canvas to draw on. When the
// current active tab does not survive the fetch, the first fetched tab
// becomes active.
func (s State) LoadLayouts(fetched map[string]domain.Layout) State {
	c := s.clone()
	c.IsLoading = false
	c.Err = ""
	if len(fetched) == 0 {
		tab := domain.Layout{TabID: uuid.NewString(), TabName: DefaultTabName, Widgets: []domain.Widget{}}
		c.Layouts = map[string]domain.Layout{tab.TabID: tab}
		c.ActiveTabID = tab.TabID
		return c
	}
	c.Layouts = make(map[string]domain.Layout, len(fetched))
	for id, l := range fetched {
		c.Layouts[id] = l.Clone()
	}
	if _, ok := c.Layouts[c.ActiveTabID]; !ok {
		c.ActiveTabID = c.firstTabID()
	}
	return c
}

// AddWidget appends a new widget with the default size at (x, y) to the
// active layout, creating the layout on the fly when the active tab has no
// entry yet. Positions are adopted as given; callers clamp before dropping.
// Returns the created widget alongside the new state.
func (s State) AddWidget(typ string, x, y float64) (State, domain.Widget) {
	c := s.clone()
	tabID := c.ActiveTabID
	if tabID == "" {
		tabID = uuid.NewString()
		c.ActiveTabID = tabID
	}
	l, ok := c.Layouts[tabID]
	if !ok {
		l = domain.Layout{TabID: tabID, TabName: tabNameFor(tabID), Widgets: []domain.Widget{}}
	} else {
		l = l.Clone()
	}
	w := domain.Widget{
		ID:     uuid.NewString(),
		Type:   typ,
		X:      x,
		Y:      y,
		Width:  domain.DefaultWidgetSize,
		Height: domain.DefaultWidgetSize,
	}
	l.Widgets = append(l.Widgets, w)
	l.Touch()
	c.Layouts[tabID] = l
	return c, w
}

// MoveWidget replaces the widget's position. No-op when the active layout
// or the widget id is unknown.
func (s State) MoveWidget(widgetID string, x, y float64) (State, bool) {
	l, ok := s.ActiveLayout()
	if !ok {
		return s, false
	}
	i := l.WidgetIndex(widgetID)
	if i < 0 {
		return s, false
	}
	c := s.clone()
	l = l.Clone()
	l.Widgets[i].X = x
	l.Widgets[i].Y = y
	l.Touch()
	c.Layouts[l.TabID] = l
	return c, true
}

// ResizeWidget replaces the widget's size. No-op when the target is gone.
func (s State) ResizeWidget(widgetID string, width, height float64) (State, bool) {
	l, ok := s.ActiveLayout()
	if !ok {
		return s, false
	}
	i := l.WidgetIndex(widgetID)
	if i < 0 {
		return s, false
	}
	c := s.clone()
	l = l.Clone()
	l.Widgets[i].Width = width
	l.Widgets[i].Height = height
	l.Touch()
	c.Layouts[l.TabID] = l
	return c, true
}

// DeleteWidget removes the widget from the active layout.
func (s State) DeleteWidget(widgetID string) (State, bool) {
	l, ok := s.ActiveLayout()
	if !ok {
		return s, false
	}
	i := l.WidgetIndex(widgetID)
	if i < 0 {
		return s, false
	}
	c := s.clone()
	l = l.Clone()
	l.Widgets = append(l.Widgets[:i], l.Widgets[i+1:]...)
	l.Touch()
	c.Layouts[l.TabID] = l
	return c, true
}

// CreateTab inserts a new empty layout and makes it active. No-op when the
// id already exists (callers mint unique ids).
func (s State) CreateTab(tabID, tabName string) (State, bool) {
	if _, exists := s.Layouts[tabID]; exists {
		return s, false
	}
	name := strings.TrimSpace(tabName)
	if name == "" {
		return s, false
	}
	c := s.clone()
	l := domain.Layout{TabID: tabID, TabName: name, Widgets: []domain.Widget{}}
	l.Touch()
	c.Layouts[tabID] = l
	c.ActiveTabID = tabID
	return c, true
}

// SwitchTab makes tabID active. No-op when absent or already active.
func (s State) SwitchTab(tabID string) (State, bool) {
	if tabID == s.ActiveTabID {
		return s, false
	}
	if _, ok := s.Layouts[tabID]; !ok {
		return s, false
	}
	c := s.clone()
	c.ActiveTabID = tabID
	return c, true
}

// RenameTab updates the display name. No-op when the tab is absent or the
// trimmed name is empty.
func (s State) RenameTab(tabID, newName string) (State, bool) {
	name := strings.TrimSpace(newName)
	if name == "" {
		return s, false
	}
	l, ok := s.Layouts[tabID]
	if !ok {
		return s, false
	}
	c := s.clone()
	l = l.Clone()
	l.TabName = name
	l.Touch()
	c.Layouts[tabID] = l
	return c, true
}

// DeleteTab removes a layout. Refused when it is the only one left. When
// the active tab is deleted, the first remaining tab becomes active in the
// same transition.
func (s State) DeleteTab(tabID string) (State, bool) {
	if _, ok := s.Layouts[tabID]; !ok {
		return s, false
	}
	if len(s.Layouts) <= 1 {
		return s, false
	}
	c := s.clone()
	delete(c.Layouts, tabID)
	if c.ActiveTabID == tabID {
		c.ActiveTabID = c.firstTabID()
	}
	return c, true
}

// tabNameFor derives a display name for a layout created implicitly by a
// widget drop on a tab that has no stored entry yet.
func tabNameFor(tabID string) string {
	if len(tabID) > 8 {
		return "Tab " + tabID[:8]
	}
	return "Tab " + tabID
}
