/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package store

import (
	"testing"

	"screendesigner/internal/domain"
)

func twoTabState() State {
	s := NewState().LoadLayouts(map[string]domain.Layout{
		"aaa": {TabID: "aaa", TabName: "First", Widgets: []domain.Widget{}},
		"bbb": {TabID: "bbb", TabName: "Second", Widgets: []domain.Widget{}},
	})
	return s
}

func TestLoadLayoutsEmptySynthesizesDefaultTab(t *testing.T) {
	s := NewState().LoadLayouts(nil)
	if len(s.Layouts) != 1 {
		t.Fatalf("layouts = %d, want 1", len(s.Layouts))
	}
	l, ok := s.ActiveLayout()
	if !ok {
		t.Fatalf("active tab %q does not resolve", s.ActiveTabID)
	}
	if l.TabName != DefaultTabName {
		t.Fatalf("tab name = %q, want %q", l.TabName, DefaultTabName)
	}
	if len(l.Widgets) != 0 {
		t.Fatalf("default tab should start empty, got %d widgets", len(l.Widgets))
	}
}

func TestLoadLayoutsActivatesFirstSortedTab(t *testing.T) {
	s := twoTabState()
	if s.ActiveTabID != "aaa" {
		t.Fatalf("active = %q, want aaa", s.ActiveTabID)
	}
	if s.IsLoading || s.Err != "" {
		t.Fatalf("load flags not cleared: %+v", s)
	}
}

func TestLoadLayoutsKeepsSurvivingActiveTab(t *testing.T) {
	s := twoTabState()
	s, _ = s.SwitchTab("bbb")
	s = s.LoadLayouts(map[string]domain.Layout{
		"bbb": {TabID: "bbb", TabName: "Second"},
		"ccc": {TabID: "ccc", TabName: "Third"},
	})
	if s.ActiveTabID != "bbb" {
		t.Fatalf("active = %q, want bbb", s.ActiveTabID)
	}
}

func TestAddWidgetDefaults(t *testing.T) {
	s := NewState().LoadLayouts(nil)
	s, w := s.AddWidget("B", 300, 200)
	if w.ID == "" {
		t.Fatal("widget id not assigned")
	}
	if w.Type != "B" || w.X != 300 || w.Y != 200 {
		t.Fatalf("widget = %+v", w)
	}
	if w.Width != domain.DefaultWidgetSize || w.Height != domain.DefaultWidgetSize {
		t.Fatalf("size = %gx%g, want default", w.Width, w.Height)
	}
	l, _ := s.ActiveLayout()
	if len(l.Widgets) != 1 || l.Widgets[0].ID != w.ID {
		t.Fatalf("widget not appended: %+v", l.Widgets)
	}
	if l.LastUpdated == nil {
		t.Fatal("lastUpdated not touched")
	}
}

func TestAddWidgetDoesNotMutateReceiver(t *testing.T) {
	before := NewState().LoadLayouts(nil)
	_, _ = before.AddWidget("A", 0, 0)
	l, _ := before.ActiveLayout()
	if len(l.Widgets) != 0 {
		t.Fatalf("receiver mutated: %d widgets", len(l.Widgets))
	}
}

func TestMoveAndResizeWidget(t *testing.T) {
	s := NewState().LoadLayouts(nil)
	s, w := s.AddWidget("A", 10, 10)

	s, ok := s.MoveWidget(w.ID, 400, 500)
	if !ok {
		t.Fatal("move reported no-op")
	}
	s, ok = s.ResizeWidget(w.ID, 220, 180)
	if !ok {
		t.Fatal("resize reported no-op")
	}
	l, _ := s.ActiveLayout()
	got := l.Widgets[0]
	if got.X != 400 || got.Y != 500 || got.Width != 220 || got.Height != 180 {
		t.Fatalf("widget = %+v", got)
	}
}

func TestMutationsOnUnknownWidgetAreNoOps(t *testing.T) {
	s := NewState().LoadLayouts(nil)
	s, _ = s.AddWidget("A", 0, 0)

	if _, ok := s.MoveWidget("nope", 1, 1); ok {
		t.Fatal("move of unknown id succeeded")
	}
	if _, ok := s.ResizeWidget("nope", 60, 60); ok {
		t.Fatal("resize of unknown id succeeded")
	}
	if _, ok := s.DeleteWidget("nope"); ok {
		t.Fatal("delete of unknown id succeeded")
	}
}

func TestDeleteWidget(t *testing.T) {
	s := NewState().LoadLayouts(nil)
	s, w1 := s.AddWidget("A", 0, 0)
	s, w2 := s.AddWidget("B", 100, 0)

	s, ok := s.DeleteWidget(w1.ID)
	if !ok {
		t.Fatal("delete reported no-op")
	}
	l, _ := s.ActiveLayout()
	if len(l.Widgets) != 1 || l.Widgets[0].ID != w2.ID {
		t.Fatalf("widgets = %+v", l.Widgets)
	}
}

func TestCreateTabActivates(t *testing.T) {
	s := NewState().LoadLayouts(nil)
	s, ok := s.CreateTab("tab-2", "Screen 2")
	if !ok {
		t.Fatal("create reported no-op")
	}
	if s.ActiveTabID != "tab-2" {
		t.Fatalf("active = %q, want tab-2", s.ActiveTabID)
	}
	if len(s.Layouts) != 2 {
		t.Fatalf("layouts = %d, want 2", len(s.Layouts))
	}
}

func TestCreateTabRejectsDuplicateAndBlankName(t *testing.T) {
	s := twoTabState()
	if _, ok := s.CreateTab("aaa", "Clash"); ok {
		t.Fatal("duplicate tab id accepted")
	}
	if _, ok := s.CreateTab("ccc", "   "); ok {
		t.Fatal("blank tab name accepted")
	}
}

func TestSwitchTab(t *testing.T) {
	s := twoTabState()
	s, ok := s.SwitchTab("bbb")
	if !ok || s.ActiveTabID != "bbb" {
		t.Fatalf("switch failed: ok=%v active=%q", ok, s.ActiveTabID)
	}
	if _, ok := s.SwitchTab("bbb"); ok {
		t.Fatal("switch to already-active tab is not a no-op")
	}
	if _, ok := s.SwitchTab("zzz"); ok {
		t.Fatal("switch to unknown tab succeeded")
	}
}

func TestRenameTab(t *testing.T) {
	s := twoTabState()
	s, ok := s.RenameTab("bbb", "  Dashboard  ")
	if !ok {
		t.Fatal("rename reported no-op")
	}
	if s.Layouts["bbb"].TabName != "Dashboard" {
		t.Fatalf("name = %q", s.Layouts["bbb"].TabName)
	}
	if _, ok := s.RenameTab("bbb", "   "); ok {
		t.Fatal("blank rename accepted")
	}
	if _, ok := s.RenameTab("zzz", "X"); ok {
		t.Fatal("rename of unknown tab succeeded")
	}
}

func TestDeleteTabRepointsActive(t *testing.T) {
	s := twoTabState() // active: aaa
	s, ok := s.DeleteTab("aaa")
	if !ok {
		t.Fatal("delete reported no-op")
	}
	if s.ActiveTabID != "bbb" {
		t.Fatalf("active = %q, want bbb", s.ActiveTabID)
	}
	if _, present := s.Layouts["aaa"]; present {
		t.Fatal("deleted tab still present")
	}
}

func TestDeleteTabRefusesLastTab(t *testing.T) {
	s := NewState().LoadLayouts(nil)
	if _, ok := s.DeleteTab(s.ActiveTabID); ok {
		t.Fatal("last tab was deleted")
	}
}

func TestActiveTabAlwaysResolves(t *testing.T) {
	// Invariant sweep: after any sequence of structural ops the active tab
	// must key an existing layout.
	s := NewState().LoadLayouts(nil)
	check := func(step string) {
		t.Helper()
		if len(s.Layouts) > 0 {
			if _, ok := s.Layouts[s.ActiveTabID]; !ok {
				t.Fatalf("%s: active %q dangling, tabs %v", step, s.ActiveTabID, s.TabIDs())
			}
		}
	}
	s, _ = s.CreateTab("t2", "Two")
	check("create t2")
	s, _ = s.CreateTab("t3", "Three")
	check("create t3")
	s, _ = s.SwitchTab("t2")
	check("switch t2")
	s, _ = s.DeleteTab("t2")
	check("delete active t2")
	s, _ = s.DeleteTab("t3")
	check("delete t3")
	s, _ = s.DeleteTab(s.ActiveTabID)
	check("refused last delete")
}
