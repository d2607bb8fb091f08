/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestWidgetRoundTrip(t *testing.T) {
	w := Widget{ID: "w1", Type: "A", X: 10.5, Y: 20, Width: 100, Height: 75.25}
	b, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Widget
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != w {
		t.Fatalf("round-trip changed widget: %+v != %+v", got, w)
	}
}

func TestWidgetAcceptsIntegerNumbers(t *testing.T) {
	// Documents written by other clients may encode whole numbers without a
	// fractional part; reads must accept both.
	raw := `{"id":"w1","type":"B","x":50,"y":60,"width":100,"height":100}`
	var w Widget
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if w.X != 50 || w.Y != 60 || w.Width != 100 || w.Height != 100 {
		t.Fatalf("integer fields decoded wrong: %+v", w)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := Layout{
		TabID:   "t1",
		TabName: "Home",
		Widgets: []Widget{
			{ID: "w1", Type: "A", X: 0, Y: 0, Width: 50, Height: 50},
			{ID: "w2", Type: "D", X: 100, Y: 200, Width: 300, Height: 150},
		},
		LastUpdated: &ts,
	}
	b, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Layout
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Fatalf("round-trip changed layout:\n got %+v\nwant %+v", got, l)
	}
}

func TestLayoutNullLastUpdated(t *testing.T) {
	raw := `{"tabId":"t1","tabName":"Home","widgets":[],"lastUpdated":null}`
	var l Layout
	if err := json.Unmarshal([]byte(raw), &l); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if l.LastUpdated != nil {
		t.Fatalf("null lastUpdated decoded as %v", l.LastUpdated)
	}
}

func TestWidgetInBounds(t *testing.T) {
	cases := []struct {
		w    Widget
		want bool
	}{
		{Widget{X: 0, Y: 0, Width: 50, Height: 50}, true},
		{Widget{X: 1820, Y: 980, Width: 100, Height: 100}, true},
		{Widget{X: -1, Y: 0, Width: 100, Height: 100}, false},
		{Widget{X: 1821, Y: 0, Width: 100, Height: 100}, false},
		{Widget{X: 0, Y: 0, Width: 49, Height: 100}, false},
		{Widget{X: 0, Y: 0, Width: 100, Height: 49}, false},
	}
	for i, c := range cases {
		if got := c.w.InBounds(); got != c.want {
			t.Fatalf("case %d: InBounds(%+v) = %v, want %v", i, c.w, got, c.want)
		}
	}
}

func TestLayoutCloneIsDeep(t *testing.T) {
	l := Layout{TabID: "t1", Widgets: []Widget{{ID: "w1", X: 1}}}
	c := l.Clone()
	c.Widgets[0].X = 99
	if l.Widgets[0].X != 1 {
		t.Fatalf("Clone shares widget slice")
	}
}

func TestWidgetIndex(t *testing.T) {
	l := Layout{Widgets: []Widget{{ID: "a"}, {ID: "b"}}}
	if l.WidgetIndex("b") != 1 {
		t.Fatalf("WidgetIndex(b) = %d", l.WidgetIndex("b"))
	}
	if l.WidgetIndex("zz") != -1 {
		t.Fatalf("missing id should be -1")
	}
}
