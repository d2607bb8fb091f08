/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the core data model for the screen designer: widgets
// positioned on a fixed-size canvas, grouped into independently named tabs.
// The structs serialize to the JSON documents stored per user in the remote
// document store.

import "time"

// Canvas dimensions are fixed logical units, independent of zoom, pan and
// screen size. Widget coordinates are always expressed in this space.
const (
	CanvasWidth  = 1920.0
	CanvasHeight = 1080.0

	// MinWidgetSize is the smallest width/height a widget may have.
	MinWidgetSize = 50.0
	// DefaultWidgetSize is the width/height of a freshly dropped widget.
	DefaultWidgetSize = 100.0
)

// WidgetTypes is the fixed palette. The type tag is purely cosmetic; it
// drives color and label only.
var WidgetTypes = []string{"A", "B", "C", "D"}

// Widget is a positioned, sized rectangle on a canvas. X and Y address the
// top-left corner in canvas units.
type Widget struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// InBounds reports whether the widget satisfies the canvas invariants:
// non-negative origin, fully inside the canvas, at least the minimum size.
func (w Widget) InBounds() bool {
	return w.X >= 0 && w.Y >= 0 &&
		w.X+w.Width <= CanvasWidth && w.Y+w.Height <= CanvasHeight &&
		w.Width >= MinWidgetSize && w.Height >= MinWidgetSize
}

// Layout is one independent canvas design, shown as a tab. Widget order is
// paint order; later entries draw on top.
type Layout struct {
	TabID       string     `json:"tabId"`
	TabName     string     `json:"tabName"`
	Widgets     []Widget   `json:"widgets"`
	LastUpdated *time.Time `json:"lastUpdated"`
}

// Clone returns a deep copy; the widget slice is never shared.
func (l Layout) Clone() Layout {
	c := l
	c.Widgets = append([]Widget(nil), l.Widgets...)
	if l.LastUpdated != nil {
		ts := *l.LastUpdated
		c.LastUpdated = &ts
	}
	return c
}

// WidgetIndex returns the index of the widget with the given id, or -1.
func (l Layout) WidgetIndex(id string) int {
	for i := range l.Widgets {
		if l.Widgets[i].ID == id {
			return i
		}
	}
	return -1
}

// Touch stamps LastUpdated with the current UTC time.
func (l *Layout) Touch() {
	now := time.Now().UTC()
	l.LastUpdated = &now
}
