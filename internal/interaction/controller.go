/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package interaction drives pointer gestures on the designer canvas: press
// resolves what was grabbed (a resize handle, a widget body, or empty
// canvas), move streams clamped mutations into the store, release ends the
// gesture. One gesture is in flight at a time.
package interaction

import (
	"log/slog"

	"screendesigner/internal/domain"
	"screendesigner/internal/geometry"
	applog "screendesigner/internal/log"
)

// HandleHitRadius is half the side of a handle's square hit region, in
// canvas units.
const HandleHitRadius float32 = 6

type dragMode int

const (
	dragNone dragMode = iota
	dragMove
	dragResize
)

// Mutator is the slice of the store the controller drives.
type Mutator interface {
	AddWidget(typ string, x, y float64) domain.Widget
	MoveWidget(widgetID string, x, y float64)
	ResizeWidget(widgetID string, width, height float64)
}

// Camera is the slice of the viewport the controller reads and gates.
type Camera interface {
	Transform() geometry.Transform
	SetPanEnabled(on bool)
}

// Controller owns the gesture state machine. Not safe for concurrent use;
// the UI event loop is the only caller.
type Controller struct {
	store Mutator
	cam   Camera
	log   *slog.Logger

	origin geometry.Pt // canvas element's screen origin

	mode         dragMode
	widgetID     string
	handle       geometry.Handle
	startRect    geometry.Rect // widget bounds at press, resize only
	startPointer geometry.Pt   // pointer at press in canvas space, resize only
	grabOffset   geometry.Pt   // pointer minus widget origin, move only
}

// New creates a controller mutating store and gating cam.
func New(store Mutator, cam Camera) *Controller {
	return &Controller{store: store, cam: cam, log: applog.WithComponent("interaction")}
}

// SetOrigin records the canvas element's screen origin used for pointer
// conversion. The UI calls this whenever the canvas is laid out.
func (c *Controller) SetOrigin(o geometry.Pt) { c.origin = o }

// Dragging reports whether a gesture is in flight.
func (c *Controller) Dragging() bool { return c.mode != dragNone }

// ActiveWidget returns the id of the widget a gesture is acting on, or ""
// when idle.
func (c *Controller) ActiveWidget() string {
	if c.mode == dragNone {
		return ""
	}
	return c.widgetID
}

// Press starts a gesture at a screen point. Widgets are hit-tested topmost
// first (last in slice is topmost); for each, handles claim the press before
// the body does, so resizing wins over moving on the border. Returns true
// when a widget or handle was grabbed; false means the press fell on empty
// canvas and the caller may start a pan instead.
func (c *Controller) Press(screen geometry.Pt, widgets []domain.Widget) bool {
	local := geometry.ToCanvasSpace(screen, c.cam.Transform(), c.origin)

	for i := len(widgets) - 1; i >= 0; i-- {
		w := widgets[i]
		r := widgetRect(w)
		rel := local.Sub(geometry.Pt{X: r.X, Y: r.Y})
		if h, ok := geometry.HandleAt(rel, r.W, r.H, HandleHitRadius); ok {
			c.mode = dragResize
			c.widgetID = w.ID
			c.handle = h
			c.startRect = r
			c.startPointer = local
			c.cam.SetPanEnabled(false)
			c.log.Debug("resize start",
				slog.String("widget_id", w.ID), slog.String("handle", h.String()))
			return true
		}
		if r.Contains(local) {
			c.mode = dragMove
			c.widgetID = w.ID
			c.grabOffset = rel
			c.cam.SetPanEnabled(false)
			c.log.Debug("move start", slog.String("widget_id", w.ID))
			return true
		}
	}
	return false
}

// Move advances the gesture to a new pointer position. The transform is
// re-read on every event so a zoom changed mid-drag does not skew tracking.
// When the grabbed widget no longer exists the gesture cancels silently; a
// stale drag racing a delete is expected.
func (c *Controller) Move(screen geometry.Pt, widgets []domain.Widget) {
	if c.mode == dragNone {
		return
	}
	if widgetIndex(widgets, c.widgetID) < 0 {
		c.log.Debug("drag target gone, cancelling", slog.String("widget_id", c.widgetID))
		c.Cancel()
		return
	}
	local := geometry.ToCanvasSpace(screen, c.cam.Transform(), c.origin)

	switch c.mode {
	case dragMove:
		prop := local.Sub(c.grabOffset)
		i := widgetIndex(widgets, c.widgetID)
		w := widgets[i]
		x, y := geometry.ClampMove(prop.X, prop.Y, float32(w.Width), float32(w.Height),
			domain.CanvasWidth, domain.CanvasHeight)
		c.store.MoveWidget(c.widgetID, float64(x), float64(y))
	case dragResize:
		d := local.Sub(c.startPointer)
		r := geometry.ComputeResize(c.handle, c.startRect, d.X, d.Y,
			domain.MinWidgetSize, domain.CanvasWidth, domain.CanvasHeight)
		// Compare against the widget's current position, not the press-time
		// rect: a previous move event may already have shifted it, and
		// skipping the move-back would unpin the anchored edge.
		w := widgets[widgetIndex(widgets, c.widgetID)]
		if r.X != float32(w.X) || r.Y != float32(w.Y) {
			c.store.MoveWidget(c.widgetID, float64(r.X), float64(r.Y))
		}
		c.store.ResizeWidget(c.widgetID, float64(r.W), float64(r.H))
	}
}

// Release ends the gesture and re-enables canvas panning.
func (c *Controller) Release() {
	if c.mode == dragNone {
		return
	}
	c.mode = dragNone
	c.widgetID = ""
	c.cam.SetPanEnabled(true)
}

// Cancel aborts the gesture without a final mutation. Mutations already
// streamed stay; there is no rollback.
func (c *Controller) Cancel() {
	c.mode = dragNone
	c.widgetID = ""
	c.cam.SetPanEnabled(true)
}

// DropWidget creates a widget of the given type at a screen point, clamping
// the drop position so the new widget lies fully inside the canvas.
func (c *Controller) DropWidget(typ string, screen geometry.Pt) domain.Widget {
	local := geometry.ToCanvasSpace(screen, c.cam.Transform(), c.origin)
	x, y := geometry.ClampMove(local.X, local.Y,
		domain.DefaultWidgetSize, domain.DefaultWidgetSize,
		domain.CanvasWidth, domain.CanvasHeight)
	w := c.store.AddWidget(typ, float64(x), float64(y))
	c.log.Debug("widget dropped",
		slog.String("widget_id", w.ID), slog.String("type", typ))
	return w
}

func widgetRect(w domain.Widget) geometry.Rect {
	return geometry.R(float32(w.X), float32(w.Y), float32(w.Width), float32(w.Height))
}

func widgetIndex(widgets []domain.Widget, id string) int {
	for i := range widgets {
		if widgets[i].ID == id {
			return i
		}
	}
	return -1
}
