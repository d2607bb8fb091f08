/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geometry

// Handle identifies one of the eight fixed resize anchors on a widget's
// bounding box: four corners plus four edge midpoints.
type Handle int

const (
	HandleTopLeft Handle = iota
	HandleTop
	HandleTopRight
	HandleRight
	HandleBottomRight
	HandleBottom
	HandleBottomLeft
	HandleLeft
)

// Handles lists all eight anchors in clockwise order from the top-left.
var Handles = []Handle{
	HandleTopLeft, HandleTop, HandleTopRight, HandleRight,
	HandleBottomRight, HandleBottom, HandleBottomLeft, HandleLeft,
}

func (h Handle) String() string {
	switch h {
	case HandleTopLeft:
		return "topLeft"
	case HandleTop:
		return "top"
	case HandleTopRight:
		return "topRight"
	case HandleRight:
		return "right"
	case HandleBottomRight:
		return "bottomRight"
	case HandleBottom:
		return "bottom"
	case HandleBottomLeft:
		return "bottomLeft"
	case HandleLeft:
		return "left"
	}
	return "unknown"
}

// touchesLeft reports whether the handle sits on the left edge.
func (h Handle) touchesLeft() bool {
	return h == HandleTopLeft || h == HandleLeft || h == HandleBottomLeft
}

func (h Handle) touchesRight() bool {
	return h == HandleTopRight || h == HandleRight || h == HandleBottomRight
}

func (h Handle) touchesTop() bool {
	return h == HandleTopLeft || h == HandleTop || h == HandleTopRight
}

func (h Handle) touchesBottom() bool {
	return h == HandleBottomLeft || h == HandleBottom || h == HandleBottomRight
}

// Anchor returns the handle's anchor position on a w×h bounding box in
// widget-local coordinates (corners plus edge midpoints).
func (h Handle) Anchor(w, hgt float32) Pt {
	switch h {
	case HandleTopLeft:
		return Pt{0, 0}
	case HandleTop:
		return Pt{w / 2, 0}
	case HandleTopRight:
		return Pt{w, 0}
	case HandleRight:
		return Pt{w, hgt / 2}
	case HandleBottomRight:
		return Pt{w, hgt}
	case HandleBottom:
		return Pt{w / 2, hgt}
	case HandleBottomLeft:
		return Pt{0, hgt}
	case HandleLeft:
		return Pt{0, hgt / 2}
	}
	return Pt{}
}

// handleHitOrder tests corners before edge midpoints so that a corner wins
// when regions overlap on small widgets.
var handleHitOrder = []Handle{
	HandleTopLeft, HandleTopRight, HandleBottomLeft, HandleBottomRight,
	HandleTop, HandleRight, HandleBottom, HandleLeft,
}

// HandleAt returns the handle whose square hit region of side 2×hitRadius
// contains local. Hit regions may extend outside [0,w]×[0,h].
func HandleAt(local Pt, w, h, hitRadius float32) (Handle, bool) {
	for _, c := range handleHitOrder {
		a := c.Anchor(w, h)
		if absF(local.X-a.X) <= hitRadius && absF(local.Y-a.Y) <= hitRadius {
			return c, true
		}
	}
	return 0, false
}

// IsPointOnHandle reports whether local falls on any of the eight handle
// hit regions. Used to decide "start a move" vs "a resize handle will claim
// this press" before a drag begins.
func IsPointOnHandle(local Pt, w, h, hitRadius float32) bool {
	_, ok := HandleAt(local, w, h, hitRadius)
	return ok
}
