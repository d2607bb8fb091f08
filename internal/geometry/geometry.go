/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package geometry holds the pure coordinate math for the designer canvas:
// screen/canvas conversion under a zoom/pan transform, boundary-clamped
// moves and eight-handle resizes. Float values use float32 for compactness
// and to align with many UI libs. All functions are stateless.
package geometry

import "math"

// Pt is a 2D point.
type Pt struct{ X, Y float32 }

// Sub returns p - q.
func (p Pt) Sub(q Pt) Pt { return Pt{p.X - q.X, p.Y - q.Y} }

// Add returns p + q.
func (p Pt) Add(q Pt) Pt { return Pt{p.X + q.X, p.Y + q.Y} }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float32
	W, H float32
}

func R(x, y, w, h float32) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Contains(p Pt) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Transform is the viewport mapping from canvas space to screen space:
//
//	screen = origin + (canvas + pan) * scale
//
// Scale and pan invert in the exact reverse order on the way back, otherwise
// drag tracking drifts under zoom.
type Transform struct {
	Scale float32
	Pan   Pt
}

// Identity is the 1:1 transform with no pan.
var Identity = Transform{Scale: 1}

// Apply converts a canvas-space point to screen space relative to origin.
func (t Transform) Apply(canvas Pt, origin Pt) Pt {
	return Pt{
		X: origin.X + (canvas.X+t.Pan.X)*t.Scale,
		Y: origin.Y + (canvas.Y+t.Pan.Y)*t.Scale,
	}
}

// ToCanvasSpace converts a screen/pointer point into canvas-local
// coordinates: subtract the canvas element's screen origin, divide by the
// scale, then subtract the pan offset. Exact, no snapping.
func ToCanvasSpace(screen Pt, t Transform, origin Pt) Pt {
	s := t.Scale
	if s == 0 {
		s = 1
	}
	return Pt{
		X: (screen.X-origin.X)/s - t.Pan.X,
		Y: (screen.Y-origin.Y)/s - t.Pan.Y,
	}
}

// clampF clamps v into [lo, hi]. When hi < lo the lower bound wins.
func clampF(v, lo, hi float32) float32 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func absF(v float32) float32 { return float32(math.Abs(float64(v))) }
