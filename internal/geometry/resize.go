/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geometry

// ClampMove clamps a proposed top-left corner so a w×h rectangle stays fully
// inside [0,cw]×[0,ch]. When the rectangle is wider or taller than the
// canvas the lower bound wins (x or y pinned to 0); that is accepted
// behavior, not an error.
func ClampMove(proposedX, proposedY, w, h, cw, ch float32) (float32, float32) {
	return clampF(proposedX, 0, cw-w), clampF(proposedY, 0, ch-h)
}

// ComputeResize applies a drag delta to the rect captured at gesture start
// and returns the resulting rect. The start rect is never recomputed
// incrementally, which keeps repeated pointer moves free of rounding drift.
//
// Handles touching the left edge subtract dx from the width and add dx to
// x; right-edge handles grow the width only. Top and bottom behave
// symmetrically on the y axis. When the minimum size pins a dimension, the
// opposite edge stays anchored: a left-side handle recomputes x so the
// right edge does not move. Canvas bounds are enforced last.
func ComputeResize(h Handle, start Rect, dx, dy, minSize, cw, ch float32) Rect {
	r := start

	if h.touchesLeft() {
		r.X = start.X + dx
		r.W = start.W - dx
	} else if h.touchesRight() {
		r.W = start.W + dx
	}
	if h.touchesTop() {
		r.Y = start.Y + dy
		r.H = start.H - dy
	} else if h.touchesBottom() {
		r.H = start.H + dy
	}

	// Minimum size, anchoring the opposite edge for left/top handles.
	if r.W < minSize {
		if h.touchesLeft() {
			r.X = start.X + (start.W - minSize)
		}
		r.W = minSize
	}
	if r.H < minSize {
		if h.touchesTop() {
			r.Y = start.Y + (start.H - minSize)
		}
		r.H = minSize
	}

	// Canvas bounds.
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	if r.X+r.W > cw {
		r.W = cw - r.X
		if r.W < minSize {
			r.W = minSize
			if h.touchesLeft() {
				r.X = cw - minSize
			}
		}
	}
	if r.Y+r.H > ch {
		r.H = ch - r.Y
		if r.H < minSize {
			r.H = minSize
			if h.touchesTop() {
				r.Y = ch - minSize
			}
		}
	}

	r.W = clampF(r.W, minSize, cw-r.X)
	r.H = clampF(r.H, minSize, ch-r.Y)
	return r
}
