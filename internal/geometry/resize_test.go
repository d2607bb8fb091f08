/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geometry

import "testing"

const (
	cw      = float32(1920)
	ch      = float32(1080)
	minSize = float32(50)
)

func TestComputeResizeBottomRightGrows(t *testing.T) {
	start := R(100, 100, 150, 150)
	got := ComputeResize(HandleBottomRight, start, 40, 40, minSize, cw, ch)
	want := R(100, 100, 190, 190)
	if got != want {
		t.Fatalf("bottomRight +40,+40 = %+v, want %+v", got, want)
	}
}

func TestComputeResizeTopLeftPinsRightEdge(t *testing.T) {
	// Shrinks width below the minimum; the right edge must stay at x+w=250.
	start := R(100, 100, 150, 150)
	got := ComputeResize(HandleTopLeft, start, 200, 0, minSize, cw, ch)
	if got.W != minSize {
		t.Fatalf("width = %v, want %v", got.W, minSize)
	}
	if got.X != 200 {
		t.Fatalf("x = %v, want 200", got.X)
	}
	if got.X+got.W != 250 {
		t.Fatalf("right edge moved: %v", got.X+got.W)
	}
}

func TestComputeResizeBottomPinsTopEdge(t *testing.T) {
	start := R(100, 100, 150, 150)
	got := ComputeResize(HandleBottom, start, 0, -200, minSize, cw, ch)
	if got.H != minSize {
		t.Fatalf("height = %v, want %v", got.H, minSize)
	}
	if got.Y != 100 {
		t.Fatalf("bottom-handle shrink moved y: %v", got.Y)
	}
}

func TestComputeResizeTopAnchorsBottomEdge(t *testing.T) {
	start := R(100, 100, 150, 150)
	got := ComputeResize(HandleTop, start, 0, 300, minSize, cw, ch)
	if got.H != minSize {
		t.Fatalf("height = %v, want %v", got.H, minSize)
	}
	// Bottom edge anchored at y+h=250.
	if got.Y+got.H != 250 {
		t.Fatalf("bottom edge moved: %v", got.Y+got.H)
	}
}

func TestComputeResizeEdgeHandlesAffectSingleAxis(t *testing.T) {
	start := R(100, 100, 150, 150)
	got := ComputeResize(HandleRight, start, 30, 999, minSize, cw, ch)
	if got.H != start.H || got.Y != start.Y {
		t.Fatalf("right handle changed y axis: %+v", got)
	}
	if got.W != 180 {
		t.Fatalf("width = %v, want 180", got.W)
	}

	got = ComputeResize(HandleLeft, start, -20, 999, minSize, cw, ch)
	if got != R(80, 100, 170, 150) {
		t.Fatalf("left handle = %+v", got)
	}
}

func TestComputeResizeCornerAffectsBothAxes(t *testing.T) {
	start := R(200, 200, 100, 100)
	got := ComputeResize(HandleTopRight, start, 50, -30, minSize, cw, ch)
	if got != R(200, 170, 150, 130) {
		t.Fatalf("topRight = %+v", got)
	}
}

func TestComputeResizeClampsAtCanvasEdge(t *testing.T) {
	start := R(1800, 1000, 100, 60)
	got := ComputeResize(HandleBottomRight, start, 500, 500, minSize, cw, ch)
	if got.X+got.W > cw || got.Y+got.H > ch {
		t.Fatalf("resize escaped canvas: %+v", got)
	}
	if got.W != 120 || got.H != 80 {
		t.Fatalf("expected growth to the canvas edge, got %+v", got)
	}
}

func TestComputeResizeClampsNegativeOrigin(t *testing.T) {
	start := R(20, 20, 100, 100)
	got := ComputeResize(HandleTopLeft, start, -80, -80, minSize, cw, ch)
	if got.X != 0 || got.Y != 0 {
		t.Fatalf("origin not clamped: %+v", got)
	}
	if got.W < minSize || got.H < minSize {
		t.Fatalf("min size violated: %+v", got)
	}
}

func TestComputeResizeStartRectNotMutated(t *testing.T) {
	start := R(100, 100, 150, 150)
	_ = ComputeResize(HandleTopLeft, start, 10, 10, minSize, cw, ch)
	if start != R(100, 100, 150, 150) {
		t.Fatalf("start rect mutated: %+v", start)
	}
}

func TestComputeResizeAllHandlesRespectInvariants(t *testing.T) {
	start := R(500, 400, 120, 90)
	deltas := []Pt{{-700, -600}, {700, 600}, {2500, 2500}, {-2500, -2500}}
	for _, h := range Handles {
		for _, d := range deltas {
			got := ComputeResize(h, start, d.X, d.Y, minSize, cw, ch)
			if got.W < minSize || got.H < minSize {
				t.Fatalf("%v delta %+v: min size violated: %+v", h, d, got)
			}
			if got.X < 0 || got.Y < 0 || got.X+got.W > cw || got.Y+got.H > ch {
				t.Fatalf("%v delta %+v: out of canvas: %+v", h, d, got)
			}
		}
	}
}
