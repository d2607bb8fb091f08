/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package viewport

import (
	"math"
	"testing"

	"screendesigner/internal/geometry"
)

func TestZoomInOutClamps(t *testing.T) {
	v := New()
	for i := 0; i < 50; i++ {
		v.ZoomIn()
	}
	if v.Scale() != MaxScale {
		t.Fatalf("scale = %v, want clamped at %v", v.Scale(), MaxScale)
	}
	for i := 0; i < 100; i++ {
		v.ZoomOut()
	}
	if v.Scale() != MinScale {
		t.Fatalf("scale = %v, want clamped at %v", v.Scale(), MinScale)
	}
}

func TestZoomStepIsMultiplicative(t *testing.T) {
	v := New()
	v.ZoomIn()
	if math.Abs(float64(v.Scale())-1.2) > 1e-6 {
		t.Fatalf("scale after one step = %v, want 1.2", v.Scale())
	}
	v.ZoomOut()
	if math.Abs(float64(v.Scale())-1.0) > 1e-6 {
		t.Fatalf("scale after in+out = %v, want 1.0", v.Scale())
	}
}

func TestZoomRescalesPan(t *testing.T) {
	v := New()
	v.PanBy(100, 50)
	before := v.Transform().Apply(geometry.Pt{X: 0, Y: 0}, geometry.Pt{})
	v.SetScale(2.0)
	after := v.Transform().Apply(geometry.Pt{X: 0, Y: 0}, geometry.Pt{})
	// Canvas origin should project to the same screen point: pan is
	// rescaled by oldScale/newScale on zoom.
	if math.Abs(float64(before.X-after.X)) > 0.01 || math.Abs(float64(before.Y-after.Y)) > 0.01 {
		t.Fatalf("origin moved on zoom: before %v after %v", before, after)
	}
}

func TestPanConvertsScreenDeltaToCanvasUnits(t *testing.T) {
	v := New()
	v.SetScale(2.0)
	v.PanBy(100, 0)
	if math.Abs(float64(v.Pan().X)-50) > 1e-4 {
		t.Fatalf("pan.X = %v, want 50 canvas units for 100px at 2x", v.Pan().X)
	}
}

func TestPanDisabledIsIgnored(t *testing.T) {
	v := New()
	v.SetPanEnabled(false)
	v.PanBy(100, 100)
	if v.Pan() != (geometry.Pt{}) {
		t.Fatalf("pan = %v, want zero while disabled", v.Pan())
	}
	v.SetPanEnabled(true)
	v.PanBy(10, 0)
	if v.Pan().X != 10 {
		t.Fatalf("pan.X = %v after re-enable", v.Pan().X)
	}
}

func TestReset(t *testing.T) {
	v := New()
	v.ZoomIn()
	v.PanBy(40, 40)
	v.Reset()
	if v.Scale() != DefaultScale || v.Pan() != (geometry.Pt{}) {
		t.Fatalf("after reset: scale=%v pan=%v", v.Scale(), v.Pan())
	}
}

func TestSetStepIgnoresDegenerateValues(t *testing.T) {
	v := New()
	v.SetStep(0.9)
	v.ZoomIn()
	if math.Abs(float64(v.Scale())-1.2) > 1e-6 {
		t.Fatalf("degenerate step accepted: scale = %v", v.Scale())
	}
}
