/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package viewport tracks the camera over the canvas: a zoom scale and a
// pan offset in canvas units. It never touches layout state; widgets keep
// their canvas coordinates while the viewport changes how they are shown.
package viewport

import "screendesigner/internal/geometry"

// Zoom bounds. MinScale allows shrinking the full canvas into a small
// window; MaxScale caps magnification at 3x.
const (
	MinScale     float32 = 0.1
	MaxScale     float32 = 3.0
	DefaultStep  float32 = 1.2
	DefaultScale float32 = 1.0
)

// Viewport is a mutable camera. Not safe for concurrent use; the UI event
// loop is the only caller.
type Viewport struct {
	scale      float32
	pan        geometry.Pt
	step       float32
	panEnabled bool
}

// New returns a viewport at 1:1 scale with panning enabled.
func New() *Viewport {
	return &Viewport{scale: DefaultScale, step: DefaultStep, panEnabled: true}
}

// SetStep overrides the multiplicative zoom step. Values at or below 1 are
// ignored.
func (v *Viewport) SetStep(step float32) {
	if step > 1 {
		v.step = step
	}
}

// Scale returns the current zoom factor.
func (v *Viewport) Scale() float32 { return v.scale }

// Pan returns the current pan offset in canvas units.
func (v *Viewport) Pan() geometry.Pt { return v.pan }

// Transform returns the screen mapping for the current camera.
func (v *Viewport) Transform() geometry.Transform {
	return geometry.Transform{Scale: v.scale, Pan: v.pan}
}

// ZoomIn magnifies by one step, clamped to MaxScale.
func (v *Viewport) ZoomIn() { v.setScale(v.scale * v.step) }

// ZoomOut shrinks by one step, clamped to MinScale.
func (v *Viewport) ZoomOut() { v.setScale(v.scale / v.step) }

// SetScale jumps to an absolute zoom factor, clamped to the valid range.
func (v *Viewport) SetScale(s float32) { v.setScale(s) }

// setScale clamps and rescales the pan so the view keeps showing roughly
// the same canvas region after the zoom change.
func (v *Viewport) setScale(s float32) {
	if s < MinScale {
		s = MinScale
	}
	if s > MaxScale {
		s = MaxScale
	}
	if s == v.scale {
		return
	}
	old := v.scale
	v.scale = s
	v.pan = geometry.Pt{X: v.pan.X * old / s, Y: v.pan.Y * old / s}
}

// PanBy shifts the camera by a screen-space delta. Ignored while panning is
// disabled (a widget drag owns the pointer).
func (v *Viewport) PanBy(dxScreen, dyScreen float32) {
	if !v.panEnabled || v.scale == 0 {
		return
	}
	v.pan.X += dxScreen / v.scale
	v.pan.Y += dyScreen / v.scale
}

// SetPanEnabled gates PanBy. The interaction controller disables panning
// for the duration of a widget drag so the canvas does not slide under it.
func (v *Viewport) SetPanEnabled(on bool) { v.panEnabled = on }

// PanEnabled reports whether PanBy currently has any effect.
func (v *Viewport) PanEnabled() bool { return v.panEnabled }

// Reset restores the 1:1 scale and zero pan.
func (v *Viewport) Reset() {
	v.scale = DefaultScale
	v.pan = geometry.Pt{}
}
