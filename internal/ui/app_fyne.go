//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"screendesigner/internal/cache"
	"screendesigner/internal/config"
	"screendesigner/internal/crash"
	"screendesigner/internal/domain"
	"screendesigner/internal/geometry"
	"screendesigner/internal/identity"
	"screendesigner/internal/interaction"
	applog "screendesigner/internal/log"
	"screendesigner/internal/persist"
	"screendesigner/internal/store"
	"screendesigner/internal/telemetry"
	"screendesigner/internal/viewport"
)

// Run starts the Fyne-based desktop designer.
func Run() error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	cfg, token, err := config.Load()
	if err != nil {
		return err
	}
	dataDir, err := config.DataDir()
	if err != nil {
		return err
	}

	var st *store.Store
	defer func() {
		crash.Recover(dataDir, func() map[string]domain.Layout {
			if st == nil {
				return nil
			}
			return st.Snapshot().Layouts
		})
	}()

	userID, err := identity.New(dataDir).UserID()
	if err != nil {
		return fmt.Errorf("resolve identity: %w", err)
	}

	gw := persist.NewClient(cfg.Backend.BaseURL, token)
	opts := []store.Option{}
	if c, err := cache.Open(dataDir); err != nil {
		l.Warn("layout cache unavailable", slog.Any("err", err))
	} else {
		defer func() { _ = c.Close() }()
		opts = append(opts, store.WithCache(c))
	}
	st = store.New(gw, userID, opts...)

	vp := viewport.New()
	vp.SetStep(float32(cfg.Designer.ZoomStep))
	ctrl := interaction.New(st, vp)

	fyneApp := app.NewWithID("screendesigner")
	w := fyneApp.NewWindow("Screen Designer")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1280)
	winH := prefs.IntWithFallback("window.height", 800)
	if winW < 800 {
		winW = 800
	}
	if winH < 600 {
		winH = 600
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Ready")
	dc := NewDesignerCanvas(st, vp, ctrl)
	dc.gridSpacing = float32(cfg.Designer.GridSpacing)

	// Palette: one button per widget type, arming the next canvas tap.
	paletteBtns := make([]fyne.CanvasObject, 0, len(domain.WidgetTypes)+1)
	paletteBtns = append(paletteBtns, widget.NewLabel("Palette"))
	for _, typ := range domain.WidgetTypes {
		typ := typ
		paletteBtns = append(paletteBtns, widget.NewButton("Widget "+typ, func() {
			dc.ArmType(typ)
			status.SetText("Click the canvas to place widget " + typ)
		}))
	}
	palette := container.NewVBox(paletteBtns...)

	// Tab bar rebuilt from every snapshot.
	tabBar := container.NewHBox()
	rebuildTabs := func(s store.State) {
		tabBar.Objects = nil
		for _, tabID := range s.TabIDs() {
			tabID := tabID
			lName := s.Layouts[tabID].TabName
			btn := widget.NewButton(lName, func() { st.SwitchTab(tabID) })
			if tabID == s.ActiveTabID {
				btn.Importance = widget.HighImportance
			}
			tabBar.Add(btn)
		}
		tabBar.Add(widget.NewButton("+", func() {
			entry := widget.NewEntry()
			entry.SetText(fmt.Sprintf("Tab %d", len(st.Snapshot().Layouts)+1))
			dialog.ShowForm("New tab", "Create", "Cancel",
				[]*widget.FormItem{widget.NewFormItem("Name", entry)},
				func(ok bool) {
					if ok {
						st.CreateTab(entry.Text)
						telemetry.Event("tab_created", nil)
					}
				}, w)
		}))
		tabBar.Refresh()
	}

	renameTab := func() {
		s := st.Snapshot()
		lay, ok := s.ActiveLayout()
		if !ok {
			return
		}
		entry := widget.NewEntry()
		entry.SetText(lay.TabName)
		dialog.ShowForm("Rename tab", "Rename", "Cancel",
			[]*widget.FormItem{widget.NewFormItem("Name", entry)},
			func(ok bool) {
				if ok {
					st.RenameTab(lay.TabID, entry.Text)
				}
			}, w)
	}
	deleteTab := func() {
		s := st.Snapshot()
		lay, ok := s.ActiveLayout()
		if !ok {
			return
		}
		if len(s.Layouts) <= 1 {
			status.SetText("Cannot delete the last tab")
			return
		}
		dialog.ShowConfirm("Delete tab", "Delete \""+lay.TabName+"\" and all its widgets?", func(ok bool) {
			if ok {
				st.DeleteTab(lay.TabID)
			}
		}, w)
	}

	toolbar := container.NewHBox(
		widget.NewButton("Zoom -", func() { vp.ZoomOut(); dc.Refresh() }),
		widget.NewButton("Zoom +", func() { vp.ZoomIn(); dc.Refresh() }),
		widget.NewButton("Reset view", func() { vp.Reset(); dc.Refresh() }),
		widget.NewSeparator(),
		widget.NewButton("Rename tab", renameTab),
		widget.NewButton("Delete tab", deleteTab),
	)

	unsubscribe := st.Subscribe(func(s store.State) {
		fyne.Do(func() {
			lay, _ := s.ActiveLayout()
			dc.SetWidgets(lay.Widgets)
			rebuildTabs(s)
			switch {
			case s.IsLoading:
				status.SetText("Loading layouts…")
			case s.Err != "":
				status.SetText("Error: " + s.Err)
			default:
				status.SetText("Ready")
			}
		})
	})
	defer unsubscribe()

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyDelete || ev.Name == fyne.KeyBackSpace {
			if id := dc.Selected(); id != "" {
				st.DeleteWidget(id)
				dc.ClearSelection()
			}
		}
	})

	w.SetContent(container.NewBorder(
		container.NewVBox(toolbar, tabBar), status, palette, nil, dc))

	go st.Load(context.Background())

	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		st.Flush()
		telemetry.Event("app_closed", nil)
	})

	w.ShowAndRun()
	return nil
}

// DesignerCanvas draws the fixed 1920x1080 canvas with its widgets and
// routes pointer gestures to the interaction controller.
type DesignerCanvas struct {
	widget.BaseWidget

	st   *store.Store
	vp   *viewport.Viewport
	ctrl *interaction.Controller

	widgets     []domain.Widget
	selected    string
	armedType   string
	gridSpacing float32
}

func NewDesignerCanvas(st *store.Store, vp *viewport.Viewport, ctrl *interaction.Controller) *DesignerCanvas {
	dc := &DesignerCanvas{st: st, vp: vp, ctrl: ctrl, gridSpacing: 40}
	dc.ExtendBaseWidget(dc)
	return dc
}

// SetWidgets replaces the rendered widget list with a fresh snapshot.
func (dc *DesignerCanvas) SetWidgets(ws []domain.Widget) {
	dc.widgets = ws
	if dc.selected != "" && indexOf(ws, dc.selected) < 0 {
		dc.selected = ""
	}
	dc.Refresh()
}

// ArmType makes the next canvas tap drop a widget of the given type.
func (dc *DesignerCanvas) ArmType(typ string) { dc.armedType = typ }

// Selected returns the currently selected widget id, or "".
func (dc *DesignerCanvas) Selected() string { return dc.selected }

// ClearSelection drops the selection.
func (dc *DesignerCanvas) ClearSelection() {
	dc.selected = ""
	dc.Refresh()
}

func (dc *DesignerCanvas) PreferredSize() fyne.Size { return fyne.NewSize(960, 540) }

// origin returns the screen position of the canvas top-left corner before
// pan: the board is centered in the widget at the current zoom.
func (dc *DesignerCanvas) origin() geometry.Pt {
	size := dc.Size()
	s := dc.vp.Scale()
	return geometry.Pt{
		X: size.Width/2 - domain.CanvasWidth*s/2,
		Y: size.Height/2 - domain.CanvasHeight*s/2,
	}
}

// Tapped places an armed widget or selects the widget under the pointer.
func (dc *DesignerCanvas) Tapped(e *fyne.PointEvent) {
	dc.ctrl.SetOrigin(dc.origin())
	p := geometry.Pt{X: e.Position.X, Y: e.Position.Y}
	if dc.armedType != "" {
		w := dc.ctrl.DropWidget(dc.armedType, p)
		dc.armedType = ""
		dc.selected = w.ID
		telemetry.Event("widget_dropped", map[string]any{"widget_type": w.Type})
		dc.Refresh()
		return
	}
	local := geometry.ToCanvasSpace(p, dc.vp.Transform(), dc.origin())
	dc.selected = ""
	for i := len(dc.widgets) - 1; i >= 0; i-- {
		w := dc.widgets[i]
		r := geometry.R(float32(w.X), float32(w.Y), float32(w.Width), float32(w.Height))
		if r.Contains(local) {
			dc.selected = w.ID
			break
		}
	}
	dc.Refresh()
}

// Dragged moves or resizes the grabbed widget, or pans the canvas when the
// drag started on empty space.
func (dc *DesignerCanvas) Dragged(e *fyne.DragEvent) {
	dc.ctrl.SetOrigin(dc.origin())
	pos := geometry.Pt{X: e.Position.X, Y: e.Position.Y}
	if !dc.ctrl.Dragging() && dc.vp.PanEnabled() {
		start := geometry.Pt{X: e.Position.X - e.Dragged.DX, Y: e.Position.Y - e.Dragged.DY}
		if dc.ctrl.Press(start, dc.widgets) {
			dc.selected = dc.ctrl.ActiveWidget()
		}
	}
	if dc.ctrl.Dragging() {
		dc.ctrl.Move(pos, dc.widgets)
		// Render the in-flight mutation without waiting for the snapshot.
		if lay, ok := dc.st.Snapshot().ActiveLayout(); ok {
			dc.widgets = lay.Widgets
		}
	} else {
		dc.vp.PanBy(e.Dragged.DX, e.Dragged.DY)
	}
	dc.Refresh()
}

func (dc *DesignerCanvas) DragEnd() { dc.ctrl.Release() }

// Scrolled zooms with the wheel.
func (dc *DesignerCanvas) Scrolled(e *fyne.ScrollEvent) {
	if e.Scrolled.DY > 0 {
		dc.vp.ZoomIn()
	} else if e.Scrolled.DY < 0 {
		dc.vp.ZoomOut()
	}
	dc.Refresh()
}

var typeColors = map[string]color.RGBA{
	"A": {R: 0x4c, G: 0x8b, B: 0xf5, A: 0xff},
	"B": {R: 0x60, G: 0xb2, B: 0x6a, A: 0xff},
	"C": {R: 0xe8, G: 0xa3, B: 0x3d, A: 0xff},
	"D": {R: 0xc9, G: 0x5d, B: 0x63, A: 0xff},
}

func (dc *DesignerCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.RGBA{R: 30, G: 30, B: 34, A: 255})

	board := canvas.NewRectangle(color.White)
	board.StrokeColor = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	board.StrokeWidth = 2

	sel := canvas.NewRectangle(color.RGBA{})
	sel.StrokeColor = color.RGBA{R: 0, G: 170, B: 255, A: 255}
	sel.StrokeWidth = 1
	sel.Hide()

	handles := make([]*canvas.Rectangle, len(geometry.Handles))
	for i := range handles {
		h := canvas.NewRectangle(color.RGBA{R: 0, G: 170, B: 255, A: 255})
		h.Hide()
		handles[i] = h
	}

	return &designerRenderer{
		dc: dc, bg: bg, board: board, sel: sel, handles: handles,
		rects:  map[string]*canvas.Rectangle{},
		labels: map[string]*canvas.Text{},
	}
}

type designerRenderer struct {
	dc        *DesignerCanvas
	bg        *canvas.Rectangle
	board     *canvas.Rectangle
	gridLines []*canvas.Line
	rects     map[string]*canvas.Rectangle
	labels    map[string]*canvas.Text
	sel       *canvas.Rectangle
	handles   []*canvas.Rectangle
}

func (r *designerRenderer) Destroy()           {}
func (r *designerRenderer) MinSize() fyne.Size { return r.dc.PreferredSize() }

func (r *designerRenderer) Objects() []fyne.CanvasObject {
	objs := []fyne.CanvasObject{r.bg, r.board}
	for _, ln := range r.gridLines {
		objs = append(objs, ln)
	}
	for _, w := range r.dc.widgets {
		if rect, ok := r.rects[w.ID]; ok {
			objs = append(objs, rect)
		}
		if lbl, ok := r.labels[w.ID]; ok {
			objs = append(objs, lbl)
		}
	}
	objs = append(objs, r.sel)
	for _, h := range r.handles {
		objs = append(objs, h)
	}
	return objs
}

func (r *designerRenderer) Refresh() {
	r.syncScene()
	r.Layout(r.dc.Size())
	canvas.Refresh(r.dc)
}

// syncScene reconciles the rectangle pool with the widget snapshot.
func (r *designerRenderer) syncScene() {
	live := map[string]bool{}
	for _, w := range r.dc.widgets {
		live[w.ID] = true
		if _, ok := r.rects[w.ID]; !ok {
			fill, ok := typeColors[w.Type]
			if !ok {
				fill = color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
			}
			rect := canvas.NewRectangle(fill)
			rect.StrokeColor = color.RGBA{R: 30, G: 30, B: 30, A: 255}
			rect.StrokeWidth = 1
			r.rects[w.ID] = rect

			lbl := canvas.NewText(w.Type, color.Black)
			lbl.TextSize = 12
			r.labels[w.ID] = lbl
		}
	}
	for id := range r.rects {
		if !live[id] {
			delete(r.rects, id)
			delete(r.labels, id)
		}
	}
}

func (r *designerRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))

	t := r.dc.vp.Transform()
	origin := r.dc.origin()
	r.dc.ctrl.SetOrigin(origin)
	s := t.Scale

	boardPos := t.Apply(geometry.Pt{}, origin)
	r.board.Move(fyne.NewPos(boardPos.X, boardPos.Y))
	r.board.Resize(fyne.NewSize(domain.CanvasWidth*s, domain.CanvasHeight*s))
	r.layoutGrid(t, origin)

	var selRect geometry.Rect
	selVisible := false
	for _, w := range r.dc.widgets {
		rect, ok := r.rects[w.ID]
		if !ok {
			continue
		}
		p := t.Apply(geometry.Pt{X: float32(w.X), Y: float32(w.Y)}, origin)
		rect.Move(fyne.NewPos(p.X, p.Y))
		rect.Resize(fyne.NewSize(float32(w.Width)*s, float32(w.Height)*s))
		if lbl, ok := r.labels[w.ID]; ok {
			lbl.Move(fyne.NewPos(p.X+4, p.Y+2))
		}
		if w.ID == r.dc.selected {
			selRect = geometry.R(p.X, p.Y, float32(w.Width)*s, float32(w.Height)*s)
			selVisible = true
		}
	}

	if selVisible {
		r.sel.Move(fyne.NewPos(selRect.X, selRect.Y))
		r.sel.Resize(fyne.NewSize(selRect.W, selRect.H))
		r.sel.Show()
		const hs = 8
		for i, h := range geometry.Handles {
			a := h.Anchor(selRect.W, selRect.H)
			r.handles[i].Move(fyne.NewPos(selRect.X+a.X-hs/2, selRect.Y+a.Y-hs/2))
			r.handles[i].Resize(fyne.NewSize(hs, hs))
			r.handles[i].Show()
		}
	} else {
		r.sel.Hide()
		for _, h := range r.handles {
			h.Hide()
		}
	}
}

// layoutGrid positions the guide lines every gridSpacing canvas units. The
// pool grows on first use; spacing 0 disables the grid.
func (r *designerRenderer) layoutGrid(t geometry.Transform, origin geometry.Pt) {
	spacing := r.dc.gridSpacing
	if spacing <= 0 {
		for _, ln := range r.gridLines {
			ln.Hide()
		}
		return
	}
	nCols := int(domain.CanvasWidth/spacing) - 1
	nRows := int(domain.CanvasHeight/spacing) - 1
	need := nCols + nRows
	for len(r.gridLines) < need {
		ln := canvas.NewLine(color.RGBA{R: 0, G: 0, B: 0, A: 24})
		ln.StrokeWidth = 1
		r.gridLines = append(r.gridLines, ln)
	}
	for i, ln := range r.gridLines {
		if i >= need {
			ln.Hide()
			continue
		}
		var a, b geometry.Pt
		if i < nCols {
			x := float32(i+1) * spacing
			a = t.Apply(geometry.Pt{X: x}, origin)
			b = t.Apply(geometry.Pt{X: x, Y: domain.CanvasHeight}, origin)
		} else {
			y := float32(i-nCols+1) * spacing
			a = t.Apply(geometry.Pt{Y: y}, origin)
			b = t.Apply(geometry.Pt{X: domain.CanvasWidth, Y: y}, origin)
		}
		ln.Position1 = fyne.NewPos(a.X, a.Y)
		ln.Position2 = fyne.NewPos(b.X, b.Y)
		ln.Show()
	}
}

func indexOf(ws []domain.Widget, id string) int {
	for i := range ws {
		if ws[i].ID == id {
			return i
		}
	}
	return -1
}
