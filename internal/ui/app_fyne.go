//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package ui binds the overlay engine to Fyne: canvas objects become engine
// elements, a ticker drives frames on the UI thread, and a transparent
// hover-catcher feeds the shared pointer tracker. A small demo window shows
// tooltip and context-menu placement live.
package ui

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"anchorkit/internal/config"
	"anchorkit/internal/geom"
	applog "anchorkit/internal/log"
	"anchorkit/internal/overlay"
)

// frameScheduler drives overlay frames from a fixed-rate ticker. Scheduled
// callbacks run in order on the Fyne UI thread via fyne.Do.
type frameScheduler struct {
	mu    sync.Mutex
	queue []func()
	stop  chan struct{}
}

func newFrameScheduler(fps int) *frameScheduler {
	if fps <= 0 {
		fps = 60
	}
	s := &frameScheduler{stop: make(chan struct{})}
	go s.run(time.Second / time.Duration(fps))
	return s
}

func (s *frameScheduler) Schedule(fn func()) {
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	s.mu.Unlock()
}

func (s *frameScheduler) run(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-t.C:
			s.mu.Lock()
			batch := s.queue
			s.queue = nil
			s.mu.Unlock()
			if len(batch) == 0 {
				continue
			}
			fyne.Do(func() {
				for _, fn := range batch {
					fn()
				}
			})
		}
	}
}

func (s *frameScheduler) Stop() { close(s.stop) }

// objectElement adapts a canvas object for measurement. Fyne reports
// positions relative to the object's parent, so the absolute position comes
// from the driver.
type objectElement struct{ obj fyne.CanvasObject }

// Element wraps a canvas object as an engine element.
func Element(obj fyne.CanvasObject) overlay.Element { return &objectElement{obj: obj} }

func (e *objectElement) Rect() geom.Rect {
	if e.obj == nil || !e.obj.Visible() {
		return geom.Rect{}
	}
	a := fyne.CurrentApp()
	if a == nil || a.Driver() == nil {
		return geom.Rect{}
	}
	pos := a.Driver().AbsolutePositionForObject(e.obj)
	size := e.obj.Size()
	return geom.R(pos.X, pos.Y, size.Width, size.Height)
}

// Parent returns nil: Fyne exposes no ancestor walk, and canvas objects never
// establish their own containing block, so the correction never applies.
func (e *objectElement) Parent() overlay.Element { return nil }

func (e *objectElement) Transformed() bool { return false }

// floatingObject adapts a canvas object the engine positions and clamps.
// Fyne has no max-size constraint, so the caps are applied by resizing the
// object down whenever it exceeds them.
type floatingObject struct {
	objectElement
	maxW, maxH float32
	minW, minH float32
}

// Floating wraps a canvas object the engine may move, resize, and hide.
func Floating(obj fyne.CanvasObject) overlay.Floating {
	return &floatingObject{objectElement: objectElement{obj: obj}}
}

func (f *floatingObject) Move(x, y float32) { f.obj.Move(fyne.NewPos(x, y)) }

func (f *floatingObject) SetMaxWidth(w float32)  { f.maxW = w; f.applyBounds() }
func (f *floatingObject) SetMaxHeight(h float32) { f.maxH = h; f.applyBounds() }
func (f *floatingObject) SetMinWidth(w float32)  { f.minW = w; f.applyBounds() }
func (f *floatingObject) SetMinHeight(h float32) { f.minH = h; f.applyBounds() }

func (f *floatingObject) SetHidden(hidden bool) {
	if hidden {
		f.obj.Hide()
	} else {
		f.obj.Show()
	}
}

func (f *floatingObject) applyBounds() {
	size := f.obj.Size()
	w, h := size.Width, size.Height
	if f.minW > 0 && w < f.minW {
		w = f.minW
	}
	if f.minH > 0 && h < f.minH {
		h = f.minH
	}
	if f.maxW > 0 && w > f.maxW {
		w = f.maxW
	}
	if f.maxH > 0 && h > f.maxH {
		h = f.maxH
	}
	if w != size.Width || h != size.Height {
		f.obj.Resize(fyne.NewSize(w, h))
	}
}

// canvasViewport adapts a Fyne canvas as the engine's viewport.
type canvasViewport struct{ cnv fyne.Canvas }

func (v *canvasViewport) Size() geom.Size {
	s := v.cnv.Size()
	return geom.Size{W: s.Width, H: s.Height}
}

func (v *canvasViewport) Root() overlay.Element { return nil }

// hoverCatcher is a transparent widget stretched over the window that feeds
// pointer movement into the shared tracker.
type hoverCatcher struct {
	widget.BaseWidget
}

var _ desktop.Hoverable = (*hoverCatcher)(nil)

func newHoverCatcher() *hoverCatcher {
	h := &hoverCatcher{}
	h.ExtendBaseWidget(h)
	return h
}

func (h *hoverCatcher) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

func (h *hoverCatcher) MouseIn(ev *desktop.MouseEvent) { h.MouseMoved(ev) }

func (h *hoverCatcher) MouseOut() {}

func (h *hoverCatcher) MouseMoved(ev *desktop.MouseEvent) {
	overlay.Tracker.Observe(ev.AbsolutePosition.X, ev.AbsolutePosition.Y)
}

// Run opens the demo window: a couple of anchor buttons with engine-driven
// tooltip and mouse-tracking overlays.
func Run(cfg config.AppConfig) error {
	l := applog.WithComponent("ui")

	a := app.NewWithID("io.anchorkit.demo")
	w := a.NewWindow("AnchorKit Demo")
	w.Resize(fyne.NewSize(800, 600))

	sched := newFrameScheduler(cfg.Overlay.FPS)
	defer sched.Stop()

	eng, err := overlay.New(overlay.Config{
		Scheduler: sched,
		Viewport:  &canvasViewport{cnv: w.Canvas()},
	})
	if err != nil {
		return err
	}

	tooltip := newBubble("Saved to profiles.db")
	tooltip.Hide()
	follower := newBubble("mouse-tracking")
	follower.Hide()

	var tipSession *overlay.Session
	anchorBtn := widget.NewButton("Hover target", nil)
	anchorBtn.OnTapped = func() {
		if tipSession != nil && tipSession.Running() {
			tipSession.Stop()
			tooltip.Hide()
			return
		}
		tooltip.Show()
		s, err := eng.Start(Floating(tooltip), Element(anchorBtn), overlay.Options{
			Position:         overlay.Placement{Y: overlay.SideEnd, X: overlay.SideCenter},
			Align:            overlay.Alignment{Y: overlay.SideStart, X: overlay.SideCenter},
			FallbackPosition: &overlay.Placement{Y: overlay.SideStart, X: overlay.SideCenter},
			FallbackAlign:    &overlay.Alignment{Y: overlay.SideEnd, X: overlay.SideCenter},
			PreventOverflow:  overlay.AxesBoth,
			OffsetY:          4,
			PaddingX:         cfg.Overlay.PaddingX,
			PaddingY:         cfg.Overlay.PaddingY,
			SkipFrames:       cfg.Overlay.SkipFrames,
		})
		if err != nil {
			l.Error("start tooltip session", "err", err)
			return
		}
		tipSession = s
	}

	var followSession *overlay.Session
	followBtn := widget.NewButton("Toggle pointer follower", nil)
	followBtn.OnTapped = func() {
		if followSession != nil && followSession.Running() {
			followSession.Stop()
			follower.Hide()
			return
		}
		follower.Show()
		s, err := eng.Start(Floating(follower), Element(followBtn), overlay.Options{
			Position:        overlay.Placement{Mouse: overlay.MouseFollow},
			Align:           overlay.Alignment{Y: overlay.SideStart, X: overlay.SideStart},
			PreventOverflow: overlay.AxesBoth,
			OffsetX:         12,
			OffsetY:         12,
		})
		if err != nil {
			l.Error("start follower session", "err", err)
			return
		}
		followSession = s
	}

	controls := container.NewVBox(
		widget.NewLabel("Tap a button to toggle its overlay."),
		anchorBtn,
		followBtn,
	)
	overlayLayer := container.NewWithoutLayout(tooltip, follower)
	w.SetContent(container.NewStack(newHoverCatcher(), container.NewCenter(controls), overlayLayer))

	l.Info("demo window ready")
	w.ShowAndRun()
	return nil
}

func newBubble(text string) fyne.CanvasObject {
	bg := canvas.NewRectangle(theme.Color(theme.ColorNameOverlayBackground))
	bg.CornerRadius = theme.Padding()
	c := container.NewStack(bg, container.NewPadded(widget.NewLabel(text)))
	c.Resize(c.MinSize())
	return c
}
