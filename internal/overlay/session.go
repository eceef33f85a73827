/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package overlay

import (
	"sync"

	"anchorkit/internal/geom"
)

// Session is one running overlay placement. It is created by Engine.Start,
// recomputed once per scheduled frame, and torn down by Stop. All methods
// must be called from the UI thread; only the pointer subscription touches it
// from elsewhere and goes through its own lock.
type Session struct {
	eng  *Engine
	el   Floating
	host Element
	opts Options
	res  resolved

	running bool
	skip    int

	mouseMu        sync.Mutex
	mouseX, mouseY float32
	unsubMouse     func()

	lastX, lastY float32
	hidden       bool
}

// Position returns the coordinates computed by the most recent frame. With
// Options.ComputeOnly this is the only way the result is observable.
func (s *Session) Position() (x, y float32) { return s.lastX, s.lastY }

// Hidden reports whether the last frame found the anchor detached and hid
// the overlay instead of positioning it.
func (s *Session) Hidden() bool { return s.hidden }

// Running reports whether the session still schedules frames.
func (s *Session) Running() bool { return s.running }

// Stop ends the session: the running flag drops so any already-scheduled
// frame no-ops, and the pointer subscription (if any) is removed. Stop is
// idempotent.
func (s *Session) Stop() {
	if !s.running {
		return
	}
	s.running = false
	if s.unsubMouse != nil {
		s.unsubMouse()
		s.unsubMouse = nil
	}
	s.eng.remove(s)
	s.eng.log.Debug("session stopped")
}

// frame is the per-display-refresh callback. The next frame is scheduled
// only after this one's work completes, so frames of one session never
// overlap.
func (s *Session) frame() {
	if !s.running {
		return
	}
	s.step(false)
	if s.running {
		s.eng.sched.Schedule(s.frame)
	}
}

// step runs one recomputation. Forced steps bypass the frame-skip counter.
func (s *Session) step(forced bool) {
	if !s.running {
		return
	}
	if !forced && s.opts.SkipFrames > 0 {
		if s.skip > 0 {
			s.skip--
			return
		}
		s.skip = s.opts.SkipFrames
	}

	vp := s.eng.vp.Size()
	anchorRect := s.anchorRect(vp)
	elRect := s.el.Rect()
	minW, minH := s.minBounds()
	offX, offY := s.offsets()
	mx, my := s.mousePos()

	rx := computeAxis(axisParams{
		pos:          s.opts.Position.X,
		align:        s.opts.Align.X,
		fbPos:        s.res.fbPos.X,
		fbAlign:      s.res.fbAlign.X,
		useMouse:     s.opts.Position.Mouse != MouseOff,
		fbUseMouse:   s.res.fbPos.Mouse != MouseOff,
		mouse:        mx,
		anchorPos:    anchorRect.X,
		anchorExtent: anchorRect.W,
		elPos:        elRect.X,
		elExtent:     elRect.W,
		minSize:      minW,
		offset:       offX,
		viewport:     vp.W,
		padding:      s.opts.PaddingX,
		restrict:     s.opts.RestrictSize.OnX(),
		prevent:      s.opts.PreventOverflow.OnX(),
	})
	ry := computeAxis(axisParams{
		pos:          s.opts.Position.Y,
		align:        s.opts.Align.Y,
		fbPos:        s.res.fbPos.Y,
		fbAlign:      s.res.fbAlign.Y,
		useMouse:     s.opts.Position.Mouse != MouseOff,
		fbUseMouse:   s.res.fbPos.Mouse != MouseOff,
		mouse:        my,
		anchorPos:    anchorRect.Y,
		anchorExtent: anchorRect.H,
		elPos:        elRect.Y,
		elExtent:     elRect.H,
		minSize:      minH,
		offset:       offY,
		viewport:     vp.H,
		padding:      s.opts.PaddingY,
		restrict:     s.opts.RestrictSize.OnY(),
		prevent:      s.opts.PreventOverflow.OnY(),
	})

	x, y := rx.pos, ry.pos
	if off, ok := containingBlockOffset(s.el); ok {
		x -= off.X
		y -= off.Y
	}
	s.lastX, s.lastY = x, y
	s.hidden = anchorRect.IsZero()

	if s.opts.ComputeOnly {
		return
	}
	if s.hidden {
		s.el.SetHidden(true)
	} else {
		s.el.SetHidden(false)
		s.el.Move(x, y)
	}
	if s.opts.RestrictSize.OnX() {
		s.el.SetMaxWidth(rx.maxSize)
	}
	if s.opts.RestrictSize.OnY() {
		s.el.SetMaxHeight(ry.maxSize)
	}
	s.el.SetMinWidth(minW)
	s.el.SetMinHeight(minH)
}

// anchorRect measures the anchor. The root scrolling element's own box can be
// degenerate, so it is measured as the full viewport instead.
func (s *Session) anchorRect(vp geom.Size) geom.Rect {
	if root := s.eng.vp.Root(); root != nil && s.res.anchor == root {
		return geom.R(0, 0, vp.W, vp.H)
	}
	return s.res.anchor.Rect()
}

// minBounds reads the current extents of the optional min-size anchors.
// Absent anchors contribute zero.
func (s *Session) minBounds() (minW, minH float32) {
	if s.res.minWEl != nil {
		minW = s.res.minWEl.Rect().W
	}
	if s.res.minHEl != nil {
		minH = s.res.minHEl.Rect().H
	}
	return minW, minH
}

func (s *Session) offsets() (x, y float32) {
	x, y = s.opts.OffsetX, s.opts.OffsetY
	if s.opts.OffsetXFunc != nil {
		x = s.opts.OffsetXFunc()
	}
	if s.opts.OffsetYFunc != nil {
		y = s.opts.OffsetYFunc()
	}
	return x, y
}

func (s *Session) mousePos() (x, y float32) {
	s.mouseMu.Lock()
	defer s.mouseMu.Unlock()
	return s.mouseX, s.mouseY
}

func (s *Session) setMouse(x, y float32) {
	s.mouseMu.Lock()
	s.mouseX, s.mouseY = x, y
	s.mouseMu.Unlock()
}
