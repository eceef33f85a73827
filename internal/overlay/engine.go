/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package overlay

import (
	"errors"
	"log/slog"

	applog "anchorkit/internal/log"
)

// Config wires an Engine to its host environment.
type Config struct {
	// Scheduler drives the per-frame recomputation. Required.
	Scheduler Scheduler
	// Viewport supplies the visible area and root scroll element. Required.
	Viewport Viewport
	// Finder resolves viewport-scoped selectors. Optional; without it
	// ScopeViewport selectors resolve to nothing.
	Finder Finder
	// Mouse overrides the shared pointer tracker, mainly for tests.
	Mouse *MouseTracker
}

// Engine owns the active position sessions of one viewport.
type Engine struct {
	sched Scheduler
	vp    Viewport
	find  Finder
	mouse *MouseTracker
	log   *slog.Logger

	sessions map[*Session]struct{}
}

// New builds an engine. The returned engine must be driven from the UI
// thread, like everything else that touches layout.
func New(cfg Config) (*Engine, error) {
	if cfg.Scheduler == nil {
		return nil, errors.New("overlay: scheduler is required")
	}
	if cfg.Viewport == nil {
		return nil, errors.New("overlay: viewport is required")
	}
	mouse := cfg.Mouse
	if mouse == nil {
		mouse = Tracker
	}
	return &Engine{
		sched:    cfg.Scheduler,
		vp:       cfg.Viewport,
		find:     cfg.Finder,
		mouse:    mouse,
		log:      applog.WithComponent("overlay"),
		sessions: make(map[*Session]struct{}),
	}, nil
}

// Mouse returns the tracker this engine's sessions read from.
func (e *Engine) Mouse() *MouseTracker { return e.mouse }

// Start begins positioning el against the anchor described by o, scheduling
// the first frame immediately. host scopes selector resolution and is the
// default anchor when o names none. Start fails fast when the primary anchor
// cannot be resolved.
func (e *Engine) Start(el Floating, host Element, o Options) (*Session, error) {
	if el == nil {
		return nil, errors.New("overlay: floating element is required")
	}
	res, err := e.resolveOptions(o, host)
	if err != nil {
		return nil, err
	}
	s := &Session{
		eng:     e,
		el:      el,
		host:    host,
		opts:    o,
		res:     res,
		running: true,
	}
	// Pointer coordinates are sampled once up front; only the tracking mode
	// keeps them current afterwards.
	s.mouseX, s.mouseY = e.mouse.Pos()
	if o.Position.Mouse == MouseFollow {
		s.unsubMouse = e.mouse.subscribe(s.setMouse)
	}
	e.sessions[s] = struct{}{}
	e.log.Debug("session started",
		slog.String("position", o.Position.String()),
		slog.String("align", o.Align.String()),
		slog.Int("active", len(e.sessions)))
	e.sched.Schedule(s.frame)
	return s, nil
}

// ForceUpdate recomputes every active session immediately instead of waiting
// for its next scheduled frame. Forced updates bypass frame-skip counters.
func (e *Engine) ForceUpdate() {
	for s := range e.sessions {
		s.step(true)
	}
}

// Active returns the number of running sessions.
func (e *Engine) Active() int { return len(e.sessions) }

func (e *Engine) remove(s *Session) { delete(e.sessions, s) }
