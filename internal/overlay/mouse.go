/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package overlay

import "sync"

// MouseTracker holds the latest known global pointer position. The toolkit
// binding feeds it from a passive pointer-move listener via Observe; callers
// that know coordinates the listener cannot see (e.g. during drag-and-drop)
// push them through Override. Sessions only read it.
//
// The mutation surface is deliberately narrow: one passive listener entry
// point and one explicit override entry point. Values are (0,0) until the
// first observation.
type MouseTracker struct {
	mu     sync.Mutex
	x, y   float32
	subs   map[int]func(x, y float32)
	nextID int
}

// Tracker is the process-wide tracker shared by all engines by default.
var Tracker = NewMouseTracker()

func NewMouseTracker() *MouseTracker {
	return &MouseTracker{subs: make(map[int]func(x, y float32))}
}

// Pos returns the current pointer position in viewport coordinates.
func (t *MouseTracker) Pos() (x, y float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.x, t.y
}

// X returns the current pointer x coordinate.
func (t *MouseTracker) X() float32 {
	x, _ := t.Pos()
	return x
}

// Y returns the current pointer y coordinate.
func (t *MouseTracker) Y() float32 {
	_, y := t.Pos()
	return y
}

// Observe records a pointer-move observation from the global listener.
func (t *MouseTracker) Observe(x, y float32) { t.set(x, y) }

// Override supplies pointer coordinates directly, updating the stored
// position and notifying mouse-tracking subscribers exactly like a pointer
// move would.
func (t *MouseTracker) Override(x, y float32) { t.set(x, y) }

func (t *MouseTracker) set(x, y float32) {
	t.mu.Lock()
	t.x, t.y = x, y
	fns := make([]func(x, y float32), 0, len(t.subs))
	for _, fn := range t.subs {
		fns = append(fns, fn)
	}
	t.mu.Unlock()
	for _, fn := range fns {
		fn(x, y)
	}
}

// subscribe registers fn for every subsequent position update and returns a
// cancel function. Cancel is safe to call more than once.
func (t *MouseTracker) subscribe(fn func(x, y float32)) (cancel func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	t.mu.Unlock()
	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}
