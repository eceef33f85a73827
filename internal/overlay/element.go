/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package overlay

import "anchorkit/internal/geom"

// Element is a node the engine can measure.
type Element interface {
	// Rect reports the element's bounding rectangle in viewport coordinates.
	Rect() geom.Rect
	// Parent returns the enclosing element, or nil at the top of the tree.
	Parent() Element
	// Transformed reports whether the element establishes its own containing
	// block for fixed-position descendants (a non-identity render transform).
	Transformed() bool
}

// Floating is an element the engine positions, clamps, and shows or hides.
// Move places the element's top-left corner in viewport coordinates. The
// SetMin* calls treat zero as "clear any previously applied bound"; the
// SetMax* calls are only invoked while the matching size restriction axis is
// active.
type Floating interface {
	Element
	Move(x, y float32)
	SetMaxWidth(w float32)
	SetMaxHeight(h float32)
	SetMinWidth(w float32)
	SetMinHeight(h float32)
	SetHidden(hidden bool)
}

// Finder resolves a selector string to an element. Implementations return nil
// when nothing matches; the engine treats a nil result as an absent element.
type Finder interface {
	Find(selector string) Element
}

// Viewport describes the visible area overlays are confined to.
type Viewport interface {
	Size() geom.Size
	// Root returns the root scrolling element, or nil when the viewport has no
	// element identity. An anchor equal to Root is measured as the full
	// viewport rather than by its own (possibly degenerate) box.
	Root() Element
}

// Scheduler runs a callback on the next display frame. Implementations must
// invoke callbacks sequentially on the UI thread.
type Scheduler interface {
	Schedule(fn func())
}

// containingBlockOffset walks the floating element's ancestors for the
// nearest one that establishes a new containing block. Fixed positioning
// resolves relative to such an ancestor instead of the viewport, so its own
// viewport offset must be subtracted from computed positions.
func containingBlockOffset(el Element) (geom.Pt, bool) {
	for p := el.Parent(); p != nil; p = p.Parent() {
		if p.Transformed() {
			return p.Rect().Min(), true
		}
	}
	return geom.Pt{}, false
}
