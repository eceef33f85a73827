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
	"fmt"
)

// SelectorScope controls where selector strings are resolved.
type SelectorScope int

const (
	// ScopeHost resolves selectors relative to the host element passed to
	// Start. The host must implement Finder for this to yield anything.
	ScopeHost SelectorScope = iota
	// ScopeViewport resolves selectors through the engine's Finder.
	ScopeViewport
)

// Options configures one position session. Options are immutable once a
// session has started.
//
// The anchor is chosen in order of preference: the explicit Anchor element,
// an AnchorSelector resolved in SelectorScope, then the host element itself.
// A selector that matches nothing is an error for the primary anchor; the
// MinWidth/MinHeight selectors fail silently and contribute a zero bound.
type Options struct {
	Anchor         Element
	AnchorSelector string
	SelectorScope  SelectorScope

	// Position targets a point on the anchor's box (or the pointer, in the
	// mouse modes); Align chooses the point on the overlay placed there.
	Position Placement
	Align    Alignment

	// Fallback placement pair, used for an axis only when overflow prevention
	// is enabled there and the primary position overflows. Nil fields default
	// to the primary pair.
	FallbackPosition *Placement
	FallbackAlign    *Alignment

	// Pixel offsets added to the computed coordinate per axis. When the Func
	// variant is non-nil it is evaluated once per frame and wins over the
	// fixed value, so offsets may be dynamic.
	OffsetX     float32
	OffsetY     float32
	OffsetXFunc func() float32
	OffsetYFunc func() float32

	// RestrictSize clamps the overlay's max width/height to the viewport on
	// the selected axes; PreventOverflow shifts the overlay back inside the
	// viewport instead.
	RestrictSize    Axes
	PreventOverflow Axes

	// Optional elements whose current width/height act as a lower bound on
	// the overlay's extent in position math (not on its rendered size).
	MinWidthAnchor    Element
	MinWidthSelector  string
	MinHeightAnchor   Element
	MinHeightSelector string

	// Fixed padding kept between the overlay and the viewport edge per axis,
	// applied by size restriction and overflow prevention.
	PaddingX float32
	PaddingY float32

	// SkipFrames renders on only one of every SkipFrames+1 scheduled frames,
	// trading positioning latency for CPU on expensive layouts.
	SkipFrames int

	// ComputeOnly suppresses all style writes; callers read positions back
	// from the session instead.
	ComputeOnly bool
}

// resolved carries the per-session state derived from Options at start time.
type resolved struct {
	anchor  Element
	fbPos   Placement
	fbAlign Alignment
	minWEl  Element
	minHEl  Element
}

var errNoAnchor = errors.New("overlay: no anchor element resolvable")

// resolveOptions validates o and resolves its element references. host may be
// nil when an explicit anchor is given.
func (e *Engine) resolveOptions(o Options, host Element) (resolved, error) {
	r := resolved{
		fbPos:   o.Position,
		fbAlign: o.Align,
	}
	if o.FallbackPosition != nil {
		r.fbPos = *o.FallbackPosition
	}
	if o.FallbackAlign != nil {
		r.fbAlign = *o.FallbackAlign
	}
	if o.SkipFrames < 0 {
		return r, fmt.Errorf("overlay: negative skip frame count %d", o.SkipFrames)
	}

	switch {
	case o.Anchor != nil:
		r.anchor = o.Anchor
	case o.AnchorSelector != "":
		r.anchor = e.findElement(o.AnchorSelector, o.SelectorScope, host)
		if r.anchor == nil {
			return r, fmt.Errorf("overlay: anchor selector %q matched nothing", o.AnchorSelector)
		}
	case host != nil:
		r.anchor = host
	default:
		return r, errNoAnchor
	}

	r.minWEl = o.MinWidthAnchor
	if r.minWEl == nil && o.MinWidthSelector != "" {
		r.minWEl = e.findElement(o.MinWidthSelector, o.SelectorScope, host)
	}
	r.minHEl = o.MinHeightAnchor
	if r.minHEl == nil && o.MinHeightSelector != "" {
		r.minHEl = e.findElement(o.MinHeightSelector, o.SelectorScope, host)
	}
	return r, nil
}

func (e *Engine) findElement(selector string, scope SelectorScope, host Element) Element {
	if scope == ScopeHost {
		if f, ok := host.(Finder); ok {
			return f.Find(selector)
		}
		return nil
	}
	if e.find == nil {
		return nil
	}
	return e.find.Find(selector)
}
