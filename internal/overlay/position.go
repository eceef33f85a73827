/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package overlay

import "math"

// posInf is the effective size cap when no restriction is configured, so
// min(size, cap) naturally means "no cap".
var posInf = float32(math.Inf(1))

// axisParams bundles everything the per-axis computation needs. All values
// are pixel coordinates on one axis; the same code runs for X and Y.
type axisParams struct {
	pos     Side // primary position keyword
	align   Side // primary alignment keyword
	fbPos   Side // fallback position keyword
	fbAlign Side // fallback alignment keyword

	useMouse   bool    // primary position targets the pointer instead of the anchor
	fbUseMouse bool    // fallback position targets the pointer
	mouse      float32 // tracked pointer coordinate

	anchorPos    float32 // anchor near edge
	anchorExtent float32 // anchor width/height
	elPos        float32 // overlay's current near edge
	elExtent     float32 // overlay's current width/height
	minSize      float32 // lower bound from a min-size anchor, 0 when absent
	offset       float32 // resolved numeric offset
	viewport     float32 // viewport extent
	padding      float32 // fixed padding against the viewport edge

	restrict bool // size restriction enabled on this axis
	prevent  bool // overflow prevention enabled on this axis
}

// axisResult is the outcome of one axis computation.
type axisResult struct {
	pos     float32
	maxSize float32 // positive infinity when restriction is off
	minSize float32 // min bound to write, 0 when none contributed
}

// coord applies the position formula for one (position, alignment) pair:
// start from the anchor edge (or pointer), extend by half or all of the
// anchor extent per the position keyword, back off by half or all of
// max(minSize, elExtent) per the alignment keyword, then add the offset.
func (p axisParams) coord(pos, align Side, useMouse bool) float32 {
	size := max(p.minSize, p.elExtent)
	c := p.anchorPos
	if useMouse {
		c = p.mouse
	} else {
		switch pos {
		case SideCenter:
			c += p.anchorExtent / 2
		case SideEnd:
			c += p.anchorExtent
		}
	}
	switch align {
	case SideCenter:
		c -= size / 2
	case SideEnd:
		c -= size
	}
	return c + p.offset
}

// computeAxis runs steps 4-6 of the per-frame algorithm for one axis:
// primary position formula, size restriction, and overflow prevention with
// fallback substitution.
func computeAxis(p axisParams) axisResult {
	out := axisResult{minSize: p.minSize, maxSize: posInf}

	if p.restrict {
		out.maxSize = p.viewport - p.padding
		// When overflow prevention also runs on this axis the position, not
		// the size, absorbs the offset from the viewport edge.
		if !p.prevent {
			out.maxSize -= p.elPos
		}
	}

	pos := p.coord(p.pos, p.align, p.useMouse)

	if p.prevent {
		avail := p.viewport - p.padding
		size := min(max(p.minSize, p.elExtent), out.maxSize)
		far := max(0, pos+size-avail)
		near := max(0, -pos)
		if far > 0 || near > 0 {
			// Substitute the fallback pair, then shift by the overflow
			// amounts measured against the primary position. The shift
			// intentionally reuses those pre-substitution amounts.
			pos = p.coord(p.fbPos, p.fbAlign, p.fbUseMouse)
		}
		pos += near - far
		if pos < 0 {
			pos = 0
		}
	}

	out.pos = pos
	return out
}
