/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package overlay

import (
	"fmt"
	"strings"
)

// Side is a per-axis position keyword: top/left, middle/center, bottom/right.
type Side int

const (
	SideStart  Side = iota // top or left
	SideCenter             // middle or center
	SideEnd                // bottom or right
)

// MouseMode makes a placement target the pointer instead of an anchor box.
type MouseMode int

const (
	MouseOff    MouseMode = iota
	MouseOnce             // pointer position sampled once at session start
	MouseFollow           // pointer position tracked continuously
)

// Placement selects the point on the anchor's box the overlay targets.
// When Mouse is not MouseOff the tracked pointer coordinate replaces the
// anchor-derived coordinate on both axes.
type Placement struct {
	Y, X  Side
	Mouse MouseMode
}

// Alignment selects the point on the overlay's own box that is placed at the
// target point.
type Alignment struct {
	Y, X Side
}

// Axes selects which axes an independent per-axis behavior applies to.
type Axes int

const (
	AxesNone Axes = iota
	AxesX
	AxesY
	AxesBoth
)

// OnX reports whether the behavior applies to the horizontal axis.
func (a Axes) OnX() bool { return a == AxesX || a == AxesBoth }

// OnY reports whether the behavior applies to the vertical axis.
func (a Axes) OnY() bool { return a == AxesY || a == AxesBoth }

func sideY(word string) (Side, bool) {
	switch word {
	case "top":
		return SideStart, true
	case "middle", "center":
		return SideCenter, true
	case "bottom":
		return SideEnd, true
	}
	return 0, false
}

func sideX(word string) (Side, bool) {
	switch word {
	case "left":
		return SideStart, true
	case "middle", "center":
		return SideCenter, true
	case "right":
		return SideEnd, true
	}
	return 0, false
}

// ParsePlacement parses "top left", "bottom center", ... (vertical keyword
// first), or the special values "mouse" and "mouse-tracking".
func ParsePlacement(s string) (Placement, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	switch {
	case len(fields) == 1 && fields[0] == "mouse":
		return Placement{Mouse: MouseOnce}, nil
	case len(fields) == 1 && fields[0] == "mouse-tracking":
		return Placement{Mouse: MouseFollow}, nil
	case len(fields) == 2:
		y, okY := sideY(fields[0])
		x, okX := sideX(fields[1])
		if okY && okX {
			return Placement{Y: y, X: x}, nil
		}
	}
	return Placement{}, fmt.Errorf("invalid placement %q", s)
}

// ParseAlignment parses "top left", "middle center", ... (vertical first).
func ParseAlignment(s string) (Alignment, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	if len(fields) == 2 {
		y, okY := sideY(fields[0])
		x, okX := sideX(fields[1])
		if okY && okX {
			return Alignment{Y: y, X: x}, nil
		}
	}
	return Alignment{}, fmt.Errorf("invalid alignment %q", s)
}

// ParseAxes parses an axis selector: "none", "x", "y", "both". The size
// restriction aliases "width" and "height" are accepted as well.
func ParseAxes(s string) (Axes, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return AxesNone, nil
	case "x", "width":
		return AxesX, nil
	case "y", "height":
		return AxesY, nil
	case "both":
		return AxesBoth, nil
	}
	return AxesNone, fmt.Errorf("invalid axis selector %q", s)
}

func (s Side) wordY() string {
	switch s {
	case SideCenter:
		return "middle"
	case SideEnd:
		return "bottom"
	default:
		return "top"
	}
}

func (s Side) wordX() string {
	switch s {
	case SideCenter:
		return "center"
	case SideEnd:
		return "right"
	default:
		return "left"
	}
}

func (p Placement) String() string {
	switch p.Mouse {
	case MouseOnce:
		return "mouse"
	case MouseFollow:
		return "mouse-tracking"
	}
	return p.Y.wordY() + " " + p.X.wordX()
}

func (a Alignment) String() string { return a.Y.wordY() + " " + a.X.wordX() }

func (a Axes) String() string {
	switch a {
	case AxesX:
		return "x"
	case AxesY:
		return "y"
	case AxesBoth:
		return "both"
	}
	return "none"
}
