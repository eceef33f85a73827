/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package profile persists named placement profiles: the serializable subset
// of overlay options, stored as keyword strings so the files stay readable
// and hand-editable. Profiles live in an embedded SQLite database and can be
// exported to and imported from JSON documents.
package profile

import (
	"fmt"
	"strings"

	"anchorkit/internal/overlay"
)

// Profile is a named, serializable placement configuration. Element
// references cannot be persisted, so anchors are expressed as selectors.
type Profile struct {
	Name string `json:"name"`

	Position         string `json:"position"`
	Align            string `json:"align"`
	FallbackPosition string `json:"fallback_position,omitempty"`
	FallbackAlign    string `json:"fallback_align,omitempty"`

	AnchorSelector string `json:"anchor_selector,omitempty"`
	SelectorScope  string `json:"selector_scope,omitempty"` // "host" or "viewport"

	OffsetX float32 `json:"offset_x,omitempty"`
	OffsetY float32 `json:"offset_y,omitempty"`

	RestrictSize    string `json:"restrict_size,omitempty"`    // "none", "x", "y", "both"
	PreventOverflow string `json:"prevent_overflow,omitempty"` // "none", "x", "y", "both"

	MinWidthSelector  string `json:"min_width_selector,omitempty"`
	MinHeightSelector string `json:"min_height_selector,omitempty"`

	PaddingX float32 `json:"padding_x,omitempty"`
	PaddingY float32 `json:"padding_y,omitempty"`

	SkipFrames  int  `json:"skip_frames,omitempty"`
	ComputeOnly bool `json:"compute_only,omitempty"`
}

// Validate checks the keyword fields without building options.
func (p Profile) Validate() error {
	_, err := p.Options()
	return err
}

// Options converts the profile into overlay options, parsing all keyword
// strings. Selector-based anchors stay selectors; the caller supplies the
// host at session start.
func (p Profile) Options() (overlay.Options, error) {
	var o overlay.Options
	if strings.TrimSpace(p.Name) == "" {
		return o, fmt.Errorf("profile: name is required")
	}

	pos, err := overlay.ParsePlacement(p.Position)
	if err != nil {
		return o, fmt.Errorf("profile %q: %w", p.Name, err)
	}
	o.Position = pos

	align, err := overlay.ParseAlignment(p.Align)
	if err != nil {
		return o, fmt.Errorf("profile %q: %w", p.Name, err)
	}
	o.Align = align

	if p.FallbackPosition != "" {
		fp, err := overlay.ParsePlacement(p.FallbackPosition)
		if err != nil {
			return o, fmt.Errorf("profile %q: %w", p.Name, err)
		}
		o.FallbackPosition = &fp
	}
	if p.FallbackAlign != "" {
		fa, err := overlay.ParseAlignment(p.FallbackAlign)
		if err != nil {
			return o, fmt.Errorf("profile %q: %w", p.Name, err)
		}
		o.FallbackAlign = &fa
	}

	o.AnchorSelector = p.AnchorSelector
	switch strings.ToLower(strings.TrimSpace(p.SelectorScope)) {
	case "", "host":
		o.SelectorScope = overlay.ScopeHost
	case "viewport":
		o.SelectorScope = overlay.ScopeViewport
	default:
		return o, fmt.Errorf("profile %q: invalid selector scope %q", p.Name, p.SelectorScope)
	}

	if o.RestrictSize, err = overlay.ParseAxes(p.RestrictSize); err != nil {
		return o, fmt.Errorf("profile %q: %w", p.Name, err)
	}
	if o.PreventOverflow, err = overlay.ParseAxes(p.PreventOverflow); err != nil {
		return o, fmt.Errorf("profile %q: %w", p.Name, err)
	}

	if p.SkipFrames < 0 {
		return o, fmt.Errorf("profile %q: negative skip frame count %d", p.Name, p.SkipFrames)
	}

	o.OffsetX = p.OffsetX
	o.OffsetY = p.OffsetY
	o.MinWidthSelector = p.MinWidthSelector
	o.MinHeightSelector = p.MinHeightSelector
	o.PaddingX = p.PaddingX
	o.PaddingY = p.PaddingY
	o.SkipFrames = p.SkipFrames
	o.ComputeOnly = p.ComputeOnly
	return o, nil
}

// FromOptions captures the serializable parts of o under the given name.
// Element references and offset functions are dropped; selectors survive.
func FromOptions(name string, o overlay.Options) Profile {
	p := Profile{
		Name:              name,
		Position:          o.Position.String(),
		Align:             o.Align.String(),
		AnchorSelector:    o.AnchorSelector,
		OffsetX:           o.OffsetX,
		OffsetY:           o.OffsetY,
		MinWidthSelector:  o.MinWidthSelector,
		MinHeightSelector: o.MinHeightSelector,
		PaddingX:          o.PaddingX,
		PaddingY:          o.PaddingY,
		SkipFrames:        o.SkipFrames,
		ComputeOnly:       o.ComputeOnly,
	}
	if o.FallbackPosition != nil {
		p.FallbackPosition = o.FallbackPosition.String()
	}
	if o.FallbackAlign != nil {
		p.FallbackAlign = o.FallbackAlign.String()
	}
	if o.SelectorScope == overlay.ScopeViewport {
		p.SelectorScope = "viewport"
	} else {
		p.SelectorScope = "host"
	}
	if o.RestrictSize != overlay.AxesNone {
		p.RestrictSize = o.RestrictSize.String()
	}
	if o.PreventOverflow != overlay.AxesNone {
		p.PreventOverflow = o.PreventOverflow.String()
	}
	return p
}
