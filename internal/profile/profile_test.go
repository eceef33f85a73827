/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package profile

import (
	"strings"
	"testing"

	"anchorkit/internal/overlay"
)

func TestProfileOptionsRoundTrip(t *testing.T) {
	p := Profile{
		Name:             "tooltip",
		Position:         "bottom center",
		Align:            "top center",
		FallbackPosition: "top center",
		FallbackAlign:    "bottom center",
		AnchorSelector:   "toolbar.save",
		SelectorScope:    "viewport",
		OffsetX:          4,
		OffsetY:          -2,
		RestrictSize:     "both",
		PreventOverflow:  "x",
		PaddingX:         8,
		SkipFrames:       1,
	}
	o, err := p.Options()
	if err != nil {
		t.Fatalf("Options() error: %v", err)
	}
	if o.Position.Y != overlay.SideEnd || o.Position.X != overlay.SideCenter {
		t.Fatalf("position not parsed: %+v", o.Position)
	}
	if o.FallbackPosition == nil || o.FallbackPosition.Y != overlay.SideStart {
		t.Fatalf("fallback position not parsed: %+v", o.FallbackPosition)
	}
	if o.SelectorScope != overlay.ScopeViewport {
		t.Fatalf("selector scope not parsed")
	}
	if !o.RestrictSize.OnX() || !o.RestrictSize.OnY() || !o.PreventOverflow.OnX() || o.PreventOverflow.OnY() {
		t.Fatalf("axes not parsed: restrict=%v prevent=%v", o.RestrictSize, o.PreventOverflow)
	}

	back := FromOptions("tooltip", o)
	o2, err := back.Options()
	if err != nil {
		t.Fatalf("round trip Options() error: %v", err)
	}
	if o2.Position != o.Position || o2.Align != o.Align || o2.OffsetX != o.OffsetX || o2.SkipFrames != o.SkipFrames {
		t.Fatalf("round trip changed options: %+v vs %+v", o2, o)
	}
}

func TestProfileOptionsRejectsBadKeywords(t *testing.T) {
	cases := []Profile{
		{Name: "p", Position: "under left", Align: "top left"},
		{Name: "p", Position: "top left", Align: "diagonal"},
		{Name: "p", Position: "top left", Align: "top left", RestrictSize: "sideways"},
		{Name: "p", Position: "top left", Align: "top left", SelectorScope: "document"},
		{Name: "p", Position: "top left", Align: "top left", SkipFrames: -1},
		{Name: "", Position: "top left", Align: "top left"},
	}
	for i, p := range cases {
		if _, err := p.Options(); err == nil {
			t.Fatalf("case %d: expected error for %+v", i, p)
		}
	}
}

func TestMousePlacementInProfile(t *testing.T) {
	p := Profile{Name: "ctx-menu", Position: "mouse", Align: "top left"}
	o, err := p.Options()
	if err != nil {
		t.Fatalf("Options() error: %v", err)
	}
	if o.Position.Mouse != overlay.MouseOnce {
		t.Fatalf("mouse placement not parsed: %+v", o.Position)
	}
	if got := FromOptions("ctx-menu", o).Position; got != "mouse" {
		t.Fatalf("mouse placement did not round trip: %q", got)
	}
}

func TestExportImport(t *testing.T) {
	p := Profile{
		Name:            "dropdown",
		Position:        "bottom left",
		Align:           "top left",
		RestrictSize:    "y",
		PreventOverflow: "both",
		PaddingY:        6,
	}
	data, err := Export(p)
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	got, err := Import(data)
	if err != nil {
		t.Fatalf("Import error: %v", err)
	}
	if got != p {
		t.Fatalf("import mismatch: %+v vs %+v", got, p)
	}
}

func TestImportRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"missing required": `{"name":"x"}`,
		"unknown field":    `{"name":"x","position":"top left","align":"top left","colour":"red"}`,
		"wrong type":       `{"name":"x","position":"top left","align":"top left","skip_frames":"two"}`,
		"negative padding": `{"name":"x","position":"top left","align":"top left","padding_x":-1}`,
		"bad keyword":      `{"name":"x","position":"sideways up","align":"top left"}`,
		"not json":         `position: top left`,
	}
	for name, doc := range cases {
		if _, err := Import([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error for %s", name, doc)
		}
	}
}

func TestImportErrorNamesField(t *testing.T) {
	_, err := Import([]byte(`{"name":"x","position":"top left","align":"top left","selector_scope":"page"}`))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "selector_scope") {
		t.Fatalf("error does not name offending field: %v", err)
	}
}
