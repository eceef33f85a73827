/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package overlay

import (
	"testing"

	"anchorkit/internal/geom"
)

// fakeScheduler queues callbacks and runs them only when the test says so,
// standing in for the toolkit's frame loop.
type fakeScheduler struct{ queue []func() }

func (s *fakeScheduler) Schedule(fn func()) { s.queue = append(s.queue, fn) }

// runFrame pops and runs the oldest scheduled callback.
func (s *fakeScheduler) runFrame(t *testing.T) {
	t.Helper()
	if len(s.queue) == 0 {
		t.Fatalf("no frame scheduled")
	}
	fn := s.queue[0]
	s.queue = s.queue[1:]
	fn()
}

type fakeElement struct {
	rect        geom.Rect
	parent      Element
	transformed bool
}

func (f *fakeElement) Rect() geom.Rect   { return f.rect }
func (f *fakeElement) Parent() Element   { return f.parent }
func (f *fakeElement) Transformed() bool { return f.transformed }

// fakeFloating records every write the engine performs.
type fakeFloating struct {
	fakeElement
	moves        []geom.Pt
	maxW, maxH   []float32
	minW, minH   []float32
	hidden       bool
	hiddenCalls  int
	visibleCalls int
}

func (f *fakeFloating) Move(x, y float32)      { f.moves = append(f.moves, geom.Pt{X: x, Y: y}) }
func (f *fakeFloating) SetMaxWidth(w float32)  { f.maxW = append(f.maxW, w) }
func (f *fakeFloating) SetMaxHeight(h float32) { f.maxH = append(f.maxH, h) }
func (f *fakeFloating) SetMinWidth(w float32)  { f.minW = append(f.minW, w) }
func (f *fakeFloating) SetMinHeight(h float32) { f.minH = append(f.minH, h) }
func (f *fakeFloating) SetHidden(hidden bool) {
	f.hidden = hidden
	if hidden {
		f.hiddenCalls++
	} else {
		f.visibleCalls++
	}
}

func (f *fakeFloating) lastMove(t *testing.T) geom.Pt {
	t.Helper()
	if len(f.moves) == 0 {
		t.Fatalf("no move recorded")
	}
	return f.moves[len(f.moves)-1]
}

type fakeViewport struct {
	size geom.Size
	root Element
}

func (v *fakeViewport) Size() geom.Size { return v.size }
func (v *fakeViewport) Root() Element   { return v.root }

type fakeFinder struct{ elems map[string]Element }

func (f *fakeFinder) Find(selector string) Element { return f.elems[selector] }

// hostElement is an anchor that can also resolve host-scoped selectors.
type hostElement struct {
	fakeElement
	children map[string]Element
}

func (h *hostElement) Find(selector string) Element { return h.children[selector] }

type testEnv struct {
	sched *fakeScheduler
	vp    *fakeViewport
	find  *fakeFinder
	mouse *MouseTracker
	eng   *Engine
}

func newTestEnv(t *testing.T, w, h float32) *testEnv {
	t.Helper()
	env := &testEnv{
		sched: &fakeScheduler{},
		vp:    &fakeViewport{size: geom.Size{W: w, H: h}},
		find:  &fakeFinder{elems: map[string]Element{}},
		mouse: NewMouseTracker(),
	}
	eng, err := New(Config{Scheduler: env.sched, Viewport: env.vp, Finder: env.find, Mouse: env.mouse})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	env.eng = eng
	return env
}

func TestNewRequiresSchedulerAndViewport(t *testing.T) {
	if _, err := New(Config{Viewport: &fakeViewport{}}); err == nil {
		t.Fatalf("expected error without scheduler")
	}
	if _, err := New(Config{Scheduler: &fakeScheduler{}}); err == nil {
		t.Fatalf("expected error without viewport")
	}
}

func TestStartPositionsAgainstAnchor(t *testing.T) {
	env := newTestEnv(t, 500, 400)
	anchor := &fakeElement{rect: geom.R(100, 100, 80, 30)}
	el := &fakeFloating{fakeElement: fakeElement{rect: geom.R(0, 0, 120, 40)}}

	s, err := env.eng.Start(el, anchor, Options{
		Position: Placement{Y: SideEnd, X: SideCenter},
		Align:    Alignment{Y: SideStart, X: SideCenter},
	})
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	env.sched.runFrame(t)

	if got := el.lastMove(t); got != (geom.Pt{X: 80, Y: 130}) {
		t.Fatalf("move = %+v, want (80,130)", got)
	}
	if x, y := s.Position(); x != 80 || y != 130 {
		t.Fatalf("Position() = (%v,%v), want (80,130)", x, y)
	}
	if el.hidden {
		t.Fatalf("overlay should be visible")
	}
	s.Stop()
}

func TestStartFailsFastWithoutAnchor(t *testing.T) {
	env := newTestEnv(t, 500, 400)
	el := &fakeFloating{}
	if _, err := env.eng.Start(el, nil, Options{}); err == nil {
		t.Fatalf("expected error with no resolvable anchor")
	}
	if _, err := env.eng.Start(nil, &fakeElement{}, Options{}); err == nil {
		t.Fatalf("expected error with nil floating element")
	}
	if env.eng.Active() != 0 {
		t.Fatalf("failed starts must not register sessions")
	}
}

func TestStartFailsFastOnUnmatchedSelector(t *testing.T) {
	env := newTestEnv(t, 500, 400)
	el := &fakeFloating{}
	host := &fakeElement{rect: geom.R(10, 10, 50, 50)}
	_, err := env.eng.Start(el, host, Options{
		AnchorSelector: "missing",
		SelectorScope:  ScopeViewport,
	})
	if err == nil {
		t.Fatalf("expected error for unmatched anchor selector")
	}
}

func TestSelectorScopes(t *testing.T) {
	env := newTestEnv(t, 500, 400)
	vpAnchor := &fakeElement{rect: geom.R(200, 0, 10, 10)}
	env.find.elems["status"] = vpAnchor
	hostAnchor := &fakeElement{rect: geom.R(40, 40, 10, 10)}
	host := &hostElement{
		fakeElement: fakeElement{rect: geom.R(0, 0, 100, 100)},
		children:    map[string]Element{"icon": hostAnchor},
	}
	el := &fakeFloating{fakeElement: fakeElement{rect: geom.R(0, 0, 20, 20)}}

	s1, err := env.eng.Start(el, host, Options{AnchorSelector: "status", SelectorScope: ScopeViewport})
	if err != nil {
		t.Fatalf("viewport scope Start error: %v", err)
	}
	env.sched.runFrame(t)
	if got := el.lastMove(t); got.X != 200 {
		t.Fatalf("viewport-scoped anchor not used: %+v", got)
	}
	s1.Stop()
	env.sched.runFrame(t) // drain the frame s1 already scheduled; it no-ops

	s2, err := env.eng.Start(el, host, Options{AnchorSelector: "icon", SelectorScope: ScopeHost})
	if err != nil {
		t.Fatalf("host scope Start error: %v", err)
	}
	env.sched.runFrame(t)
	if got := el.lastMove(t); got.X != 40 {
		t.Fatalf("host-scoped anchor not used: %+v", got)
	}
	s2.Stop()
}

func TestStopIsIdempotentAndEndsWrites(t *testing.T) {
	env := newTestEnv(t, 500, 400)
	anchor := &fakeElement{rect: geom.R(0, 0, 10, 10)}
	el := &fakeFloating{}

	s, err := env.eng.Start(el, anchor, Options{})
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	env.sched.runFrame(t)
	writes := len(el.moves)

	s.Stop()
	s.Stop()
	if s.Running() {
		t.Fatalf("session still running after Stop")
	}
	if env.eng.Active() != 0 {
		t.Fatalf("stopped session still registered")
	}
	// The already-scheduled frame must be a no-op.
	for len(env.sched.queue) > 0 {
		env.sched.runFrame(t)
	}
	if len(el.moves) != writes {
		t.Fatalf("writes after Stop: %d -> %d", writes, len(el.moves))
	}
}

func TestFrameSkipComputesOneOfN(t *testing.T) {
	env := newTestEnv(t, 500, 400)
	anchor := &fakeElement{rect: geom.R(50, 50, 10, 10)}
	el := &fakeFloating{}

	s, err := env.eng.Start(el, anchor, Options{SkipFrames: 2})
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	// Six scheduled frames with SkipFrames=2 compute on frames 1 and 4.
	for i := 0; i < 6; i++ {
		env.sched.runFrame(t)
	}
	if len(el.moves) != 2 {
		t.Fatalf("computed %d frames of 6, want 2", len(el.moves))
	}
	s.Stop()
}

func TestNegativeSkipFramesRejected(t *testing.T) {
	env := newTestEnv(t, 500, 400)
	if _, err := env.eng.Start(&fakeFloating{}, &fakeElement{rect: geom.R(1, 1, 1, 1)}, Options{SkipFrames: -1}); err == nil {
		t.Fatalf("expected error for negative skip frames")
	}
}

func TestForceUpdateBypassesSkip(t *testing.T) {
	env := newTestEnv(t, 500, 400)
	anchor := &fakeElement{rect: geom.R(50, 50, 10, 10)}
	el := &fakeFloating{}

	s, err := env.eng.Start(el, anchor, Options{SkipFrames: 5})
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	env.sched.runFrame(t) // computes, arms the skip counter
	moves := len(el.moves)

	anchor.rect = geom.R(80, 80, 10, 10)
	env.eng.ForceUpdate()
	if len(el.moves) != moves+1 {
		t.Fatalf("forced update did not compute")
	}
	if got := el.lastMove(t); got != (geom.Pt{X: 80, Y: 80}) {
		t.Fatalf("forced update used stale anchor: %+v", got)
	}
	s.Stop()
}

func TestDegenerateAnchorHidesOverlay(t *testing.T) {
	env := newTestEnv(t, 500, 400)
	anchor := &fakeElement{rect: geom.R(100, 100, 20, 20)}
	el := &fakeFloating{}

	s, err := env.eng.Start(el, anchor, Options{})
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	env.sched.runFrame(t)
	if el.hidden || s.Hidden() {
		t.Fatalf("overlay hidden with a live anchor")
	}

	anchor.rect = geom.Rect{} // detached
	env.sched.runFrame(t)
	if !el.hidden || !s.Hidden() {
		t.Fatalf("overlay not hidden for degenerate anchor")
	}

	anchor.rect = geom.R(100, 100, 20, 20)
	env.sched.runFrame(t)
	if el.hidden || s.Hidden() {
		t.Fatalf("overlay not shown again after anchor returned")
	}
	s.Stop()
}

func TestComputeOnlySuppressesWrites(t *testing.T) {
	env := newTestEnv(t, 500, 400)
	anchor := &fakeElement{rect: geom.R(100, 100, 80, 30)}
	el := &fakeFloating{fakeElement: fakeElement{rect: geom.R(0, 0, 120, 40)}}

	s, err := env.eng.Start(el, anchor, Options{
		Position:    Placement{Y: SideEnd, X: SideCenter},
		Align:       Alignment{Y: SideStart, X: SideCenter},
		ComputeOnly: true,
	})
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	env.sched.runFrame(t)
	if len(el.moves) != 0 || len(el.minW) != 0 || el.hiddenCalls+el.visibleCalls != 0 {
		t.Fatalf("compute-only session wrote to the element")
	}
	if x, y := s.Position(); x != 80 || y != 130 {
		t.Fatalf("Position() = (%v,%v), want (80,130)", x, y)
	}
	s.Stop()
}

func TestSizeRestrictionWrites(t *testing.T) {
	env := newTestEnv(t, 500, 400)
	anchor := &fakeElement{rect: geom.R(0, 0, 10, 10)}
	el := &fakeFloating{fakeElement: fakeElement{rect: geom.R(5, 8, 600, 600)}}

	s, err := env.eng.Start(el, anchor, Options{
		RestrictSize: AxesX,
		PaddingX:     10,
	})
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	env.sched.runFrame(t)
	if len(el.maxW) != 1 || el.maxW[0] != 485 {
		t.Fatalf("SetMaxWidth = %v, want one write of 485", el.maxW)
	}
	if len(el.maxH) != 0 {
		t.Fatalf("SetMaxHeight written on an unrestricted axis")
	}
	s.Stop()
}

func TestMinSizeAnchorsFlowThrough(t *testing.T) {
	env := newTestEnv(t, 500, 400)
	anchor := &fakeElement{rect: geom.R(400, 0, 20, 20)}
	ref := &fakeElement{rect: geom.R(0, 0, 150, 60)}
	el := &fakeFloating{fakeElement: fakeElement{rect: geom.R(0, 0, 40, 20)}}

	s, err := env.eng.Start(el, anchor, Options{
		// right-align: backs off by max(minWidth, element width)
		Position:       Placement{Y: SideStart, X: SideStart},
		Align:          Alignment{Y: SideStart, X: SideEnd},
		MinWidthAnchor: ref,
	})
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	env.sched.runFrame(t)
	if got := el.lastMove(t); got.X != 250 {
		t.Fatalf("move X = %v, want 250 (400 - 150 min width)", got.X)
	}
	if len(el.minW) == 0 || el.minW[len(el.minW)-1] != 150 {
		t.Fatalf("SetMinWidth = %v, want 150", el.minW)
	}
	if len(el.minH) == 0 || el.minH[len(el.minH)-1] != 0 {
		t.Fatalf("SetMinHeight = %v, want clearing 0", el.minH)
	}
	s.Stop()
}

func TestMinSizeSelectorFailsSilently(t *testing.T) {
	env := newTestEnv(t, 500, 400)
	anchor := &fakeElement{rect: geom.R(10, 10, 10, 10)}
	el := &fakeFloating{}

	s, err := env.eng.Start(el, anchor, Options{
		MinWidthSelector: "nope",
		SelectorScope:    ScopeViewport,
	})
	if err != nil {
		t.Fatalf("Start error: %v (min-size selectors must not fail fast)", err)
	}
	env.sched.runFrame(t)
	if len(el.minW) == 0 || el.minW[0] != 0 {
		t.Fatalf("SetMinWidth = %v, want 0 for absent reference", el.minW)
	}
	s.Stop()
}

func TestContainingBlockCorrection(t *testing.T) {
	env := newTestEnv(t, 500, 400)
	anchor := &fakeElement{rect: geom.R(100, 100, 80, 30)}
	transformedParent := &fakeElement{rect: geom.R(30, 20, 300, 300), transformed: true}
	el := &fakeFloating{fakeElement: fakeElement{
		rect:   geom.R(0, 0, 120, 40),
		parent: transformedParent,
	}}

	s, err := env.eng.Start(el, anchor, Options{
		Position: Placement{Y: SideEnd, X: SideCenter},
		Align:    Alignment{Y: SideStart, X: SideCenter},
	})
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	env.sched.runFrame(t)
	// Raw position (80,130) corrected by the transformed ancestor's offset.
	if got := el.lastMove(t); got != (geom.Pt{X: 50, Y: 110}) {
		t.Fatalf("move = %+v, want (50,110)", got)
	}
	s.Stop()
}

func TestRootAnchorMeasuresAsViewport(t *testing.T) {
	root := &fakeElement{rect: geom.Rect{}} // degenerate own box
	env := newTestEnv(t, 500, 400)
	env.vp.root = root
	el := &fakeFloating{fakeElement: fakeElement{rect: geom.R(0, 0, 100, 50)}}

	s, err := env.eng.Start(el, root, Options{
		Position: Placement{Y: SideCenter, X: SideCenter},
		Align:    Alignment{Y: SideCenter, X: SideCenter},
	})
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	env.sched.runFrame(t)
	if got := el.lastMove(t); got != (geom.Pt{X: 200, Y: 175}) {
		t.Fatalf("move = %+v, want centered (200,175)", got)
	}
	if s.Hidden() {
		t.Fatalf("root anchor must not count as degenerate")
	}
	s.Stop()
}

func TestDynamicOffsetsEvaluatedPerFrame(t *testing.T) {
	env := newTestEnv(t, 500, 400)
	anchor := &fakeElement{rect: geom.R(100, 100, 0, 0)}
	el := &fakeFloating{}
	off := float32(5)

	s, err := env.eng.Start(el, anchor, Options{
		OffsetX:     99, // fixed value loses to the func
		OffsetXFunc: func() float32 { return off },
	})
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	env.sched.runFrame(t)
	if got := el.lastMove(t); got.X != 105 {
		t.Fatalf("move X = %v, want 105", got.X)
	}
	off = -20
	env.sched.runFrame(t)
	if got := el.lastMove(t); got.X != 80 {
		t.Fatalf("move X = %v, want 80 after offset change", got.X)
	}
	s.Stop()
}

func TestMouseOnceSamplesAtStart(t *testing.T) {
	env := newTestEnv(t, 500, 400)
	env.mouse.Observe(200, 150)
	anchor := &fakeElement{rect: geom.R(0, 0, 10, 10)}
	el := &fakeFloating{}

	s, err := env.eng.Start(el, anchor, Options{Position: Placement{Mouse: MouseOnce}})
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	env.sched.runFrame(t)
	if got := el.lastMove(t); got != (geom.Pt{X: 200, Y: 150}) {
		t.Fatalf("move = %+v, want (200,150)", got)
	}

	env.mouse.Observe(300, 300)
	env.sched.runFrame(t)
	if got := el.lastMove(t); got != (geom.Pt{X: 200, Y: 150}) {
		t.Fatalf("mouse-once session followed the pointer: %+v", got)
	}
	s.Stop()
}

func TestMouseTrackingFollowsPointer(t *testing.T) {
	env := newTestEnv(t, 500, 400)
	env.mouse.Observe(100, 100)
	anchor := &fakeElement{rect: geom.R(0, 0, 10, 10)}
	el := &fakeFloating{}

	s, err := env.eng.Start(el, anchor, Options{Position: Placement{Mouse: MouseFollow}})
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	env.sched.runFrame(t)
	if got := el.lastMove(t); got != (geom.Pt{X: 100, Y: 100}) {
		t.Fatalf("move = %+v, want (100,100)", got)
	}

	env.mouse.Override(250, 60)
	env.sched.runFrame(t)
	if got := el.lastMove(t); got != (geom.Pt{X: 250, Y: 60}) {
		t.Fatalf("move = %+v, want (250,60)", got)
	}

	s.Stop()
	env.mouse.Observe(1, 1) // must not reach the stopped session
	if env.eng.Active() != 0 {
		t.Fatalf("session still active")
	}
}

func TestOverflowPreventionEndToEnd(t *testing.T) {
	env := newTestEnv(t, 500, 400)
	anchor := &fakeElement{rect: geom.R(400, 300, 50, 40)}
	el := &fakeFloating{fakeElement: fakeElement{rect: geom.R(0, 0, 80, 100)}}
	above := Placement{Y: SideStart, X: SideEnd}
	aboveAlign := Alignment{Y: SideEnd, X: SideStart}

	s, err := env.eng.Start(el, anchor, Options{
		Position:         Placement{Y: SideEnd, X: SideEnd},
		Align:            Alignment{Y: SideStart, X: SideStart},
		FallbackPosition: &above,
		FallbackAlign:    &aboveAlign,
		PreventOverflow:  AxesBoth,
	})
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	env.sched.runFrame(t)
	got := el.lastMove(t)
	// X: primary 450, overflow 30, fallback coord identical keyword-wise
	// (end position, start align) so only the shift applies: 420.
	if got.X != 420 {
		t.Fatalf("move X = %v, want 420", got.X)
	}
	// Y: primary 340 with extent 100 overflows by 40; fallback above the
	// anchor is 200, shifted by the primary's overflow to 160.
	if got.Y != 160 {
		t.Fatalf("move Y = %v, want 160", got.Y)
	}
	s.Stop()
}
