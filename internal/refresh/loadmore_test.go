package refresh

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newFooter(t *testing.T, content, viewport float64, trigger float64) (*fakeContainer, *Attachment, *Component, *recordingAnimator, *counter) {
	t.Helper()
	fc := newFakeContainer(Size{Width: 320, Height: content}, Size{Width: 320, Height: viewport})
	anim := &recordingAnimator{trigger: trigger, extent: trigger}
	var cnt counter
	a := Attach(fc, AttachOptions{})
	f := a.AddBottomWith(anim, cnt.handler())
	fc.flush()
	return fc, a, f, anim, &cnt
}

func TestFooter_TriggersAtTrueBottom(t *testing.T) {
	fc, _, f, _, cnt := newFooter(t, 2000, 800, 60)

	fc.scroll(Point{Y: 1100})
	if f.IsRefreshing() {
		t.Fatalf("triggered at 1100 with 900 remaining, want no trigger")
	}
	fc.scroll(Point{Y: 1200})
	if !f.IsRefreshing() {
		t.Fatalf("no trigger at 1200 with 800 remaining, want trigger")
	}
	fc.flush()
	if cnt.n != 1 {
		t.Fatalf("handler calls = %d, want 1", cnt.n)
	}
	if fc.offset.Y != 1260 {
		t.Fatalf("offset.Y = %v, want 1260 (content - viewport + reserved inset)", fc.offset.Y)
	}
}

func TestFooter_NeverTriggersBeforeExtentOfTrailingEdge(t *testing.T) {
	fc, _, f, _, _ := newFooter(t, 2000, 800, 60)

	for y := 0.0; y < 1200; y += 25 {
		fc.scroll(Point{Y: y})
		if f.IsRefreshing() {
			t.Fatalf("triggered at offset %v, want none before 1200", y)
		}
	}
}

func TestFooter_ReservesInsetAndPinsFrame(t *testing.T) {
	fc, _, f, _, _ := newFooter(t, 2000, 800, 42)

	if fc.inset.Bottom != 42 {
		t.Fatalf("inset.Bottom = %v, want 42", fc.inset.Bottom)
	}
	if got := f.Frame().Origin.Y; got != 2000 {
		t.Fatalf("Frame.Origin.Y = %v, want 2000", got)
	}
	fc.resize(Size{Width: 320, Height: 2600})
	if got := f.Frame().Origin.Y; got != 2600 {
		t.Fatalf("Frame.Origin.Y after resize = %v, want 2600", got)
	}
}

func TestFooter_ShortContentTriggersAtHalfTrigger(t *testing.T) {
	fc, _, f, _, _ := newFooter(t, 300, 800, 60)

	fc.scroll(Point{Y: 29})
	if f.IsRefreshing() {
		t.Fatalf("triggered at 29, want none below trigger/2")
	}
	fc.scroll(Point{Y: 30})
	if !f.IsRefreshing() {
		t.Fatalf("no trigger at exactly trigger/2")
	}
}

func TestFooter_HiddenAndZeroContentAreTransparent(t *testing.T) {
	fc, _, f, _, _ := newFooter(t, 0, 800, 60)

	fc.scroll(Point{Y: 500})
	if f.Alpha() != 0 || f.IsRefreshing() {
		t.Fatalf("zero content: alpha=%v refreshing=%v, want 0 and false", f.Alpha(), f.IsRefreshing())
	}

	fc.resize(Size{Width: 320, Height: 2000})
	fc.scroll(Point{Y: 10})
	if f.Alpha() != 1 {
		t.Fatalf("alpha = %v with content in view, want 1", f.Alpha())
	}

	f.SetHidden(true)
	if fc.inset.Bottom != 0 {
		t.Fatalf("inset.Bottom = %v while hidden, want released", fc.inset.Bottom)
	}
	fc.scroll(Point{Y: 1300})
	if f.IsRefreshing() || f.Alpha() != 0 {
		t.Fatalf("hidden footer: refreshing=%v alpha=%v", f.IsRefreshing(), f.Alpha())
	}

	f.SetHidden(false)
	if fc.inset.Bottom != 60 {
		t.Fatalf("inset.Bottom = %v after showing, want 60", fc.inset.Bottom)
	}
}

func TestFooter_NoMoreDataToggleRestoresEligibility(t *testing.T) {
	fc, a, f, anim, cnt := newFooter(t, 2000, 800, 60)

	a.NoticeNoMoreData()
	a.NoticeNoMoreData()
	fc.scroll(Point{Y: 1250})
	if f.IsRefreshing() {
		t.Fatalf("triggered while no more data")
	}

	a.ResetNoMoreData()
	a.ResetNoMoreData()
	fc.scroll(Point{Y: 1250})
	if !f.IsRefreshing() {
		t.Fatalf("no trigger after reset, want same eligibility as before")
	}
	fc.flush()
	if cnt.n != 1 {
		t.Fatalf("handler calls = %d, want 1", cnt.n)
	}

	want := []State{StateNoMoreData, StateIdle, StateRefreshing}
	if diff := cmp.Diff(want, anim.states()); diff != "" {
		t.Fatalf("states mismatch (-want +got):\n%s", diff)
	}
}

func TestFooter_NoticeDuringLoadKeepsNoMoreDataState(t *testing.T) {
	fc, a, f, _, _ := newFooter(t, 2000, 800, 60)

	fc.scroll(Point{Y: 1200})
	fc.flush()
	a.NoticeNoMoreData()
	fc.flush()

	if f.IsRefreshing() {
		t.Fatalf("IsRefreshing = true after NoticeNoMoreData, want false")
	}
	if got := f.State(); got != StateNoMoreData {
		t.Fatalf("State = %v, want %v", got, StateNoMoreData)
	}
}

func TestFooter_StopPinsDeceleratingOffset(t *testing.T) {
	fc, a, f, _, _ := newFooter(t, 2000, 800, 60)

	fc.scroll(Point{Y: 1200})
	fc.flush()
	fc.resize(Size{Width: 320, Height: 1500})
	fc.decelerating = true
	a.StopLoadingMore()

	if fc.offset.Y != 700 {
		t.Fatalf("offset.Y = %v, want 700 (content - viewport)", fc.offset.Y)
	}
	fc.flush()
	if f.IsRefreshing() {
		t.Fatalf("IsRefreshing = true after stop")
	}
	if got := f.State(); got != StateIdle {
		t.Fatalf("State = %v, want idle", got)
	}
}

func TestFooter_StopDuringStartRunsAfterHandler(t *testing.T) {
	fc, a, f, _, cnt := newFooter(t, 2000, 800, 60)

	fc.scroll(Point{Y: 1200})
	a.StopLoadingMore()
	if !f.IsRefreshing() {
		t.Fatalf("stop during start applied immediately, want deferred")
	}
	fc.flush()
	if cnt.n != 1 || f.IsRefreshing() {
		t.Fatalf("handler=%d refreshing=%v, want 1 and false", cnt.n, f.IsRefreshing())
	}
}

func TestRight_ShortContentNeedsDoubleTrigger(t *testing.T) {
	fc := newFakeContainer(Size{Width: 300, Height: 100}, Size{Width: 800, Height: 100})
	var cnt counter
	a := Attach(fc, AttachOptions{})
	r := a.AddRight(nil, nil, cnt.handler())
	fc.flush()

	if fc.inset.Right != defaultLoadMoreExtent {
		t.Fatalf("inset.Right = %v, want %v", fc.inset.Right, float64(defaultLoadMoreExtent))
	}
	fc.scroll(Point{X: 83})
	if r.IsRefreshing() {
		t.Fatalf("triggered at 83, want none below 2x trigger")
	}
	fc.scroll(Point{X: 84})
	if !r.IsRefreshing() {
		t.Fatalf("no trigger at 2x trigger")
	}
	fc.flush()
	if cnt.n != 1 {
		t.Fatalf("handler calls = %d, want 1", cnt.n)
	}
}

func TestRight_WideContentTriggersAtTrailingEdge(t *testing.T) {
	fc := newFakeContainer(Size{Width: 3000, Height: 100}, Size{Width: 1000, Height: 100})
	var cnt counter
	a := Attach(fc, AttachOptions{})
	r := a.AddRight(nil, nil, cnt.handler())
	fc.flush()

	fc.scroll(Point{X: 1999})
	if r.IsRefreshing() {
		t.Fatalf("triggered at 1999, want none")
	}
	fc.scroll(Point{X: 2000})
	if !r.IsRefreshing() {
		t.Fatalf("no trigger at trailing edge")
	}
	fc.flush()
	if fc.offset.X != 2000+defaultLoadMoreExtent {
		t.Fatalf("offset.X = %v, want %v", fc.offset.X, 2000+float64(defaultLoadMoreExtent))
	}

	a.NoticeNoMoreData()
	fc.flush()
	if !r.NoMoreData() {
		t.Fatalf("NoMoreData = false, want true")
	}
}

func TestFooter_DetachReleasesInsetAndStopsObserving(t *testing.T) {
	fc, a, f, _, cnt := newFooter(t, 2000, 800, 60)

	a.RemoveBottom()
	if a.Footer() != nil {
		t.Fatalf("Footer still attached")
	}
	if fc.inset.Bottom != 0 {
		t.Fatalf("inset.Bottom = %v after remove, want 0", fc.inset.Bottom)
	}
	fc.scroll(Point{Y: 1300})
	fc.flush()
	if cnt.n != 0 || f.IsRefreshing() {
		t.Fatalf("detached footer reacted: handler=%d refreshing=%v", cnt.n, f.IsRefreshing())
	}
}

func newWideRight(t *testing.T) (*fakeContainer, *Component, *recordingAnimator, *counter) {
	t.Helper()
	fc := newFakeContainer(Size{Width: 3000, Height: 100}, Size{Width: 1000, Height: 100})
	anim := &recordingAnimator{trigger: 40, extent: 40}
	var cnt counter
	a := Attach(fc, AttachOptions{})
	r := a.AddRight(nil, anim, cnt.handler())
	fc.flush()
	return fc, r, anim, &cnt
}

func TestRight_DragPastEdgeArmsThenReleaseLoads(t *testing.T) {
	fc, r, anim, cnt := newWideRight(t)

	fc.drag(Point{X: 1990})
	fc.drag(Point{X: 2040})
	if got := r.State(); got != StatePulling {
		t.Fatalf("State = %v, want pulling", got)
	}
	fc.drag(Point{X: 2100})
	if got := r.State(); got != StateArmed {
		t.Fatalf("State = %v, want armed", got)
	}
	if r.IsRefreshing() {
		t.Fatalf("loading while the drag is still held")
	}

	fc.release()
	if !r.IsRefreshing() {
		t.Fatalf("not loading after release")
	}
	fc.flush()
	if cnt.n != 1 {
		t.Fatalf("handler calls = %d, want 1", cnt.n)
	}

	want := []event{
		{Kind: "state", State: StatePulling},
		{Kind: "progress", Progress: 0.5},
		{Kind: "state", State: StateArmed},
		{Kind: "progress", Progress: 1.25},
		{Kind: "begin"},
		{Kind: "state", State: StateRefreshing},
	}
	if diff := cmp.Diff(want, anim.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestRight_DragBackBeforeEdgeCancels(t *testing.T) {
	fc, r, anim, cnt := newWideRight(t)

	fc.drag(Point{X: 2040})
	fc.drag(Point{X: 1950})
	fc.release()
	fc.flush()

	if r.IsRefreshing() || cnt.n != 0 {
		t.Fatalf("refreshing=%v handler=%d, want no load", r.IsRefreshing(), cnt.n)
	}
	want := []State{StatePulling, StateIdle}
	if diff := cmp.Diff(want, anim.states()); diff != "" {
		t.Fatalf("states mismatch (-want +got):\n%s", diff)
	}
}
