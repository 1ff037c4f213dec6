package refresh

import (
	"testing"
	"time"

	"github.com/five82/pullrefresh/internal/clock"
	"github.com/five82/pullrefresh/internal/refreshdate"
)

var epoch = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func newAttached(t *testing.T) (*fakeContainer, *Attachment, *refreshdate.Store, *clock.FakeClock) {
	t.Helper()
	fc := newFakeContainer(Size{Width: 320, Height: 2000}, Size{Width: 320, Height: 800})
	clk := clock.Fake(epoch)
	dates := refreshdate.New(clk, "")
	a := Attach(fc, AttachOptions{Dates: dates, Clock: clk})
	return fc, a, dates, clk
}

func TestAttachment_AutoPullToRefreshIfExpired(t *testing.T) {
	cases := []struct {
		name     string
		interval time.Duration
		want     bool
	}{
		{"expired", 5 * time.Second, true},
		{"fresh", 20 * time.Second, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fc, a, dates, _ := newAttached(t)
			var cnt counter
			h := a.AddTop(cnt.handler())
			h.SetRefreshIdentifier("timeline")
			fc.flush()

			dates.SetLastRefresh("timeline", epoch.Add(-10*time.Second))
			a.SetExpiredInterval(tc.interval)

			if got := a.AutoPullToRefreshIfExpired(); got != tc.want {
				t.Fatalf("AutoPullToRefreshIfExpired = %v, want %v", got, tc.want)
			}
			if h.IsAutoRefreshing() {
				t.Fatalf("auto refresh started synchronously, want next tick")
			}
			fc.step()
			if h.IsAutoRefreshing() != tc.want {
				t.Fatalf("IsAutoRefreshing = %v, want %v", h.IsAutoRefreshing(), tc.want)
			}
			if h.IsRefreshing() {
				t.Fatalf("IsRefreshing = true for an automatic start, want only auto flag")
			}
		})
	}
}

func TestAttachment_StartPullToRefreshStartsHeaderAndLeft(t *testing.T) {
	fc, a, dates, _ := newAttached(t)
	var top, left counter
	h := a.AddTop(top.handler())
	l := a.AddLeft(nil, nil, left.handler())
	fc.flush()

	a.StartPullToRefresh()
	fc.step()
	if !h.IsRefreshing() || !l.IsRefreshing() {
		t.Fatalf("header refreshing=%v left refreshing=%v, want both", h.IsRefreshing(), l.IsRefreshing())
	}
	a.StopPullToRefresh(true, false)
	fc.flush()
	if top.n != 1 || left.n != 1 {
		t.Fatalf("handlers top=%d left=%d, want 1 each", top.n, left.n)
	}

	a.SetRefreshIdentifier("board")
	dates.SetExpiredInterval("board", time.Second)
	if !a.AutoPullToRefreshIfExpired() {
		t.Fatalf("AutoPullToRefreshIfExpired = false with no recorded date")
	}
	fc.step()
	if !h.IsAutoRefreshing() || !l.IsAutoRefreshing() {
		t.Fatalf("header auto=%v left auto=%v, want both", h.IsAutoRefreshing(), l.IsAutoRefreshing())
	}
}

func TestAttachment_IdentifierSurvivesHeaderRemoval(t *testing.T) {
	fc, a, _, _ := newAttached(t)
	a.AddTop(nil)
	a.AddLeft(nil, nil, nil)
	a.AddRight(nil, nil, nil)
	fc.flush()

	a.SetRefreshIdentifier("photos")
	a.RemoveTop()

	if got := a.RefreshIdentifier(); got != "photos" {
		t.Fatalf("RefreshIdentifier = %q after RemoveTop, want photos", got)
	}
	for _, comp := range []*Component{a.Left(), a.Right()} {
		if got := comp.RefreshIdentifier(); got != "photos" {
			t.Fatalf("%v identifier = %q, want photos", comp.Edge(), got)
		}
	}
}

func TestAttachment_ExpiryWithoutIdentifier(t *testing.T) {
	fc, a, _, _ := newAttached(t)
	a.AddTop(nil)
	fc.flush()

	if a.Expired() {
		t.Fatalf("Expired = true without identifier, want false")
	}
	if a.AutoPullToRefreshIfExpired() {
		t.Fatalf("auto refresh started without identifier")
	}
	if _, ok := a.LastRefreshDate(); ok {
		t.Fatalf("LastRefreshDate present without identifier")
	}
}

func TestAttachment_StopPullToRefreshRecordsDate(t *testing.T) {
	fc, a, _, clk := newAttached(t)
	a.AddTop(nil)
	foot := a.AddBottom(nil)
	a.SetRefreshIdentifier("inbox")
	fc.flush()

	a.StartPullToRefresh()
	if a.Header().IsRefreshing() {
		t.Fatalf("StartPullToRefresh ran synchronously, want next tick")
	}
	fc.flush()
	if !a.Header().IsRefreshing() {
		t.Fatalf("header not refreshing after dispatch")
	}

	a.NoticeNoMoreData()
	clk.Advance(3 * time.Second)
	a.StopPullToRefresh(false, false)
	fc.flush()

	if a.Header().IsRefreshing() {
		t.Fatalf("header still refreshing after StopPullToRefresh")
	}
	last, ok := a.LastRefreshDate()
	if !ok || !last.Equal(epoch.Add(3*time.Second)) {
		t.Fatalf("LastRefreshDate = %v, %v; want %v", last, ok, epoch.Add(3*time.Second))
	}
	if foot.NoMoreData() {
		t.Fatalf("footer NoMoreData = true, want reset by StopPullToRefresh")
	}
	if a.Expired() {
		t.Fatalf("Expired = true right after refresh with no interval")
	}
}

func TestAttachment_StopPullToRefreshIgnoreFlags(t *testing.T) {
	fc, a, _, _ := newAttached(t)
	a.AddTop(nil)
	foot := a.AddBottom(nil)
	a.SetRefreshIdentifier("inbox")
	fc.flush()

	a.NoticeNoMoreData()
	a.StopPullToRefresh(true, true)
	fc.flush()

	if _, ok := a.LastRefreshDate(); ok {
		t.Fatalf("date recorded with ignoreDate")
	}
	if !foot.NoMoreData() {
		t.Fatalf("NoMoreData reset with ignoreDate, want untouched")
	}
	if !foot.Hidden() || fc.inset.Bottom != 0 {
		t.Fatalf("footer hidden=%v inset=%v, want hidden with released inset", foot.Hidden(), fc.inset.Bottom)
	}

	a.StopPullToRefresh(true, false)
	if foot.Hidden() || fc.inset.Bottom != defaultLoadMoreExtent {
		t.Fatalf("footer hidden=%v inset=%v, want shown again", foot.Hidden(), fc.inset.Bottom)
	}
}

func TestAttachment_AddReplacesExisting(t *testing.T) {
	fc, a, _, _ := newAttached(t)
	var first, second counter
	old := a.AddTop(first.handler())
	fc.flush()
	a.AddTop(second.handler())
	fc.flush()

	if a.Header() == old {
		t.Fatalf("AddTop kept the old header")
	}
	fc.scroll(Point{Y: -100})
	fc.flush()
	if first.n != 0 || second.n != 1 {
		t.Fatalf("handlers first=%d second=%d, want 0 and 1", first.n, second.n)
	}
}

func TestAttachment_IdentifierFallsBackToSideEdges(t *testing.T) {
	fc, a, _, _ := newAttached(t)
	a.AddRight(nil, nil, nil)
	fc.flush()

	a.SetRefreshIdentifier("gallery")
	if got := a.RefreshIdentifier(); got != "gallery" {
		t.Fatalf("RefreshIdentifier = %q, want gallery", got)
	}
	if got := a.Right().RefreshIdentifier(); got != "gallery" {
		t.Fatalf("right identifier = %q, want gallery", got)
	}
}

func TestAttachment_DefaultAnimatorFactory(t *testing.T) {
	fc := newFakeContainer(Size{Height: 2000}, Size{Height: 800})
	custom := &recordingAnimator{trigger: 3, extent: 1}
	a := Attach(fc, AttachOptions{Animators: func(e Edge) Animator {
		if e == EdgeBottom {
			return custom
		}
		return nil
	}})
	foot := a.AddBottom(nil)
	head := a.AddTop(nil)
	fc.flush()

	if foot.Animator() != Animator(custom) {
		t.Fatalf("footer animator = %T, want factory animator", foot.Animator())
	}
	if got := head.Animator().Trigger(); got != defaultPullTrigger {
		t.Fatalf("header trigger = %v, want default %v", got, float64(defaultPullTrigger))
	}
}

func TestAttachment_NilContainerIsNoop(t *testing.T) {
	a := Attach(nil, AttachOptions{})
	var cnt counter
	h := a.AddTop(cnt.handler())
	a.StartPullToRefresh()
	h.StartRefreshing(false)
	a.StopPullToRefresh(false, false)
	a.NoticeNoMoreData()
	if h.IsRefreshing() || cnt.n != 0 {
		t.Fatalf("detached component reacted")
	}
}
