package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pullrefresh/internal/clock"
	"github.com/five82/pullrefresh/internal/config"
	"github.com/five82/pullrefresh/internal/feed"
	"github.com/five82/pullrefresh/internal/refresh"
)

const (
	columnWidth = 16
	maxColumns  = 4
)

type fetchKind int

const (
	fetchInitial fetchKind = iota
	fetchRefresh
	fetchMore
)

func (k fetchKind) String() string {
	switch k {
	case fetchRefresh:
		return "refresh"
	case fetchMore:
		return "more"
	default:
		return "initial"
	}
}

// Messages

type pageMsg struct {
	kind fetchKind
	page feed.Page
	err  error
}

type columnsMsg struct{}

// session owns the pane, its refresh components and the loaded feed. The
// model holds it by pointer so component handlers, which run inside Update,
// can queue commands.
type session struct {
	ctx      context.Context
	source   feed.Source
	pageSize int
	latency  time.Duration
	logger   *slog.Logger
	clock    clock.Clock

	pane       *Pane
	attachment *refresh.Attachment
	animators  map[refresh.Edge]*TextAnimator
	spin       spinner.Model

	lines   []string
	next    int
	width   int
	columns int
	loaded  bool
	lastErr error

	// refreshing is set while a refresh fetch is in flight. The header and
	// left edges start together and share it.
	refreshing bool

	cmds []tea.Cmd
}

func newSession(opts Options) *session {
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg := opts.Config
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = config.Default().PageSize
	}

	s := &session{
		ctx:      opts.Context,
		source:   opts.Source,
		pageSize: pageSize,
		latency:  cfg.Latency,
		logger:   logger,
		clock:    clk,
		pane:     NewPane(clk),
		spin:     spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	if s.ctx == nil {
		s.ctx = context.Background()
	}

	s.animators = map[refresh.Edge]*TextAnimator{
		refresh.EdgeTop:    NewTextAnimator(refresh.EdgeTop, cfg.Header.Trigger, cfg.Header.Extent, &s.spin),
		refresh.EdgeBottom: NewTextAnimator(refresh.EdgeBottom, cfg.Footer.Trigger, cfg.Footer.Extent, &s.spin),
		refresh.EdgeLeft:   NewTextAnimator(refresh.EdgeLeft, cfg.Left.Trigger, cfg.Left.Extent, &s.spin),
		refresh.EdgeRight:  NewTextAnimator(refresh.EdgeRight, cfg.Right.Trigger, cfg.Right.Extent, &s.spin),
	}

	a := refresh.Attach(s.pane, refresh.AttachOptions{
		Dates:  opts.Dates,
		Clock:  clk,
		Logger: logger,
	})
	a.AddTopWith(s.animators[refresh.EdgeTop], s.refreshHandler(refresh.EdgeTop))
	a.AddBottomWith(s.animators[refresh.EdgeBottom], s.moreHandler)
	a.AddLeft(nil, s.animators[refresh.EdgeLeft], s.refreshHandler(refresh.EdgeLeft))
	a.AddRight(nil, s.animators[refresh.EdgeRight], s.columnsHandler)
	a.SetRefreshIdentifier(cfg.RefreshIdentifier)
	if cfg.ExpiredInterval > 0 {
		if _, ok := a.ExpiredInterval(); !ok {
			a.SetExpiredInterval(cfg.ExpiredInterval)
		}
	}
	s.attachment = a

	// Components capture their baseline on the first continuation; start
	// only after that has run.
	s.pane.Schedule(0, s.start)
	return s
}

// start refreshes through the header and left edges when the last refresh
// has expired and quietly loads the first page otherwise.
func (s *session) start() {
	if s.attachment.AutoPullToRefreshIfExpired() {
		s.logger.Info("auto refresh", "identifier", s.attachment.RefreshIdentifier())
		return
	}
	s.enqueue(s.fetch(fetchInitial, 0))
}

func (s *session) enqueue(cmd tea.Cmd) {
	if cmd != nil {
		s.cmds = append(s.cmds, cmd)
	}
}

// commands drains everything queued by handlers and continuations.
func (s *session) commands() tea.Cmd {
	cmds := append(s.cmds, s.pane.Commands())
	s.cmds = nil
	return tea.Batch(cmds...)
}

func (s *session) refreshHandler(edge refresh.Edge) refresh.Handler {
	return func() {
		if s.refreshing {
			s.logger.Debug("refresh already in flight", "edge", edge.String())
			return
		}
		s.logger.Debug("refresh started", "edge", edge.String())
		s.refreshing = true
		s.enqueue(s.fetch(fetchRefresh, 0))
	}
}

func (s *session) moreHandler() {
	s.logger.Debug("load more started", "offset", s.next)
	s.enqueue(s.fetch(fetchMore, s.next))
}

func (s *session) columnsHandler() {
	s.logger.Debug("load more columns", "columns", s.columns)
	s.enqueue(s.delay(func() tea.Msg { return columnsMsg{} }))
}

func (s *session) delay(fn func() tea.Msg) tea.Cmd {
	ctx, latency := s.ctx, s.latency
	return func() tea.Msg {
		if latency > 0 {
			timer := time.NewTimer(latency)
			defer timer.Stop()
			select {
			case <-ctx.Done():
			case <-timer.C:
			}
		}
		return fn()
	}
}

func (s *session) fetch(kind fetchKind, offset int) tea.Cmd {
	if s.source == nil {
		return nil
	}
	ctx, src, limit := s.ctx, s.source, s.pageSize
	return s.delay(func() tea.Msg {
		page, err := src.Page(ctx, offset, limit)
		return pageMsg{kind: kind, page: page, err: err}
	})
}

// applyPage stores a fetched page and ends the refresh cycle that asked
// for it.
func (s *session) applyPage(msg pageMsg) {
	a := s.attachment
	if msg.kind == fetchRefresh {
		s.refreshing = false
	}
	if msg.err != nil {
		s.lastErr = msg.err
		s.logger.Error("fetch feed page", "kind", msg.kind.String(), "error", msg.err)
		switch msg.kind {
		case fetchMore:
			if f := a.Footer(); f != nil {
				f.StopRefreshing()
			}
		default:
			a.StopPullToRefresh(true, false)
		}
		return
	}
	s.lastErr = nil

	switch msg.kind {
	case fetchMore:
		s.lines = append(s.lines, msg.page.Lines...)
	default:
		s.lines = append([]string(nil), msg.page.Lines...)
	}
	s.next = msg.page.Next
	s.loaded = true
	s.syncContent()
	s.logger.Debug("page applied", "kind", msg.kind.String(), "lines", len(s.lines), "more", msg.page.More)

	switch msg.kind {
	case fetchRefresh:
		a.StopPullToRefresh(false, false)
		if !msg.page.More {
			s.footerExhausted()
		}
	case fetchMore:
		if f := a.Footer(); f != nil {
			f.StopRefreshing()
		}
		if !msg.page.More {
			s.footerExhausted()
		}
	case fetchInitial:
		if !msg.page.More {
			s.footerExhausted()
		}
	}
}

func (s *session) footerExhausted() {
	if f := s.attachment.Footer(); f != nil {
		f.SetNoMoreData(true)
	}
}

// applyColumns reveals one more column and freezes the right edge once all
// are shown.
func (s *session) applyColumns() {
	r := s.attachment.Right()
	if r == nil {
		return
	}
	if s.columns < maxColumns {
		s.columns++
		s.syncContent()
	}
	r.StopRefreshing()
	if s.columns >= maxColumns {
		r.SetNoMoreData(true)
	}
}

// syncContent recomputes the content size from the loaded lines.
func (s *session) syncContent() {
	width := 0
	for _, line := range s.lines {
		width = max(width, len([]rune(line)))
	}
	s.width = width
	height := len(s.lines)
	total := width + s.columns*columnWidth
	if height == 0 {
		total = 0
	}
	s.pane.SetContentSize(refresh.Size{Width: float64(total), Height: float64(height)})
}

// row returns content row i with the revealed columns appended.
func (s *session) row(i int) []rune {
	if i < 0 || i >= len(s.lines) {
		return nil
	}
	line := []rune(s.lines[i])
	if pad := s.width - len(line); pad > 0 {
		line = append(line, []rune(strings.Repeat(" ", pad))...)
	}
	for c := 1; c <= s.columns; c++ {
		cell := []rune(fmt.Sprintf(" │ c%d·r%d", c, i+1))
		if len(cell) < columnWidth {
			cell = append(cell, []rune(strings.Repeat(" ", columnWidth-len(cell)))...)
		}
		line = append(line, cell[:columnWidth]...)
	}
	return line
}

// toggleNoMoreData flips the load-more edges between frozen and live.
func (s *session) toggleNoMoreData() {
	f := s.attachment.Footer()
	if f == nil {
		return
	}
	if f.NoMoreData() {
		s.attachment.ResetNoMoreData()
		return
	}
	s.attachment.NoticeNoMoreData()
}
