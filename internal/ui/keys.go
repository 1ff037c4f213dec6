package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Gestures
	PullDown  key.Binding
	PushUp    key.Binding
	PullRight key.Binding
	PushLeft  key.Binding
	Release   key.Binding
	Top       key.Binding
	Bottom    key.Binding

	// Refresh control
	Refresh      key.Binding
	RefreshRight key.Binding
	NoMoreData   key.Binding
	HideFooter   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),

		PullDown: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Drag content down"),
		),
		PushUp: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Drag content up"),
		),
		PullRight: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Drag content right"),
		),
		PushLeft: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Drag content left"),
		),
		Release: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Release"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		RefreshRight: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Load more columns"),
		),
		NoMoreData: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Toggle no more data"),
		),
		HideFooter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Toggle footer"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PullDown, k.PushUp, k.Release, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PullDown, k.PushUp, k.PullRight, k.PushLeft, k.Release},
		{k.Top, k.Bottom},
		{k.Refresh, k.RefreshRight, k.NoMoreData, k.HideFooter},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
