package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up          key.Binding
	down        key.Binding
	enter       key.Binding
	back        key.Binding
	search      key.Binding
	nextPage    key.Binding
	prevPage    key.Binding
	refresh     key.Binding
	transUp     key.Binding
	transDown   key.Binding
	scroll      key.Binding
	faster      key.Binding
	slower      key.Binding
	videos      key.Binding
	nextVideo   key.Binding
	openVideo   key.Binding
	widenPanel  key.Binding
	narrowPanel key.Binding
	quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		nextPage:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next page")),
		prevPage:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prev page")),
		refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		transUp:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "transpose up")),
		transDown:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "transpose down")),
		scroll:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start/stop scroll")),
		faster:      key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "faster")),
		slower:      key.NewBinding(key.WithKeys("["), key.WithHelp("[", "slower")),
		videos:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "videos")),
		nextVideo:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next video")),
		openVideo:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open video")),
		widenPanel:  key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "widen panel")),
		narrowPanel: key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "narrow panel")),
		quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.search, k.nextPage, k.prevPage, k.refresh},
		{k.transUp, k.transDown, k.scroll, k.faster, k.slower},
		{k.videos, k.nextVideo, k.openVideo, k.widenPanel, k.narrowPanel},
		{k.quit},
	}
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.enter, k.nextPage, k.prevPage, k.search, k.quit}
}

func (k keyMap) songHelp(videoOpen bool) []key.Binding {
	bindings := []key.Binding{k.transUp, k.transDown, k.scroll, k.faster, k.slower, k.videos}
	if videoOpen {
		bindings = append(bindings, k.nextVideo, k.openVideo, k.widenPanel, k.narrowPanel)
	}
	return append(bindings, k.back, k.quit)
}
