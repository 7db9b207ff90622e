// Package ui implements an interactive terminal interface for browsing and playing tabs using bubbletea's Elm architecture.
//
// The TUI has four views:
//  1. [SongListView] : Page through the signed-in user's songs
//  2. [SearchInputView] : Enter a search query
//  3. [SearchResultsView] : Page through matching songs
//  4. [SongView] : Read a tab with transposition, auto-scroll and a video panel
//
// The [Model] implements the standard Init/Update/View pattern. Backend calls run as [tea.Cmd]s and report back
// through the fetched messages; tabs go through the [tasks.SongEngine] so the local cache is consulted first.
//
// Auto-scroll is driven by [tea.Tick]. Each tick carries a sequence number, and a tick whose number no longer
// matches is dropped, so stopping or changing speed never leaves two tickers running.
package ui
