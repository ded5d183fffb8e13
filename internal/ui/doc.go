// Package ui implements the interactive menu using bubbletea's Elm architecture.
//
// The TUI offers the pipeline stages as a looping menu:
//  1. [MenuView] : Choose scrape, match, create, reset, or exit
//  2. [URLInputView] : Enter the playlist or album URL before a scrape
//  3. [ConfirmResetView] : Confirm before destructive reset
//  4. [RunningView] : Monitor real-time progress updates
//  5. [ResultView] : Display the operation summary or error
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Operations run behind the [Actions] interface so the menu never touches the
// store or API clients directly; progress flows through a channel for
// non-blocking status reporting.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
