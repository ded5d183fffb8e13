package ui

import "github.com/charmbracelet/bubbles/list"

// Action enumerates the pipeline operations the menu offers.
type Action int

const (
	ActionScrape Action = iota
	ActionMatch
	ActionBuild
	ActionReset
	ActionExit
)

var _ list.Item = menuItem{}

// menuItem wraps an [Action] to implement [list.Item].
type menuItem struct {
	action Action
	title  string
	desc   string
}

func (i menuItem) FilterValue() string { return i.title }
func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }

func menuItems() []list.Item {
	return []list.Item{
		menuItem{ActionScrape, "Scrape playlist", "Extract songs from a Spotify playlist or album URL"},
		menuItem{ActionMatch, "Match songs", "Search YouTube for every pending song"},
		menuItem{ActionBuild, "Create playlist", "Build a YouTube playlist from matched songs"},
		menuItem{ActionReset, "Reset data", "Delete all stored songs and matches"},
		menuItem{ActionExit, "Exit", "Quit the program"},
	}
}
