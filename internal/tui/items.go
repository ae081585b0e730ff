package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/justin0804nitsuj/memo/models"
)

// item is one catalog entry in the list pane.
type item struct {
	entry  models.FileEntry
	marked bool
}

func (i item) Title() string {
	prefix := "  "
	if i.marked {
		prefix = "* "
	}
	return fmt.Sprintf("%s#%d %s", prefix, i.entry.ID, i.entry.FileName)
}

func (i item) Description() string {
	if i.entry.Description == "" {
		return string(i.entry.FileType)
	}
	return fmt.Sprintf("%s · %s", i.entry.FileType, i.entry.Description)
}

func (i item) FilterValue() string {
	return i.entry.FileName + " " + i.entry.Description
}

func toItems(entries []models.FileEntry, marked map[uint]bool) []list.Item {
	items := make([]list.Item, len(entries))
	for n, e := range entries {
		items[n] = item{entry: e, marked: marked[e.ID]}
	}
	return items
}
