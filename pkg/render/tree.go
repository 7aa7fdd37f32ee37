// Package render projects a journey onto the visual map: chapters become
// columns, events become numbered cards and tags become chips.
package render

import (
	"strconv"

	"tableflip.dev/journey/pkg/journey"
)

// Tree is the visual structure of a journey map.
type Tree struct {
	Title       string
	Description string
	Columns     []Column
}

// Column is one chapter.
type Column struct {
	Title string
	Cards []Card
}

// Card is one event. Position is the 1-based display number within the
// column; it is not part of the document.
type Card struct {
	Title    string
	Position string
	Chips    []Chip
}

// Chip is one tag on a card.
type Chip struct {
	Label string
}

// Render converts j into a Tree. It does not modify j and preserves the
// order of chapters, events and tags.
func Render(j journey.Journey) Tree {
	t := Tree{
		Title:       j.Title,
		Description: j.Description,
	}
	if len(j.Chapters) == 0 {
		return t
	}
	t.Columns = make([]Column, 0, len(j.Chapters))
	for _, c := range j.Chapters {
		col := Column{Title: c.Title}
		if len(c.Events) > 0 {
			col.Cards = make([]Card, 0, len(c.Events))
		}
		for i, e := range c.Events {
			col.Cards = append(col.Cards, card(e, i))
		}
		t.Columns = append(t.Columns, col)
	}
	return t
}

func card(e journey.Event, idx int) Card {
	c := Card{
		Title:    e.Title,
		Position: strconv.Itoa(idx + 1),
	}
	if len(e.Tags) > 0 {
		c.Chips = make([]Chip, len(e.Tags))
		for i, tag := range e.Tags {
			c.Chips[i] = Chip{Label: tag}
		}
	}
	return c
}

// Empty reports whether the tree has nothing to draw below the header.
func (t Tree) Empty() bool {
	return len(t.Columns) == 0
}
