package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const EmptyMessage = "No projects found."

type CardRenderer struct {
	Width int
}

func NewCardRenderer() *CardRenderer {
	return &CardRenderer{Width: 80}
}

func (r *CardRenderer) Render(w io.Writer, cards []Card) error {
	if len(cards) == 0 {
		_, err := fmt.Fprintln(w, Muted.Render(EmptyMessage))
		return err
	}

	style := cardStyle
	if r.Width > 0 {
		style = style.Width(r.Width)
	}

	blocks := make([]string, 0, len(cards))
	for _, c := range cards {
		blocks = append(blocks, style.Render(cardBody(c)))
	}
	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, blocks...))
	return err
}

func cardBody(c Card) string {
	lines := []string{AccentBold.Render(c.Title)}
	if c.Description != "" {
		lines = append(lines, c.Description)
	}
	if meta := metaLine(c); meta != "" {
		lines = append(lines, Muted.Render(meta))
	}
	if c.Reason != "" {
		lines = append(lines, Muted.Render("Why: "+c.Reason))
	}
	lines = append(lines, Accent.Render(c.URL))
	return strings.Join(lines, "\n")
}

func metaLine(c Card) string {
	var parts []string
	for _, p := range []string{c.Team, c.Status, c.Tags} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if c.Score != nil {
		parts = append(parts, fmt.Sprintf("score %.2f", *c.Score))
	}
	if c.Relevance != nil {
		parts = append(parts, fmt.Sprintf("relevance %d", *c.Relevance))
	}
	return strings.Join(parts, " · ")
}

// TableRenderer prints one row per card.
type TableRenderer struct{}

func NewTableRenderer() *TableRenderer {
	return &TableRenderer{}
}

func (r *TableRenderer) Render(w io.Writer, cards []Card) error {
	if len(cards) == 0 {
		_, err := fmt.Fprintln(w, Muted.Render(EmptyMessage))
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(Muted).
		Headers("#", "TITLE", "TEAM", "STATUS", "URL")
	for i, c := range cards {
		t.Row(fmt.Sprint(i+1), c.Title, c.Team, c.Status, c.URL)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
