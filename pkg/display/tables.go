package display

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/sambeau/unitconv/favorites"
	"github.com/sambeau/unitconv/history"
	"github.com/sambeau/unitconv/pkg/units"
)

// Table renders rows under a header with a rounded border.
func (s Styles) Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Header
			}
			return s.Cell
		})
	return t.String()
}

// Menu renders a numbered list, starting at 1.
func (s Styles) Menu(title string, items []string) string {
	var sb strings.Builder
	if title != "" {
		sb.WriteString(s.Title.Render(title))
		sb.WriteString("\n")
	}
	for i, item := range items {
		fmt.Fprintf(&sb, "%3d. %s\n", i+1, item)
	}
	return sb.String()
}

// UnitTable lists units with their names and aliases.
func (s Styles) UnitTable(us []units.Unit) string {
	rows := make([][]string, 0, len(us))
	for _, u := range us {
		rows = append(rows, []string{u.Symbol, u.Name, strings.Join(u.Aliases, ", ")})
	}
	return s.Table([]string{"Symbol", "Name", "Aliases"}, rows)
}

// HistoryTable lists entries newest first with times relative to now.
func (s Styles) HistoryTable(entries []history.Entry, now time.Time) string {
	rows := make([][]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		rows = append(rows, []string{
			strconv.Itoa(len(entries) - i),
			fmt.Sprintf("%s %s = %s %s", FormatNumber(e.Value), e.From, FormatNumber(e.Result), e.To),
			humanize.RelTime(e.Time, now, "ago", "from now"),
		})
	}
	return s.Table([]string{"#", "Conversion", "When"}, rows)
}

// FavoritesTable lists favorites numbered from 1.
func (s Styles) FavoritesTable(favs []favorites.Favorite) string {
	rows := make([][]string, 0, len(favs))
	for i, f := range favs {
		rows = append(rows, []string{strconv.Itoa(i + 1), f.From, f.To, f.Category})
	}
	return s.Table([]string{"#", "From", "To", "Category"}, rows)
}

// UnitInfo describes one unit. base is the category base unit, ignored
// for temperature units.
func (s Styles) UnitInfo(u units.Unit, base units.Unit) string {
	var sb strings.Builder
	sb.WriteString(s.Title.Render(u.Name))
	sb.WriteString("\n")
	field := func(label, value string) {
		fmt.Fprintf(&sb, "  %-12s %s\n", label+":", value)
	}
	field("Symbol", u.Symbol)
	field("Category", u.Category)
	switch {
	case u.Temperature:
		field("Conversion", "affine, through Celsius")
	case u.IsBase():
		field("Conversion", "base unit")
	default:
		field("Conversion", fmt.Sprintf("1 %s = %s %s", u.Symbol, FormatNumber(u.Factor), base.Symbol))
	}
	if len(u.Aliases) > 0 {
		field("Aliases", strings.Join(u.Aliases, ", "))
	}
	if u.CaseSensitive {
		field("Note", "symbol is case-sensitive")
	}
	if u.Description != "" {
		field("Description", u.Description)
	}
	return sb.String()
}

// Count renders n with thousands separators and a noun ("1,024 entries").
func Count(n int, singular, plural string) string {
	noun := plural
	if n == 1 {
		noun = singular
	}
	return humanize.Comma(int64(n)) + " " + noun
}
