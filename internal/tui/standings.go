package tui

import (
	"fmt"

	"github.com/bcdxn/camelrace/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
)

const (
	columnKeyID     = "id"
	columnKeyJockey = "jockey"
	columnKeyName   = "name"
	columnKeyBase   = "base"
	columnKeyWins   = "wins"
	columnKeyRaces  = "races"
	columnKeyRate   = "rate"
)

// newStandings builds the standings table from the camel summaries, best win record first.
func newStandings(camels []domain.Summary) table.Model {
	rows := make([]table.Row, 0, len(camels))
	for _, c := range camels {
		rows = append(rows, table.NewRow(table.RowData{
			columnKeyID:     c.ID,
			columnKeyJockey: c.Jockey,
			columnKeyName:   c.Name,
			columnKeyBase:   fmt.Sprintf("%.1f", c.BaseSpeed),
			columnKeyWins:   c.Stats.Wins,
			columnKeyRaces:  c.Stats.Races,
			columnKeyRate:   fmt.Sprintf("%.0f%%", c.Stats.WinRate()*100),
		}))
	}

	return table.New([]table.Column{
		table.NewColumn(columnKeyID, "#", 3),
		table.NewColumn(columnKeyJockey, "JOCKEY", 8),
		table.NewColumn(columnKeyName, "CAMEL", 14).WithStyle(lipgloss.NewStyle().Align(lipgloss.Left)),
		table.NewColumn(columnKeyBase, "BASE", 6),
		table.NewColumn(columnKeyWins, "WINS", 6),
		table.NewColumn(columnKeyRaces, "RACES", 7),
		table.NewColumn(columnKeyRate, "WIN %", 7),
	}).
		WithRows(rows).
		SortByDesc(columnKeyWins).
		ThenSortByAsc(columnKeyID).
		WithBaseStyle(s.Table)
}

// StandingsView renders the standings table for output outside the TUI.
func StandingsView(camels []domain.Summary) string {
	return newStandings(camels).View()
}
