package termcanvas

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cellStyle struct {
	fg, bg color.NRGBA
	bold   bool
}

// View renders the canvas as one line per cell row. Adjacent cells that share a style are rendered
// together to keep the number of escape sequences down.
func (c *Canvas) View() string {
	lines := make([]string, c.rows)
	for row := 0; row < c.rows; row++ {
		var (
			line strings.Builder
			run  strings.Builder
			cur  cellStyle
		)
		flush := func() {
			if run.Len() > 0 {
				line.WriteString(cur.render(run.String()))
				run.Reset()
			}
		}
		for col := 0; col < c.cols; col++ {
			cell := c.at(col, row)
			if cell.Rune == 0 {
				continue
			}
			st := cellStyle{bg: cell.BG, bold: cell.Bold}
			if cell.Rune != ' ' {
				st.fg = cell.FG
			}
			if st != cur {
				flush()
				cur = st
			}
			run.WriteRune(cell.Rune)
		}
		flush()
		lines[row] = line.String()
	}
	return strings.Join(lines, "\n")
}

// String renders the canvas as plain text without any colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < c.cols; col++ {
			if r := c.at(col, row).Rune; r != 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func (s cellStyle) render(text string) string {
	st := lipgloss.NewStyle().Bold(s.bold)
	if s.bg.A > 0 {
		st = st.Background(hex(s.bg))
	}
	if s.fg.A > 0 {
		st = st.Foreground(hex(s.fg))
	}
	return st.Render(text)
}

func hex(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}
